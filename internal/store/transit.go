package store

import (
	"context"

	"firebase.google.com/go/v4/db"

	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/internal/models"
)

type pgiStore struct {
	db *db.Client
}

func NewPGIStore(database *db.Client) *pgiStore {
	return &pgiStore{db: database}
}

// Delete removes a PGI record outright; used when the vehicle is received
// into a yard.
func (s *pgiStore) Delete(ctx context.Context, chassis string) error {
	if err := s.db.NewRef(PathPGIRecords).Child(chassis).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to remove pgi record "+chassis, err)
	}
	return nil
}

// MarkHistory hides a PGI record without deleting it.
func (s *pgiStore) MarkHistory(ctx context.Context, chassis string) error {
	err := s.db.NewRef(PathPGIRecords).Child(chassis).Child("history").Set(ctx, true)
	if err != nil {
		return errs.NewDatabaseError("write", "failed to mark pgi record history "+chassis, err)
	}
	return nil
}

type handoverStore struct {
	db *db.Client
}

func NewHandoverStore(database *db.Client) *handoverStore {
	return &handoverStore{db: database}
}

func (s *handoverStore) Put(ctx context.Context, h models.HandoverRecord) error {
	ref := s.db.NewRef(PathHandover(h.DealerSlug)).Child(h.Chassis)
	if err := ref.Set(ctx, h); err != nil {
		return errs.NewDatabaseError("write", "failed to write handover "+h.Chassis, err)
	}
	return nil
}
