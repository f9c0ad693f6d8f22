package store

import (
	"context"

	"firebase.google.com/go/v4/db"

	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/internal/models"
)

type yardStore struct {
	db *db.Client
}

func NewYardStore(database *db.Client) *yardStore {
	return &yardStore{db: database}
}

func (s *yardStore) entryRef(dealerSlug, chassis string) *db.Ref {
	return s.db.NewRef(PathYard(dealerSlug)).Child(chassis)
}

func (s *yardStore) Put(ctx context.Context, e models.YardStockEntry) error {
	if err := s.entryRef(e.DealerSlug, e.Chassis).Set(ctx, e); err != nil {
		return errs.NewDatabaseError("write", "failed to write yard entry "+e.Chassis, err)
	}
	return nil
}

// PutBatch writes entries one ref at a time, collecting per-entry failures
// instead of aborting; bulk imports tolerate partial success.
func (s *yardStore) PutBatch(ctx context.Context, entries []models.YardStockEntry) (written int, failures []error) {
	for _, e := range entries {
		if err := s.Put(ctx, e); err != nil {
			failures = append(failures, err)
			continue
		}
		written++
	}
	return written, failures
}

func (s *yardStore) Delete(ctx context.Context, dealerSlug, chassis string) error {
	if err := s.entryRef(dealerSlug, chassis).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to remove yard entry "+chassis, err)
	}
	return nil
}

func (s *yardStore) Get(ctx context.Context, dealerSlug, chassis string) (*models.YardStockEntry, error) {
	var e models.YardStockEntry
	if err := s.entryRef(dealerSlug, chassis).Get(ctx, &e); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to read yard entry "+chassis, err)
	}
	if e.Chassis == "" {
		return nil, errs.NewNotFoundError("yard entry not found: " + chassis)
	}
	return &e, nil
}
