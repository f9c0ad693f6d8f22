package store

import (
	"context"
	"sort"

	"firebase.google.com/go/v4/db"

	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/internal/models"
)

type tierStore struct {
	db *db.Client
}

func NewTierStore(database *db.Client) *tierStore {
	return &tierStore{db: database}
}

func (s *tierStore) Targets(ctx context.Context) ([]models.TierTarget, error) {
	var keyed map[string]models.TierTarget
	if err := s.db.NewRef(PathTierSettings).Get(ctx, &keyed); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to read tier settings", err)
	}
	out := make([]models.TierTarget, 0, len(keyed))
	for code, t := range keyed {
		if t.TierCode == "" {
			t.TierCode = code
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TierCode < out[j].TierCode })
	return out, nil
}

func (s *tierStore) PutTarget(ctx context.Context, t models.TierTarget) error {
	err := s.db.NewRef(PathTierSettings).Child(t.TierCode).Set(ctx, t)
	if err != nil {
		return errs.NewDatabaseError("write", "failed to write tier target "+t.TierCode, err)
	}
	return nil
}

func (s *tierStore) YardSettings(ctx context.Context) (models.YardSettings, error) {
	var settings models.YardSettings
	if err := s.db.NewRef(PathYardSize).Get(ctx, &settings); err != nil {
		return settings, errs.NewDatabaseError("read", "failed to read yard settings", err)
	}
	return settings, nil
}
