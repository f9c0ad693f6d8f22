package store

import (
	"context"
	"sort"

	"firebase.google.com/go/v4/db"

	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/internal/models"
)

type dealerStore struct {
	db *db.Client
}

func NewDealerStore(database *db.Client) *dealerStore {
	return &dealerStore{db: database}
}

func (s *dealerStore) ref(slug string) *db.Ref {
	return s.db.NewRef(PathDealerConfigs).Child(slug)
}

func (s *dealerStore) Get(ctx context.Context, slug string) (*models.DealerConfig, error) {
	var cfg models.DealerConfig
	if err := s.ref(slug).Get(ctx, &cfg); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to read dealer config "+slug, err)
	}
	if cfg.Slug == "" {
		return nil, errs.NewNotFoundError("dealer not found: " + slug)
	}
	return &cfg, nil
}

func (s *dealerStore) List(ctx context.Context) ([]models.DealerConfig, error) {
	var all map[string]models.DealerConfig
	if err := s.db.NewRef(PathDealerConfigs).Get(ctx, &all); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list dealer configs", err)
	}
	out := make([]models.DealerConfig, 0, len(all))
	for slug, cfg := range all {
		if cfg.Slug == "" {
			cfg.Slug = slug
		}
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (s *dealerStore) Put(ctx context.Context, cfg models.DealerConfig) error {
	if err := s.ref(cfg.Slug).Set(ctx, cfg); err != nil {
		return errs.NewDatabaseError("write", "failed to write dealer config "+cfg.Slug, err)
	}
	return nil
}

func (s *dealerStore) Delete(ctx context.Context, slug string) error {
	if err := s.ref(slug).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete dealer config "+slug, err)
	}
	return nil
}
