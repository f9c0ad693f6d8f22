package services

import (
	"context"
	"slices"
	"strings"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/internal/models"
	"github.com/roamerv/dealer-backend/pkg/slugs"
)

type dealerConfigStore interface {
	Get(ctx context.Context, slug string) (*models.DealerConfig, error)
	List(ctx context.Context) ([]models.DealerConfig, error)
	Put(ctx context.Context, cfg models.DealerConfig) error
	Delete(ctx context.Context, slug string) error
}

type dealerService struct {
	configs dealerConfigStore
}

func NewDealerService(configs dealerConfigStore) *dealerService {
	return &dealerService{configs: configs}
}

// ResolveAccess validates a portal access URL ({slug}-{code}) and returns
// the dealer or group configuration it grants. Inactive dealers and code
// mismatches both come back as unauthorized so the portal cannot probe
// which slugs exist.
func (s *dealerService) ResolveAccess(ctx context.Context, accessURL string) (*models.DealerConfig, error) {
	slug, code := slugs.SplitAccessURL(accessURL)
	if slug == "" || !slugs.ValidAccessCode(code) {
		return nil, errs.NewUnauthorizedError("invalid access link")
	}
	cfg, err := s.configs.Get(ctx, slug)
	if err != nil {
		if _, ok := err.(*errs.NotFoundError); ok {
			return nil, errs.NewUnauthorizedError("invalid access link")
		}
		return nil, err
	}
	if !cfg.IsActive || !strings.EqualFold(cfg.AccessCode, code) {
		return nil, errs.NewUnauthorizedError("invalid access link")
	}
	return cfg, nil
}

func (s *dealerService) VerifyAccess(ctx context.Context, accessURL string) (dto.VerifyAccessResult, error) {
	cfg, err := s.ResolveAccess(ctx, accessURL)
	if err != nil {
		return dto.VerifyAccessResult{}, err
	}
	return dto.VerifyAccessResult{
		Slug:        cfg.Slug,
		Name:        cfg.Name,
		IsGroup:     cfg.IsGroup,
		MemberSlugs: cfg.MemberSlugs(),
		PowerBIURL:  cfg.PowerBIURL,
	}, nil
}

// SelectMember picks the member slug a group session is scoped to. A plain
// dealer ignores the requested member; a group only accepts one of its own.
func (s *dealerService) SelectMember(cfg *models.DealerConfig, requested string) (string, error) {
	members := cfg.MemberSlugs()
	if requested == "" {
		return members[0], nil
	}
	requested = slugs.NormalizeDealerSlug(requested)
	for _, m := range members {
		if m == requested {
			return m, nil
		}
	}
	return "", errs.NewUnauthorizedError("dealer " + requested + " is not part of this group")
}

func (s *dealerService) List(ctx context.Context) ([]models.DealerConfig, error) {
	return s.configs.List(ctx)
}

func (s *dealerService) Get(ctx context.Context, slug string) (*models.DealerConfig, error) {
	return s.configs.Get(ctx, slugs.NormalizeDealerSlug(slug))
}

func (s *dealerService) Create(ctx context.Context, req dto.CreateDealerRequest) (*models.DealerConfig, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.NewValidationError("dealer name is required")
	}
	slug := slugs.SlugifyName(name)
	if slug == "" {
		return nil, errs.NewValidationError("dealer name produces an empty slug")
	}
	if existing, err := s.configs.Get(ctx, slug); err == nil && existing != nil {
		return nil, errs.NewAlreadyExistsError("dealer already exists: " + slug)
	}
	if req.IsGroup && len(req.IncludedDealerSlugs) == 0 {
		return nil, errs.NewValidationError("a dealer group needs at least one member")
	}

	cfg := models.DealerConfig{
		Slug:                slug,
		Name:                name,
		AccessCode:          slugs.NewAccessCode(),
		IsActive:            true,
		PowerBIURL:          req.PowerBIURL,
		IsGroup:             req.IsGroup,
		IncludedDealerSlugs: normalizeMemberSlugs(req.IncludedDealerSlugs),
	}
	if err := s.configs.Put(ctx, cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *dealerService) Update(ctx context.Context, slug string, req dto.UpdateDealerRequest) (*models.DealerConfig, error) {
	cfg, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		cfg.Name = strings.TrimSpace(*req.Name)
	}
	if req.PowerBIURL != nil {
		cfg.PowerBIURL = *req.PowerBIURL
	}
	if req.IsActive != nil {
		cfg.IsActive = *req.IsActive
	}
	if req.IncludedDealerSlugs != nil {
		if !cfg.IsGroup {
			return nil, errs.NewValidationError("cannot assign members to a non-group dealer")
		}
		cfg.IncludedDealerSlugs = normalizeMemberSlugs(req.IncludedDealerSlugs)
	}
	if err := s.configs.Put(ctx, *cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *dealerService) Delete(ctx context.Context, slug string) error {
	if _, err := s.Get(ctx, slug); err != nil {
		return err
	}
	return s.configs.Delete(ctx, slugs.NormalizeDealerSlug(slug))
}

// RotateCode replaces the dealer's access code, invalidating the old link.
func (s *dealerService) RotateCode(ctx context.Context, slug string) (dto.RotateCodeResult, error) {
	cfg, err := s.Get(ctx, slug)
	if err != nil {
		return dto.RotateCodeResult{}, err
	}
	cfg.AccessCode = slugs.NewAccessCode()
	if err := s.configs.Put(ctx, *cfg); err != nil {
		return dto.RotateCodeResult{}, err
	}
	return dto.RotateCodeResult{
		Slug:       cfg.Slug,
		AccessCode: cfg.AccessCode,
		AccessURL:  cfg.Slug + "-" + cfg.AccessCode,
	}, nil
}

func normalizeMemberSlugs(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, m := range raw {
		if slug := slugs.NormalizeDealerSlug(m); slug != "" && !slices.Contains(out, slug) {
			out = append(out, slug)
		}
	}
	return out
}
