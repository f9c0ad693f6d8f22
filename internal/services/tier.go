package services

import (
	"context"
	"math"
	"strings"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/internal/models"
	"github.com/roamerv/dealer-backend/internal/normalize"
	"github.com/roamerv/dealer-backend/internal/store"
	"github.com/roamerv/dealer-backend/pkg/helpers"
)

type tierTargetSource interface {
	Targets(ctx context.Context) ([]models.TierTarget, error)
	PutTarget(ctx context.Context, t models.TierTarget) error
	YardSettings(ctx context.Context) (models.YardSettings, error)
}

type tierService struct {
	feeds   snapshotSource
	targets tierTargetSource
}

func NewTierService(feeds snapshotSource, targets tierTargetSource) *tierService {
	return &tierService{feeds: feeds, targets: targets}
}

// layoutFor resolves the tier layout for a dealer: the dealer's own layout
// when one is configured, the shared default otherwise. No layout at all
// yields nil and the comparison degrades to every entry unassigned.
func (s *tierService) layoutFor(ctx context.Context, dealerSlug string) []models.TierSlot {
	if slots := normalize.TierSlots(snapshotOrEmpty(ctx, s.feeds, store.PathDealerLayout(dealerSlug))); len(slots) > 0 {
		return slots
	}
	return normalize.TierSlots(snapshotOrEmpty(ctx, s.feeds, store.PathDefaultLayout))
}

// Compare lines the dealer's current yard up against the tier stocking
// policy. Target counts are the yard baseline split by each tier's share,
// rounded half away from zero; status compares the actual count against
// the tier's minimum and optional ceiling.
func (s *tierService) Compare(ctx context.Context, dealerSlug string) (dto.TierResult, error) {
	targets, err := s.targets.Targets(ctx)
	if err != nil {
		return dto.TierResult{}, err
	}
	settings, err := s.targets.YardSettings(ctx)
	if err != nil {
		return dto.TierResult{}, err
	}

	slots := s.layoutFor(ctx, dealerSlug)
	entries := normalize.YardEntries(snapshotOrEmpty(ctx, s.feeds, store.PathYard(dealerSlug)), dealerSlug)

	// Model name -> tier code, from the layout's assigned models.
	modelTier := map[string]string{}
	slotNames := map[string]string{}
	for _, slot := range slots {
		slotNames[slot.TierCode] = slot.Name
		for _, m := range slot.AssignedModels {
			modelTier[strings.ToLower(strings.TrimSpace(m))] = slot.TierCode
		}
	}

	actuals := map[string]int{}
	unassigned := 0
	for _, e := range entries {
		code, ok := modelTier[strings.ToLower(strings.TrimSpace(e.Model))]
		if !ok {
			unassigned++
			continue
		}
		actuals[code]++
	}

	result := dto.TierResult{
		Dealer:     dealerSlug,
		Baseline:   settings.BaselineVolume,
		Unassigned: unassigned,
	}
	for _, t := range targets {
		cmp := dto.TierComparison{
			TierCode:    t.TierCode,
			Name:        helpers.FirstNonEmpty(slotNames[t.TierCode], t.Label),
			TargetCount: int(math.Round(float64(settings.BaselineVolume) * t.TargetShare)),
			Minimum:     t.MinimumCount,
			Ceiling:     t.CeilingCount,
			Actual:      actuals[t.TierCode],
		}
		cmp.Status = tierStatus(cmp.Actual, cmp.Minimum, cmp.Ceiling)
		result.Tiers = append(result.Tiers, cmp)
	}
	return result, nil
}

// SetTarget upserts one tier's stocking policy, keyed by tier code.
func (s *tierService) SetTarget(ctx context.Context, t models.TierTarget) (models.TierTarget, error) {
	t.TierCode = strings.TrimSpace(t.TierCode)
	if t.TierCode == "" {
		return models.TierTarget{}, errs.NewValidationError("tier code is required")
	}
	if t.TargetShare < 0 || t.TargetShare > 1 {
		return models.TierTarget{}, errs.NewValidationError("target share must be between 0 and 1")
	}
	if t.MinimumCount < 0 {
		return models.TierTarget{}, errs.NewValidationError("minimum count cannot be negative")
	}
	if t.CeilingCount != nil && *t.CeilingCount < t.MinimumCount {
		return models.TierTarget{}, errs.NewValidationError("ceiling cannot sit below the minimum")
	}
	if err := s.targets.PutTarget(ctx, t); err != nil {
		return models.TierTarget{}, err
	}
	return t, nil
}

func tierStatus(actual, minimum int, ceiling *int) string {
	if actual < minimum {
		return dto.TierUnderStock
	}
	if ceiling != nil && actual > *ceiling {
		return dto.TierOverStock
	}
	return dto.TierOnTarget
}
