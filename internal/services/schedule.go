package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/internal/models"
	"github.com/roamerv/dealer-backend/internal/normalize"
	"github.com/roamerv/dealer-backend/internal/store"
	"github.com/roamerv/dealer-backend/pkg/dates"
	"github.com/roamerv/dealer-backend/pkg/logger"
	"github.com/roamerv/dealer-backend/pkg/slugs"
)

// Risk thresholds. The two red-slot windows are independent business
// policies and are deliberately not unified.
const (
	redSlotUnsignedDays = 14
	redSlotEmptyWeeks   = 22.0
	onRoadSoonDays      = 3
)

// snapshotSource is the cached feed reader services pull raw snapshots
// through.
type snapshotSource interface {
	Snapshot(ctx context.Context, path string) (json.RawMessage, error)
}

type scheduleService struct {
	feeds    snapshotSource
	clockNow func() time.Time
}

func NewScheduleService(feeds snapshotSource) *scheduleService {
	return &scheduleService{feeds: feeds, clockNow: time.Now}
}

// snapshotOrEmpty reads a feed path, degrading a failed feed to an empty
// collection: one unavailable feed must not take down the aggregation pass.
func snapshotOrEmpty(ctx context.Context, feeds snapshotSource, path string) json.RawMessage {
	raw, err := feeds.Snapshot(ctx, path)
	if err != nil {
		logger.FromContext(ctx).Warn("feed unavailable, treating as empty", "path", path, "error", err)
		return nil
	}
	return raw
}

// ScopeToDealer keeps the orders whose dealer name slugifies to dealerSlug.
// Group contexts resolve to exactly one member slug before calling this;
// members are never pooled into one aggregate.
func ScopeToDealer(orders []models.Order, dealerSlug string) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if slugs.SlugifyName(o.Dealer) == dealerSlug {
			out = append(out, o)
		}
	}
	return out
}

func (s *scheduleService) Orders(ctx context.Context, dealerSlug string, filters dto.OrderFilters) (dto.OrdersResult, error) {
	raw := snapshotOrEmpty(ctx, s.feeds, store.PathSchedule)
	orders := normalize.Orders(raw, normalize.ScheduleOptions{})
	scoped := ScopeToDealer(orders, dealerSlug)
	filtered := applyOrderFilters(scoped, filters)

	now := s.clockNow()
	rows := make([]dto.OrderRow, len(filtered))
	for i, o := range filtered {
		rows[i] = dto.OrderRow{Order: o, Flags: computeFlags(o, now)}
	}
	return dto.OrdersResult{Dealer: dealerSlug, Rows: rows, Total: len(rows)}, nil
}

// Order finds a single scoped order by chassis; used for confirmation
// documents.
func (s *scheduleService) Order(ctx context.Context, dealerSlug, chassis string) (dto.OrderRow, error) {
	result, err := s.Orders(ctx, dealerSlug, dto.OrderFilters{})
	if err != nil {
		return dto.OrderRow{}, err
	}
	for _, row := range result.Rows {
		if strings.EqualFold(row.Chassis, chassis) {
			return row, nil
		}
	}
	return dto.OrderRow{}, errs.NewNotFoundError("order not found: " + chassis)
}

// Unsigned lists the dealer's orders still waiting on signed plans, with
// the count inside the 14-day red window.
func (s *scheduleService) Unsigned(ctx context.Context, dealerSlug string) (dto.UnsignedResult, error) {
	result, err := s.Orders(ctx, dealerSlug, dto.OrderFilters{})
	if err != nil {
		return dto.UnsignedResult{}, err
	}
	out := dto.UnsignedResult{Dealer: dealerSlug}
	for _, row := range result.Rows {
		if !row.Flags.Unsigned {
			continue
		}
		out.Rows = append(out.Rows, row)
		if row.Flags.RedSlotUnsigned {
			out.RedCount++
		}
	}
	return out, nil
}

// EmptySlots lists allocated production slots with no chassis assigned.
// These rows fail the default schedule filter, so normalization runs with
// the no-chassis and no-customer overrides.
func (s *scheduleService) EmptySlots(ctx context.Context, dealerSlug string) (dto.EmptySlotsResult, error) {
	raw := snapshotOrEmpty(ctx, s.feeds, store.PathSchedule)
	orders := normalize.Orders(raw, normalize.ScheduleOptions{
		IncludeNoChassis:  true,
		IncludeNoCustomer: true,
	})
	scoped := ScopeToDealer(orders, dealerSlug)

	now := s.clockNow()
	out := dto.EmptySlotsResult{Dealer: dealerSlug}
	for _, o := range scoped {
		flags := computeFlags(o, now)
		if !flags.EmptySlot {
			continue
		}
		out.Rows = append(out.Rows, dto.OrderRow{Order: o, Flags: flags})
		if flags.RedSlotEmpty {
			out.RedCount++
		}
	}
	return out, nil
}

// ByModel groups a dealer's filtered orders by model name.
func (s *scheduleService) ByModel(ctx context.Context, dealerSlug string, filters dto.OrderFilters) ([]dto.ModelGroup, error) {
	result, err := s.Orders(ctx, dealerSlug, filters)
	if err != nil {
		return nil, err
	}
	groups := map[string]*dto.ModelGroup{}
	for _, row := range result.Rows {
		model := row.Model
		if model == "" {
			model = models.UnknownClassification
		}
		g, ok := groups[model]
		if !ok {
			g = &dto.ModelGroup{Model: model}
			groups[model] = g
		}
		g.Count++
		g.Rows = append(g.Rows, row)
	}
	out := make([]dto.ModelGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out, nil
}

// --- Flags ---

func computeFlags(o models.Order, now time.Time) dto.OrderFlags {
	forecast := dates.ParseFlexible(o.ForecastProductionDate)
	daysTo := dates.DaysFromToday(forecast, now)

	flags := dto.OrderFlags{DaysToForecast: daysTo}

	signed := strings.TrimSpace(o.SignedPlansReceived)
	flags.Unsigned = o.Chassis != "" && (signed == "" || strings.EqualFold(signed, "no"))
	flags.RedSlotUnsigned = flags.Unsigned && daysTo != nil && *daysTo <= redSlotUnsignedDays

	// An empty slot has a dealer but no chassis key at all; a present-but-
	// empty chassis is a data-quality case that stays out of both buckets.
	flags.EmptySlot = o.Dealer != "" && !o.HasChassis
	if flags.EmptySlot {
		if weeks := dates.WeeksUntil(o.ForecastProductionDate, now); weeks != nil && *weeks < redSlotEmptyWeeks {
			flags.RedSlotEmpty = true
		}
	}

	flags.OnRoadSoon = onRoadSoon(o, now)
	return flags
}

func onRoadSoon(o models.Order, now time.Time) bool {
	text := o.RequestedDeliveryDate
	if text == "" {
		text = o.ForecastProductionDate
	}
	days := dates.DaysFromToday(dates.ParseFlexible(text), now)
	if days == nil || *days > onRoadSoonDays {
		return false
	}
	status := strings.ToLower(o.ProductionStatus)
	return status == "" || strings.Contains(status, "pgi") || strings.Contains(status, "dispatch")
}

// --- Facets ---

// facetSkipped reports a facet left at its sentinel (empty or "all").
func facetSkipped(value string) bool {
	return value == "" || strings.EqualFold(value, dto.FacetAll)
}

func facetMatches(value, facet string) bool {
	return strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(facet))
}

var orderSearchFields = func(o models.Order) []string {
	return []string{o.Chassis, o.Customer, o.Dealer, o.Model}
}

// applyOrderFilters intersects all active facets: a row passes only if it
// satisfies every one.
func applyOrderFilters(orders []models.Order, f dto.OrderFilters) []models.Order {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if !facetSkipped(f.ModelRange) && !strings.HasPrefix(strings.ToLower(o.Model), strings.ToLower(f.ModelRange)) {
			continue
		}
		if !facetSkipped(f.Colour) && !facetMatches(o.Colour, f.Colour) {
			continue
		}
		if !facetSkipped(f.Decals) && !facetMatches(o.Decals, f.Decals) {
			continue
		}
		if !facetSkipped(f.ExteriorColour) && !facetMatches(o.ExteriorColour, f.ExteriorColour) {
			continue
		}
		if !facetSkipped(f.ProductionStatus) && !facetMatches(o.ProductionStatus, f.ProductionStatus) {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(strings.Join(orderSearchFields(o), " "))
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		out = append(out, o)
	}
	return out
}
