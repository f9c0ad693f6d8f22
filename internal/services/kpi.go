package services

import (
	"context"
	"sort"
	"time"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/internal/models"
	"github.com/roamerv/dealer-backend/internal/normalize"
	"github.com/roamerv/dealer-backend/internal/store"
	"github.com/roamerv/dealer-backend/pkg/dates"
	"github.com/roamerv/dealer-backend/pkg/slugs"
)

const trendWeeks = 10

type kpiService struct {
	feeds    snapshotSource
	clockNow func() time.Time
}

func NewKPIService(feeds snapshotSource) *kpiService {
	return &kpiService{feeds: feeds, clockNow: time.Now}
}

// ResolveWindow turns WindowArgs into a concrete [from, to] pair, to
// normalized to end of day. The default window is the last 7 days.
func ResolveWindow(args dto.WindowArgs, now time.Time) (from, to time.Time, err error) {
	preset := args.Preset
	if preset == "" && args.From == "" && args.To == "" {
		preset = dto.WindowDefault
	}

	switch preset {
	case dto.WindowLast7:
		return dates.Midnight(now.AddDate(0, 0, -7)), dates.EndOfDay(now), nil
	case dto.WindowLast30:
		return dates.Midnight(now.AddDate(0, 0, -30)), dates.EndOfDay(now), nil
	case dto.WindowLast90:
		return dates.Midnight(now.AddDate(0, 0, -90)), dates.EndOfDay(now), nil
	case "", dto.WindowCustom:
		f := dates.ParseFlexible(args.From)
		t := dates.ParseFlexible(args.To)
		if f == nil || t == nil {
			return from, to, errs.NewValidationError("custom window requires valid from and to dates")
		}
		if t.Before(*f) {
			return from, to, errs.NewValidationError("window end precedes its start")
		}
		return dates.Midnight(*f), dates.EndOfDay(*t), nil
	}
	return from, to, errs.NewValidationError("unknown window preset: " + preset)
}

// Summary computes the four standing KPI cards. The first three are
// windowed; current yard stock reads "right now" regardless of the window.
// That asymmetry is intentional.
func (s *kpiService) Summary(ctx context.Context, dealerSlug string, args dto.WindowArgs) (dto.KPISummary, error) {
	now := s.clockNow()
	from, to, err := ResolveWindow(args, now)
	if err != nil {
		return dto.KPISummary{}, err
	}
	out := dto.KPISummary{
		From: from.Format(dates.DayLayout),
		To:   to.Format(dates.DayLayout),
	}

	pgis := normalize.PGIRecords(snapshotOrEmpty(ctx, s.feeds, store.PathPGIRecords), false)
	for _, rec := range pgis {
		if slugs.SlugifyName(rec.Dealer) != dealerSlug {
			continue
		}
		if d := dates.ParseFlexible(rec.PGIDate); d != nil && dates.InRange(*d, from, to) {
			out.PGICount++
		}
	}

	entries := normalize.YardEntries(snapshotOrEmpty(ctx, s.feeds, store.PathYard(dealerSlug)), dealerSlug)
	for _, e := range entries {
		if d := dates.ParseFlexible(e.ReceivedAt); d != nil && dates.InRange(*d, from, to) {
			out.ReceivedCount++
		}
		out.CurrentYard.Total++
		switch e.Type {
		case models.EntryTypeCustomer:
			out.CurrentYard.Customer++
		default:
			out.CurrentYard.Stock++
		}
	}

	// The handover path is already dealer-scoped; only the window applies.
	handovers := normalize.Handovers(snapshotOrEmpty(ctx, s.feeds, store.PathHandover(dealerSlug)), dealerSlug)
	for _, h := range handovers {
		if d := dates.ParseFlexible(h.HandoverAt); d != nil && dates.InRange(*d, from, to) {
			out.HandoverCount++
		}
	}

	return out, nil
}

// OnRoad lists the dealer's in-transit vehicles inside the window. This
// view holds its own window state, independent of the KPI cards.
func (s *kpiService) OnRoad(ctx context.Context, dealerSlug string, args dto.WindowArgs) (dto.OnRoadResult, error) {
	now := s.clockNow()
	from, to, err := ResolveWindow(args, now)
	if err != nil {
		return dto.OnRoadResult{}, err
	}
	out := dto.OnRoadResult{
		From: from.Format(dates.DayLayout),
		To:   to.Format(dates.DayLayout),
	}

	pgis := normalize.PGIRecords(snapshotOrEmpty(ctx, s.feeds, store.PathPGIRecords), false)
	for _, rec := range pgis {
		if slugs.SlugifyName(rec.Dealer) != dealerSlug {
			continue
		}
		d := dates.ParseFlexible(rec.PGIDate)
		if d == nil || !dates.InRange(*d, from, to) {
			continue
		}
		row := dto.OnRoadRow{
			Chassis:  rec.Chassis,
			PGIDate:  rec.PGIDate,
			Dealer:   rec.Dealer,
			Model:    rec.Model,
			Customer: rec.Customer,
		}
		if age := dates.DaysFrom(now, *d); age >= 0 {
			row.DaysSincePGI = &age
		}
		out.Rows = append(out.Rows, row)
	}
	sort.Slice(out.Rows, func(i, j int) bool { return out.Rows[i].Chassis < out.Rows[j].Chassis })
	return out, nil
}

// BucketByMonth buckets instants into ordered YYYY-MM calendar groups
// within [from, to].
func BucketByMonth(times []time.Time, from, to time.Time) []dto.MonthBucket {
	counts := map[string]int{}
	for _, t := range times {
		if dates.InRange(t, from, to) {
			counts[dates.MonthKey(t)]++
		}
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]dto.MonthBucket, len(keys))
	for i, k := range keys {
		out[i] = dto.MonthBucket{MonthKey: k, Label: dates.MonthLabel(k), Count: counts[k]}
	}
	return out
}

// MonthlyReceived is the received-into-yard count by calendar month.
func (s *kpiService) MonthlyReceived(ctx context.Context, dealerSlug string, args dto.WindowArgs) ([]dto.MonthBucket, error) {
	from, to, err := ResolveWindow(args, s.clockNow())
	if err != nil {
		return nil, err
	}
	entries := normalize.YardEntries(snapshotOrEmpty(ctx, s.feeds, store.PathYard(dealerSlug)), dealerSlug)
	times := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		if d := dates.ParseFlexible(e.ReceivedAt); d != nil {
			times = append(times, *d)
		}
	}
	return BucketByMonth(times, from, to), nil
}

// StockTrend reconstructs a 10-week trailing stock-level series from the
// current total plus per-week received/handover deltas. The level at week
// i is the current total minus the net deltas of every later week, clamped
// at zero; no historical snapshots are stored.
func (s *kpiService) StockTrend(ctx context.Context, dealerSlug string) (dto.StockTrendResult, error) {
	now := s.clockNow()
	entries := normalize.YardEntries(snapshotOrEmpty(ctx, s.feeds, store.PathYard(dealerSlug)), dealerSlug)
	handovers := normalize.Handovers(snapshotOrEmpty(ctx, s.feeds, store.PathHandover(dealerSlug)), dealerSlug)

	currentMonday := dates.MondayOfWeek(now)
	weeks := make([]dto.WeekPoint, trendWeeks)
	for i := range weeks {
		weeks[i].WeekStart = currentMonday.AddDate(0, 0, -7*(trendWeeks-1-i))
	}

	weekIndex := func(t time.Time) int {
		monday := dates.MondayOfWeek(t)
		offset := dates.DaysFrom(currentMonday, monday) / 7
		if offset < 0 || offset >= trendWeeks {
			return -1
		}
		return trendWeeks - 1 - offset
	}

	for _, e := range entries {
		if d := dates.ParseFlexible(e.ReceivedAt); d != nil {
			if i := weekIndex(*d); i >= 0 {
				weeks[i].Received++
			}
		}
	}
	for _, h := range handovers {
		if d := dates.ParseFlexible(h.HandoverAt); d != nil {
			if i := weekIndex(*d); i >= 0 {
				weeks[i].Handovers++
			}
		}
	}

	currentTotal := len(entries)
	laterNet := 0
	for i := trendWeeks - 1; i >= 0; i-- {
		weeks[i].Net = weeks[i].Received - weeks[i].Handovers
		level := currentTotal - laterNet
		if level < 0 {
			level = 0
		}
		weeks[i].StockLevel = level
		laterNet += weeks[i].Net
	}

	return dto.StockTrendResult{
		Dealer:       dealerSlug,
		CurrentTotal: currentTotal,
		Weeks:        weeks,
	}, nil
}
