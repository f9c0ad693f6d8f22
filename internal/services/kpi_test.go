package services

import (
	"context"
	"testing"
	"time"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/store"
)

func newKPIService(feeds *fakeFeeds) *kpiService {
	svc := NewKPIService(feeds)
	svc.clockNow = func() time.Time { return testNow }
	return svc
}

func TestResolveWindow(t *testing.T) {
	from, to, err := ResolveWindow(dto.WindowArgs{}, testNow)
	if err != nil {
		t.Fatalf("default window: %v", err)
	}
	if got := int(to.Sub(from).Hours() / 24); got != 7 {
		t.Fatalf("default window spans %d days, want 7", got)
	}

	from, to, err = ResolveWindow(dto.WindowArgs{From: "2026-01-01", To: "2026-03-31"}, testNow)
	if err != nil {
		t.Fatalf("custom window: %v", err)
	}
	if from.Month() != time.January || to.Month() != time.March {
		t.Fatalf("custom window = [%v, %v]", from, to)
	}
	if to.Hour() != 23 {
		t.Fatal("window end must be normalized to end of day")
	}

	if _, _, err := ResolveWindow(dto.WindowArgs{Preset: dto.WindowCustom}, testNow); err == nil {
		t.Fatal("custom preset without dates must fail")
	}
	if _, _, err := ResolveWindow(dto.WindowArgs{From: "2026-03-31", To: "2026-01-01"}, testNow); err == nil {
		t.Fatal("reversed window must fail")
	}
	if _, _, err := ResolveWindow(dto.WindowArgs{Preset: "14d"}, testNow); err == nil {
		t.Fatal("unknown preset must fail")
	}
}

func TestSummaryWindowsEventsButNotYard(t *testing.T) {
	feeds := &fakeFeeds{snapshots: map[string]string{
		store.PathPGIRecords: `{
			"T1": {"chassis": "T1", "dealer": "Acme RV", "pgiDate": "30/08/2026"},
			"T2": {"chassis": "T2", "dealer": "Acme RV", "pgiDate": "01/07/2026"},
			"T3": {"chassis": "T3", "dealer": "Other Dealer", "pgiDate": "30/08/2026"},
			"T4": {"chassis": "T4", "dealer": "Acme RV", "pgiDate": "30/08/2026", "history": true}
		}`,
		store.PathYard("acme-rv"): `{
			"Y1": {"chassis": "Y1", "receivedAt": "2026-08-28T12:00:00Z", "customer": "Jones"},
			"Y2": {"chassis": "Y2", "receivedAt": "2026-02-01T12:00:00Z", "customer": "Acme Stock"},
			"Y3": {"chassis": "Y3", "receivedAt": "2026-01-15T12:00:00Z"}
		}`,
		store.PathHandover("acme-rv"): `{
			"H1": {"chassis": "H1", "handoverAt": "2026-08-29T12:00:00Z"},
			"H2": {"chassis": "H2", "handoverAt": "2026-06-01T12:00:00Z"}
		}`,
	}}
	svc := newKPIService(feeds)

	summary, err := svc.Summary(context.Background(), "acme-rv", dto.WindowArgs{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.PGICount != 1 {
		t.Fatalf("PGI count = %d, want 1 (windowed, scoped, history hidden)", summary.PGICount)
	}
	if summary.ReceivedCount != 1 {
		t.Fatalf("received count = %d, want 1", summary.ReceivedCount)
	}
	if summary.HandoverCount != 1 {
		t.Fatalf("handover count = %d, want 1", summary.HandoverCount)
	}
	if summary.CurrentYard.Total != 3 {
		t.Fatalf("current yard total = %d, want 3 (never windowed)", summary.CurrentYard.Total)
	}
	if summary.CurrentYard.Customer != 1 || summary.CurrentYard.Stock != 2 {
		t.Fatalf("yard split = %+v", summary.CurrentYard)
	}
}

func TestOnRoadAges(t *testing.T) {
	feeds := &fakeFeeds{snapshots: map[string]string{
		store.PathPGIRecords: `{
			"T1": {"chassis": "T1", "dealer": "Acme RV", "pgiDate": "28/08/2026", "model": "Summit 22"},
			"T2": {"chassis": "T2", "dealer": "Acme RV", "pgiDate": "31/12/2025"}
		}`,
	}}
	svc := newKPIService(feeds)

	result, err := svc.OnRoad(context.Background(), "acme-rv", dto.WindowArgs{Preset: dto.WindowLast30})
	if err != nil {
		t.Fatalf("OnRoad: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(result.Rows))
	}
	row := result.Rows[0]
	if row.DaysSincePGI == nil || *row.DaysSincePGI != 4 {
		t.Fatalf("days since PGI = %v, want 4", row.DaysSincePGI)
	}
}

func TestBucketByMonthOrdering(t *testing.T) {
	instants := []time.Time{
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local),
		time.Date(2024, 1, 20, 0, 0, 0, 0, time.Local),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local),
	}
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 2, 28, 23, 59, 59, 0, time.Local)

	buckets := BucketByMonth(instants, from, to)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[0].MonthKey != "2024-01" || buckets[0].Count != 2 {
		t.Fatalf("first bucket = %+v", buckets[0])
	}
	if buckets[1].MonthKey != "2024-02" || buckets[1].Count != 1 {
		t.Fatalf("second bucket = %+v", buckets[1])
	}
	if buckets[0].Label != "Jan 2024" {
		t.Fatalf("label = %q", buckets[0].Label)
	}
}

// Current total 10 with recent weekly nets +2, -1, +3 must back-compute to
// levels 8, 7, 10 for those weeks.
func TestStockTrendBackComputation(t *testing.T) {
	// testNow is Tue 2026-09-01; current week starts Mon 2026-08-31.
	feeds := &fakeFeeds{snapshots: map[string]string{
		store.PathYard("acme-rv"): `{
			"O1": {"chassis": "O1", "receivedAt": "2026-01-01T12:00:00Z"},
			"O2": {"chassis": "O2", "receivedAt": "2026-01-01T12:00:00Z"},
			"O3": {"chassis": "O3", "receivedAt": "2026-01-01T12:00:00Z"},
			"O4": {"chassis": "O4", "receivedAt": "2026-01-01T12:00:00Z"},
			"O5": {"chassis": "O5", "receivedAt": "2026-01-01T12:00:00Z"},
			"W7A": {"chassis": "W7A", "receivedAt": "2026-08-18T12:00:00Z"},
			"W7B": {"chassis": "W7B", "receivedAt": "2026-08-18T12:00:00Z"},
			"W9A": {"chassis": "W9A", "receivedAt": "2026-08-31T12:00:00Z"},
			"W9B": {"chassis": "W9B", "receivedAt": "2026-08-31T12:00:00Z"},
			"W9C": {"chassis": "W9C", "receivedAt": "2026-08-31T12:00:00Z"}
		}`,
		store.PathHandover("acme-rv"): `{
			"H1": {"chassis": "H1", "handoverAt": "2026-08-25T12:00:00Z"}
		}`,
	}}
	svc := newKPIService(feeds)

	trend, err := svc.StockTrend(context.Background(), "acme-rv")
	if err != nil {
		t.Fatalf("StockTrend: %v", err)
	}
	if trend.CurrentTotal != 10 {
		t.Fatalf("current total = %d, want 10", trend.CurrentTotal)
	}
	if len(trend.Weeks) != 10 {
		t.Fatalf("got %d weeks, want 10", len(trend.Weeks))
	}

	if got := trend.Weeks[7]; got.Net != 2 || got.StockLevel != 8 {
		t.Fatalf("week 7 = %+v, want net 2 level 8", got)
	}
	if got := trend.Weeks[8]; got.Net != -1 || got.StockLevel != 7 {
		t.Fatalf("week 8 = %+v, want net -1 level 7", got)
	}
	if got := trend.Weeks[9]; got.Net != 3 || got.StockLevel != 10 {
		t.Fatalf("week 9 = %+v, want net 3 level 10", got)
	}
	if got := trend.Weeks[0]; got.Net != 0 || got.StockLevel != 6 {
		t.Fatalf("oldest week = %+v, want net 0 level 6", got)
	}
}
