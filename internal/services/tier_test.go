package services

import (
	"context"
	"testing"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/models"
	"github.com/roamerv/dealer-backend/internal/store"
	"github.com/roamerv/dealer-backend/pkg/helpers"
)

type fakeTierTargets struct {
	targets  []models.TierTarget
	settings models.YardSettings
	put      []models.TierTarget
}

func (f *fakeTierTargets) Targets(context.Context) ([]models.TierTarget, error) {
	return f.targets, nil
}

func (f *fakeTierTargets) PutTarget(_ context.Context, t models.TierTarget) error {
	f.put = append(f.put, t)
	return nil
}

func (f *fakeTierTargets) YardSettings(context.Context) (models.YardSettings, error) {
	return f.settings, nil
}

func TestTierStatus(t *testing.T) {
	if got := tierStatus(1, 2, nil); got != dto.TierUnderStock {
		t.Fatalf("below minimum = %q", got)
	}
	if got := tierStatus(2, 2, nil); got != dto.TierOnTarget {
		t.Fatalf("at minimum = %q", got)
	}
	if got := tierStatus(9, 2, helpers.Ptr(5)); got != dto.TierOverStock {
		t.Fatalf("above ceiling = %q", got)
	}
	if got := tierStatus(5, 2, helpers.Ptr(5)); got != dto.TierOnTarget {
		t.Fatalf("at ceiling = %q", got)
	}
	if got := tierStatus(99, 2, nil); got != dto.TierOnTarget {
		t.Fatalf("no ceiling means never over: %q", got)
	}
}

func TestTierCompare(t *testing.T) {
	feeds := &fakeFeeds{snapshots: map[string]string{
		store.PathDealerLayout("acme-rv"): `{
			"t1": {"tierCode": "T1", "name": "Entry", "assignedModels": ["Explorer 19.6"], "sortOrder": 1},
			"t2": {"tierCode": "T2", "name": "Premium", "assignedModels": ["Summit 22"], "sortOrder": 2}
		}`,
		store.PathYard("acme-rv"): `{
			"Y1": {"chassis": "Y1", "model": "Explorer 19.6"},
			"Y2": {"chassis": "Y2", "model": "explorer 19.6"},
			"Y3": {"chassis": "Y3", "model": "Summit 22"},
			"Y4": {"chassis": "Y4", "model": "Discontinued 12"}
		}`,
	}}
	targets := &fakeTierTargets{
		targets: []models.TierTarget{
			{TierCode: "T1", MinimumCount: 3, TargetShare: 0.25},
			{TierCode: "T2", MinimumCount: 1, CeilingCount: helpers.Ptr(2), TargetShare: 0.1},
		},
		settings: models.YardSettings{BaselineVolume: 30},
	}
	svc := NewTierService(feeds, targets)

	result, err := svc.Compare(context.Background(), "acme-rv")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if result.Baseline != 30 {
		t.Fatalf("baseline = %d", result.Baseline)
	}
	if result.Unassigned != 1 {
		t.Fatalf("unassigned = %d, want 1", result.Unassigned)
	}
	if len(result.Tiers) != 2 {
		t.Fatalf("got %d tiers", len(result.Tiers))
	}

	t1 := result.Tiers[0]
	if t1.Name != "Entry" || t1.TargetCount != 8 || t1.Actual != 2 {
		t.Fatalf("T1 = %+v (model match must be case-insensitive, 30*0.25 rounds to 8)", t1)
	}
	if t1.Status != dto.TierUnderStock {
		t.Fatalf("T1 status = %q", t1.Status)
	}
	t2 := result.Tiers[1]
	if t2.TargetCount != 3 || t2.Status != dto.TierOnTarget {
		t.Fatalf("T2 = %+v", t2)
	}
}

func TestTierCompareFallsBackToDefaultLayout(t *testing.T) {
	feeds := &fakeFeeds{snapshots: map[string]string{
		store.PathDefaultLayout: `{
			"t1": {"tierCode": "T1", "assignedModels": ["Summit 22"], "sortOrder": 1}
		}`,
		store.PathYard("acme-rv"): `{"Y1": {"chassis": "Y1", "model": "Summit 22"}}`,
	}}
	targets := &fakeTierTargets{
		targets:  []models.TierTarget{{TierCode: "T1", MinimumCount: 1}},
		settings: models.YardSettings{BaselineVolume: 10},
	}
	svc := NewTierService(feeds, targets)

	result, err := svc.Compare(context.Background(), "acme-rv")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if result.Tiers[0].Actual != 1 || result.Unassigned != 0 {
		t.Fatalf("default layout not used: %+v", result)
	}
}

func TestSetTarget(t *testing.T) {
	targets := &fakeTierTargets{}
	svc := NewTierService(&fakeFeeds{}, targets)

	saved, err := svc.SetTarget(context.Background(), models.TierTarget{
		TierCode: " T1 ", MinimumCount: 2, CeilingCount: helpers.Ptr(4), TargetShare: 0.25,
	})
	if err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if saved.TierCode != "T1" {
		t.Fatalf("tier code not trimmed: %q", saved.TierCode)
	}
	if len(targets.put) != 1 || targets.put[0].TierCode != "T1" {
		t.Fatalf("target not persisted: %+v", targets.put)
	}

	invalid := []models.TierTarget{
		{TierCode: ""},
		{TierCode: "T1", TargetShare: 1.5},
		{TierCode: "T1", MinimumCount: -1},
		{TierCode: "T1", MinimumCount: 5, CeilingCount: helpers.Ptr(2)},
	}
	for _, in := range invalid {
		if _, err := svc.SetTarget(context.Background(), in); err == nil {
			t.Fatalf("expected validation error for %+v", in)
		}
	}
}
