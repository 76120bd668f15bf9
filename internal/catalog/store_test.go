package catalog

import (
	"errors"
	"testing"

	"github.com/Tjindl/HackTheCoast-sub000/internal/award"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func seedAwards() []*award.Award {
	return []*award.Award{
		{
			ID:     "first-award",
			Name:   "First Award",
			Type:   "Scholarship",
			Amount: award.Amount{Value: 1000},
			Eligibility: award.EligibilityCriteria{
				Campus: []string{"Vancouver"},
			},
		},
		{
			ID:     "second-award",
			Name:   "Second Award",
			Type:   "Bursary",
			Amount: award.Amount{Text: "Variable"},
		},
	}
}

func TestSeedAndList(t *testing.T) {
	store := openTestStore(t)

	if err := store.Seed(seedAwards()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	awards, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if awards.Len() != 2 {
		t.Fatalf("expected 2 awards, got %d", awards.Len())
	}
	if awards.Items[0].ID != "first-award" || awards.Items[1].ID != "second-award" {
		t.Fatalf("catalog order not preserved: %v", awards.IDs())
	}
	if awards.Items[1].Amount.Display() != "Variable" {
		t.Fatalf("text amount lost in round trip: %q", awards.Items[1].Amount.Display())
	}
}

func TestSeedUpsertsExistingRows(t *testing.T) {
	store := openTestStore(t)

	if err := store.Seed(seedAwards()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated := seedAwards()
	updated[0].Name = "First Award (renamed)"
	if err := store.Seed(updated); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	awards, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if awards.Len() != 2 {
		t.Fatalf("reseed must not duplicate rows, got %d", awards.Len())
	}
	if awards.Items[0].Name != "First Award (renamed)" {
		t.Fatalf("reseed did not update the row: %q", awards.Items[0].Name)
	}
}

func TestSeedRejectsMissingID(t *testing.T) {
	store := openTestStore(t)

	if err := store.Seed([]*award.Award{{Name: "No ID"}}); err == nil {
		t.Fatalf("expected an error for an award without an id")
	}
}

func TestGet(t *testing.T) {
	store := openTestStore(t)

	if err := store.Seed(seedAwards()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	a, err := store.Get("second-award")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Name != "Second Award" {
		t.Fatalf("unexpected award: %q", a.Name)
	}

	if _, err := store.Get("no-such-award"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDefaultAwards(t *testing.T) {
	awards, err := DefaultAwards()
	if err != nil {
		t.Fatalf("default awards: %v", err)
	}
	if len(awards) == 0 {
		t.Fatalf("embedded seed catalog is empty")
	}

	seen := make(map[string]bool, len(awards))
	for _, a := range awards {
		if a.ID == "" {
			t.Fatalf("seed award %q has no id", a.Name)
		}
		if seen[a.ID] {
			t.Fatalf("duplicate seed award id %q", a.ID)
		}
		seen[a.ID] = true
	}
}
