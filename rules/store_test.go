package rules

import (
	"context"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/formfill/dbopen"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db := dbopen.OpenMemory(t, dbopen.WithSchema(Schema))
	return NewStore(db)
}

func TestStore_InsertListDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	min, max := 1, 9
	r := &Rule{
		Name:     "quantity",
		Match:    []string{"qty", "quantity"},
		Type:     TypeNumber,
		Min:      &min,
		Max:      &max,
		List:     []string{"a", "b"},
		Template: "T",
	}
	if err := s.Insert(ctx, TierProfile, r); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if r.ID == "" {
		t.Fatal("insert should assign an ID")
	}

	got, err := s.List(ctx, TierProfile)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rules, want 1", len(got))
	}
	if got[0].Name != "quantity" || got[0].Type != TypeNumber || got[0].Template != "T" {
		t.Fatalf("round-trip mismatch: %+v", got[0])
	}
	if len(got[0].Match) != 2 || got[0].Match[1] != "quantity" {
		t.Fatalf("match patterns lost: %+v", got[0].Match)
	}
	if got[0].Min == nil || *got[0].Min != 1 || got[0].Max == nil || *got[0].Max != 9 {
		t.Fatalf("bounds lost: %+v", got[0])
	}

	if err := s.Delete(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ = s.List(ctx, TierProfile)
	if len(got) != 0 {
		t.Fatalf("rule not deleted: %+v", got)
	}
}

func TestStore_PreservesAuthorOrder(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if err := s.Insert(ctx, TierGlobal, &Rule{Name: name, Match: []string{name}, Type: TypeText}); err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}

	got, err := s.List(ctx, TierGlobal)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if got[i].Name != w {
			t.Fatalf("order broken at %d: got %q, want %q", i, got[i].Name, w)
		}
	}
}

func TestStore_TiersAreSeparate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	s.Insert(ctx, TierProfile, &Rule{Name: "p", Match: []string{"p"}, Type: TypeText})
	s.Insert(ctx, TierGlobal, &Rule{Name: "g", Match: []string{"g"}, Type: TypeText})

	profile, global, err := s.LoadTiers(ctx)
	if err != nil {
		t.Fatalf("load tiers: %v", err)
	}
	if len(profile) != 1 || profile[0].Name != "p" {
		t.Fatalf("profile tier wrong: %+v", profile)
	}
	if len(global) != 1 || global[0].Name != "g" {
		t.Fatalf("global tier wrong: %+v", global)
	}
}

func TestStore_RejectsUnknownTier(t *testing.T) {
	s := testStore(t)
	if err := s.Insert(context.Background(), Tier("nope"), &Rule{Type: TypeText}); err == nil {
		t.Fatal("unknown tier must be rejected")
	}
}
