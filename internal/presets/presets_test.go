package presets

import (
	"errors"
	"testing"

	"turmites/internal/rules"
)

func TestCatalogTablesAreValid(t *testing.T) {
	all := All()
	if len(all) != 11 {
		t.Fatalf("catalog has %d presets, want 11", len(all))
	}
	for _, p := range all {
		if err := p.Rules().Validate().Err(); err != nil {
			t.Errorf("%s: %v", p.Key, err)
		}
	}
}

func TestCatalogSpotChecks(t *testing.T) {
	p, err := Lookup("busyBeaver5")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	got := p.Rules().Lookup(4, 0)
	want := rules.Rule{WriteColor: 1, Move: rules.NoTurn, NextState: 10}
	if got != want {
		t.Fatalf("busyBeaver5[4][0] = %+v, want %+v", got, want)
	}

	spiral, _ := Lookup("archimedesSpiral")
	tbl := spiral.Rules()
	if tbl.NumColors() != 11 {
		t.Fatalf("archimedesSpiral colors = %d", tbl.NumColors())
	}
	if last := tbl.Lookup(0, 10); last.WriteColor != 0 || last.Move != rules.Right {
		t.Fatalf("archimedesSpiral last rule = %+v", last)
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	p, _ := Lookup("langtons")
	tbl := p.Rules()
	tbl[0][0].WriteColor = 9
	if p.Rules()[0][0].WriteColor != 1 {
		t.Fatalf("mutating a returned table leaked into the catalog")
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("err = %v, want ErrUnknownPreset", err)
	}
}
