package services

import (
	"math"
	"strings"
	"testing"
)

func testGrid() *GridSystem {
	return NewGridSystem([]GridLine{
		{Label: "A", Offset: 0},
		{Label: "B", Offset: 6},
		{Label: "C", Offset: 12},
		{Label: "1", Offset: 0},
		{Label: "2", Offset: 8},
	})
}

func testLevels() *LevelSystem {
	return NewLevelSystem([]Level{
		{ID: "lvl_gf", Label: "GF", Elevation: 0},
		{ID: "lvl_2f", Label: "2F", Elevation: 3.5},
		{ID: "lvl_rf", Label: "RF", Elevation: 7.0},
	})
}

func TestGridSystemOffset(t *testing.T) {
	grid := testGrid()

	off, err := grid.Offset("B")
	if err != nil {
		t.Fatalf("Offset(B) error = %v", err)
	}
	if off != 6 {
		t.Errorf("Offset(B) = %v, want 6", off)
	}

	_, err = grid.Offset("Z")
	if err == nil {
		t.Fatal("Offset(Z) expected error for missing label")
	}
	if !strings.Contains(err.Error(), "Z") {
		t.Errorf("error should name the missing label, got %q", err.Error())
	}
}

func TestGridSystemDistance(t *testing.T) {
	grid := testGrid()

	tests := []struct {
		name   string
		from   string
		to     string
		expect float64
	}{
		{"forward", "A", "B", 6},
		{"reversed labels give same distance", "B", "A", 6},
		{"across two bays", "A", "C", 12},
		{"same label", "B", "B", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := grid.Distance(tt.from, tt.to)
			if err != nil {
				t.Fatalf("Distance(%s, %s) error = %v", tt.from, tt.to, err)
			}
			if math.Abs(got-tt.expect) > 1e-9 {
				t.Errorf("Distance(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.expect)
			}
		})
	}

	if _, err := grid.Distance("A", "Z"); err == nil {
		t.Error("Distance to missing label should error")
	}
}

func TestLevelSystemElevation(t *testing.T) {
	levels := testLevels()

	byLabel, err := levels.Elevation("2F")
	if err != nil {
		t.Fatalf("Elevation(2F) error = %v", err)
	}
	byID, err := levels.Elevation("lvl_2f")
	if err != nil {
		t.Fatalf("Elevation(lvl_2f) error = %v", err)
	}
	if byLabel != 3.5 || byID != 3.5 {
		t.Errorf("Elevation by label = %v, by id = %v, want 3.5", byLabel, byID)
	}

	if _, err := levels.Elevation("5F"); err == nil {
		t.Error("missing level should error")
	}
}

func TestLevelSystemNextAbove(t *testing.T) {
	levels := testLevels()

	next, ok, err := levels.NextAbove("GF")
	if err != nil {
		t.Fatalf("NextAbove(GF) error = %v", err)
	}
	if !ok || next.Label != "2F" {
		t.Errorf("NextAbove(GF) = %v, %v, want 2F", next.Label, ok)
	}

	// Topmost level has nothing above it.
	_, ok, err = levels.NextAbove("RF")
	if err != nil {
		t.Fatalf("NextAbove(RF) error = %v", err)
	}
	if ok {
		t.Error("NextAbove(RF) should report no level above")
	}
}
