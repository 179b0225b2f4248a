package services

import (
	"math"
	"testing"
)

func TestSlopeFactorRatio(t *testing.T) {
	for _, ratio := range []float64{0, 0.1, 0.25, 0.3333, 0.5, 1, 2} {
		got, err := SlopeFactor(RoofSlope{Mode: SlopeRatio, Value: ratio})
		if err != nil {
			t.Fatalf("SlopeFactor(ratio %v) error = %v", ratio, err)
		}
		want := math.Sqrt(1 + ratio*ratio)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("SlopeFactor(ratio %v) = %v, want %v", ratio, got, want)
		}
	}

	// Flat must be exactly 1, not approximately.
	got, err := SlopeFactor(RoofSlope{Mode: SlopeRatio, Value: 0})
	if err != nil || got != 1 {
		t.Errorf("SlopeFactor(0) = %v, %v, want exactly 1", got, err)
	}
}

func TestSlopeFactorDegrees(t *testing.T) {
	for _, deg := range []float64{0, 5, 15, 30, 45, 60, 85} {
		got, err := SlopeFactor(RoofSlope{Mode: SlopeDegrees, Value: deg})
		if err != nil {
			t.Fatalf("SlopeFactor(%v°) error = %v", deg, err)
		}
		want := 1 / math.Cos(deg*math.Pi/180)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("SlopeFactor(%v°) = %v, want %v", deg, got, want)
		}
	}

	if got, err := SlopeFactor(RoofSlope{Mode: SlopeDegrees, Value: 0}); err != nil || got != 1 {
		t.Errorf("SlopeFactor(0°) = %v, %v, want exactly 1", got, err)
	}

	if _, err := SlopeFactor(RoofSlope{Mode: SlopeDegrees, Value: 90}); err == nil {
		t.Error("90° should be rejected")
	}
	if _, err := SlopeFactor(RoofSlope{Mode: "gradient", Value: 1}); err == nil {
		t.Error("unknown slope mode should error")
	}
}

func TestPolygonArea(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		expect float64
	}{
		{"unit square", []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, 1},
		{"clockwise square", []Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}}, 1},
		{"right triangle", []Point{{0, 0}, {4, 0}, {0, 3}}, 6},
		{"L-shape", []Point{{0, 0}, {4, 0}, {4, 2}, {2, 2}, {2, 4}, {0, 4}}, 12},
		{"two points degenerate", []Point{{0, 0}, {5, 5}}, 0},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolygonArea(tt.points); math.Abs(got-tt.expect) > 1e-9 {
				t.Errorf("PolygonArea = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestPlanAreaGridRect(t *testing.T) {
	boundary := RoofBoundary{GridRect: []string{"A", "B", "1", "2"}}

	area, err := PlanArea(boundary, testGrid())
	if err != nil {
		t.Fatalf("PlanArea error = %v", err)
	}
	if math.Abs(area-48) > 1e-9 {
		t.Errorf("PlanArea = %v, want 48", area)
	}

	// Reversing the labels on either axis leaves the area unchanged.
	reversed := RoofBoundary{GridRect: []string{"B", "A", "2", "1"}}
	area2, err := PlanArea(reversed, testGrid())
	if err != nil {
		t.Fatal(err)
	}
	if area2 != area {
		t.Errorf("reversed labels changed area: %v vs %v", area2, area)
	}

	// A grid-rect boundary without a grid system is a hard error.
	if _, err := PlanArea(boundary, nil); err == nil {
		t.Error("missing grid system should be an error, not a zero default")
	}

	if _, err := PlanArea(RoofBoundary{GridRect: []string{"A", "B"}}, testGrid()); err == nil {
		t.Error("short grid rect should error")
	}
}

func TestComputeRoofAreas(t *testing.T) {
	plane := RoofPlane{
		ID:       "rp1",
		Boundary: RoofBoundary{GridRect: []string{"A", "B", "1", "2"}},
		Slope:    RoofSlope{Mode: SlopeRatio, Value: 0.5},
	}

	areas, err := ComputeRoofAreas(plane, testGrid())
	if err != nil {
		t.Fatalf("ComputeRoofAreas error = %v", err)
	}
	if math.Abs(areas.PlanAreaM2-48) > 1e-9 {
		t.Errorf("plan area = %v, want 48", areas.PlanAreaM2)
	}
	wantFactor := math.Sqrt(1.25)
	if math.Abs(areas.SlopeFactor-wantFactor) > 1e-12 {
		t.Errorf("slope factor = %v, want %v", areas.SlopeFactor, wantFactor)
	}
	if math.Abs(areas.SlopeAreaM2-48*wantFactor) > 1e-9 {
		t.Errorf("slope area = %v, want %v", areas.SlopeAreaM2, 48*wantFactor)
	}
}

func TestCoveringTakeoff(t *testing.T) {
	plane := RoofPlane{ID: "rp1", Slope: RoofSlope{Mode: SlopeRatio, Value: 0.5}}
	areas := RoofAreas{PlanAreaM2: 48, SlopeFactor: math.Sqrt(1.25), SlopeAreaM2: 48 * math.Sqrt(1.25)}
	settings := DefaultTakeoffSettings()

	tests := []struct {
		name     string
		roofType RoofType
		expect   float64
	}{
		{
			"slope area basis with allowances",
			RoofType{ID: "gi_sheet", AreaBasis: "slopeArea", LapAllowancePercent: 10, WastePercent: 5},
			roundTo(48*math.Sqrt(1.25)*1.15, 2),
		},
		{
			"plan area basis",
			RoofType{ID: "concrete_deck", AreaBasis: "planArea", LapAllowancePercent: 0, WastePercent: 5},
			roundTo(48*1.05, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := CoveringTakeoff(plane, areas, tt.roofType, settings)
			if math.Abs(line.Quantity-tt.expect) > 0.001 {
				t.Errorf("quantity = %v, want %v", line.Quantity, tt.expect)
			}
			if line.ID != "rp1_roof_covering" {
				t.Errorf("id = %q", line.ID)
			}
			if line.Unit != "sq.m" {
				t.Errorf("unit = %q, want sq.m", line.Unit)
			}
		})
	}
}
