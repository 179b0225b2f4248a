package services

import (
	"fmt"
	"math"
)

// SlopeMode selects how a roof slope value is expressed.
type SlopeMode string

const (
	SlopeRatio   SlopeMode = "ratio"   // rise per unit run
	SlopeDegrees SlopeMode = "degrees" // angle from horizontal
)

// RoofSlope is a slope in either ratio or degrees form.
type RoofSlope struct {
	Mode  SlopeMode
	Value float64
}

// Point is a 2-D plan coordinate in metres.
type Point struct {
	X float64
	Y float64
}

// RoofBoundary describes a roof plane's plan outline: either an
// axis-aligned grid rectangle (four grid labels) or an explicit polygon.
type RoofBoundary struct {
	GridRect []string // x1, x2, y1, y2 labels; empty when Polygon is used
	Polygon  []Point
}

// RoofPlane is one sloped plane of a roof.
type RoofPlane struct {
	ID       string
	Boundary RoofBoundary
	Slope    RoofSlope
	RoofType string
}

// RoofAreas holds the computed areas of a plane.
type RoofAreas struct {
	PlanAreaM2  float64
	SlopeFactor float64
	SlopeAreaM2 float64
}

// RoofType governs how a plane's area becomes a covering quantity.
type RoofType struct {
	ID                  string
	Name                string
	AreaBasis           string // slopeArea or planArea
	LapAllowancePercent float64
	WastePercent        float64
}

// SlopeFactor converts a slope into the plan-to-slope area multiplier.
// Ratio mode: sqrt(1+r²). Degrees mode: 1/cos(θ). Flat roofs yield
// exactly 1. Degrees at or beyond 90 are a contract violation.
func SlopeFactor(slope RoofSlope) (float64, error) {
	switch slope.Mode {
	case SlopeRatio:
		if slope.Value == 0 {
			return 1, nil
		}
		return math.Sqrt(1 + slope.Value*slope.Value), nil
	case SlopeDegrees:
		if slope.Value == 0 {
			return 1, nil
		}
		if slope.Value < 0 || slope.Value >= 90 {
			return 0, fmt.Errorf("slope degrees %.2f out of range [0, 90)", slope.Value)
		}
		return 1 / math.Cos(slope.Value*math.Pi/180), nil
	default:
		return 0, fmt.Errorf("unknown slope mode %q", slope.Mode)
	}
}

// PolygonArea computes the plan area of an ordered point list via the
// shoelace formula. Fewer than three points is a degenerate outline and
// yields zero, not an error.
func PolygonArea(points []Point) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	var signed float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		signed += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return math.Abs(signed) / 2
}

// PlanArea resolves a boundary into its plan area. A grid-rect boundary
// requires a grid system; its absence is a hard configuration error.
func PlanArea(boundary RoofBoundary, grid *GridSystem) (float64, error) {
	if len(boundary.GridRect) > 0 {
		if len(boundary.GridRect) != 4 {
			return 0, fmt.Errorf("grid rect boundary requires four labels, got %d", len(boundary.GridRect))
		}
		if grid == nil {
			return 0, fmt.Errorf("grid rect boundary requires a grid system")
		}
		dx, err := grid.Distance(boundary.GridRect[0], boundary.GridRect[1])
		if err != nil {
			return 0, err
		}
		dy, err := grid.Distance(boundary.GridRect[2], boundary.GridRect[3])
		if err != nil {
			return 0, err
		}
		return dx * dy, nil
	}
	return PolygonArea(boundary.Polygon), nil
}

// ComputeRoofAreas resolves a plane's plan area, slope factor and slope
// area.
func ComputeRoofAreas(plane RoofPlane, grid *GridSystem) (RoofAreas, error) {
	plan, err := PlanArea(plane.Boundary, grid)
	if err != nil {
		return RoofAreas{}, err
	}
	factor, err := SlopeFactor(plane.Slope)
	if err != nil {
		return RoofAreas{}, err
	}
	return RoofAreas{
		PlanAreaM2:  plan,
		SlopeFactor: factor,
		SlopeAreaM2: plan * factor,
	}, nil
}

// CoveringTakeoff converts a plane's computed areas into a roofing
// material line. The base area follows the roof type's area basis; lap
// and waste allowances are additive percentages.
func CoveringTakeoff(plane RoofPlane, areas RoofAreas, roofType RoofType, settings TakeoffSettings) TakeoffLine {
	base := areas.SlopeAreaM2
	basis := "slope_area"
	if roofType.AreaBasis == "planArea" {
		base = areas.PlanAreaM2
		basis = "plan_area"
	}
	allowance := roofType.LapAllowancePercent/100 + roofType.WastePercent/100
	qty := roundTo(base*(1+allowance), settings.RoundDecimals)

	return TakeoffLine{
		ID:              plane.ID + "_roof_covering",
		SourceElementID: plane.ID,
		Trade:           "roofing",
		ResourceKey:     roofType.ID,
		Quantity:        qty,
		Unit:            "sq.m",
		Formula: fmt.Sprintf("%s %.3f × (1 + %.3f + %.3f)",
			basis, base, roofType.LapAllowancePercent/100, roofType.WastePercent/100),
		Inputs: map[string]float64{
			"plan_area_m2":  areas.PlanAreaM2,
			"slope_factor":  areas.SlopeFactor,
			"slope_area_m2": areas.SlopeAreaM2,
			"lap_allowance": roofType.LapAllowancePercent / 100,
			"waste":         roofType.WastePercent / 100,
		},
	}
}
