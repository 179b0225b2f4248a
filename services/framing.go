package services

import (
	"fmt"
	"math"
)

// BracingStyle selects the roof-plane bracing layout.
type BracingStyle string

const (
	BracingX        BracingStyle = "x"
	BracingDiagonal BracingStyle = "diagonal"
)

// Roofing sheet fastening allowance: 10% cutting waste on sheets, eight
// screws per sheet.
const (
	sheetWasteFactor = 1.1
	screwsPerSheet   = 8
)

// FramingConfig derives the purlin, bracing and sheeting takeoff for a
// trussed roof over a rectangular building.
type FramingConfig struct {
	BuildingLengthM  float64
	BuildingWidthM   float64
	PitchRatio       float64
	TrussSpacingM    float64
	TrussRiseM       float64
	PurlinSpacingM   float64
	PurlinKgPerM     float64
	BracingIntervalM float64
	BracingStyle     BracingStyle
	BraceKgPerM      float64
	SheetLengthM     float64
	SheetWidthM      float64
}

// FramingResult is the derived framing layout and quantities.
type FramingResult struct {
	TrussCount           int
	SlopeLengthM         float64
	PurlinLinesPerSide   int
	PurlinTotalLengthM   float64
	PurlinWeightKg       float64
	BracingBays          int
	BraceDiagonalCount   int
	BraceDiagonalLengthM float64
	BraceWeightKg        float64
	RoofAreaM2           float64
	SheetCount           int
	ScrewCount           int
}

// CalculateFraming lays out purlins, bracing and roofing sheets. The roof
// is the two-plane gable implied by the pitch ratio; the slope length is
// the eave-to-ridge distance on one side.
func CalculateFraming(cfg FramingConfig) (FramingResult, error) {
	if cfg.BuildingLengthM <= 0 || cfg.BuildingWidthM <= 0 {
		return FramingResult{}, fmt.Errorf("building dimensions must be positive, got %.3f × %.3f", cfg.BuildingLengthM, cfg.BuildingWidthM)
	}
	if cfg.TrussSpacingM <= 0 {
		return FramingResult{}, fmt.Errorf("truss spacing must be positive, got %.3f", cfg.TrussSpacingM)
	}
	if cfg.PurlinSpacingM <= 0 {
		return FramingResult{}, fmt.Errorf("purlin spacing must be positive, got %.3f", cfg.PurlinSpacingM)
	}
	if cfg.BracingIntervalM <= 0 {
		return FramingResult{}, fmt.Errorf("bracing interval must be positive, got %.3f", cfg.BracingIntervalM)
	}

	var diagonalsPerBay int
	switch cfg.BracingStyle {
	case BracingX:
		diagonalsPerBay = 2
	case BracingDiagonal:
		diagonalsPerBay = 1
	default:
		return FramingResult{}, fmt.Errorf("unknown bracing style %q", cfg.BracingStyle)
	}

	slopeFactor := math.Sqrt(1 + cfg.PitchRatio*cfg.PitchRatio)
	slopeLength := cfg.BuildingWidthM / 2 * slopeFactor

	trussCount := int(math.Ceil(cfg.BuildingLengthM/cfg.TrussSpacingM)) + 1

	purlinLines := int(math.Ceil(slopeLength / cfg.PurlinSpacingM))
	purlinTotal := float64(purlinLines) * 2 * cfg.BuildingLengthM

	bays := int(math.Ceil(cfg.BuildingLengthM / cfg.BracingIntervalM))
	diagCount := bays * diagonalsPerBay
	// Each diagonal ties the bottom chord of one truss to the top chord
	// of its neighbour.
	diagLength := math.Hypot(cfg.TrussSpacingM, cfg.TrussRiseM)

	roofArea := 2 * cfg.BuildingLengthM * slopeLength

	sheetCount := 0
	if cfg.SheetLengthM > 0 && cfg.SheetWidthM > 0 {
		sheetArea := cfg.SheetLengthM * cfg.SheetWidthM
		sheetCount = int(math.Ceil(roofArea / sheetArea * sheetWasteFactor))
	}

	return FramingResult{
		TrussCount:           trussCount,
		SlopeLengthM:         slopeLength,
		PurlinLinesPerSide:   purlinLines,
		PurlinTotalLengthM:   purlinTotal,
		PurlinWeightKg:       purlinTotal * cfg.PurlinKgPerM,
		BracingBays:          bays,
		BraceDiagonalCount:   diagCount,
		BraceDiagonalLengthM: diagLength,
		BraceWeightKg:        float64(diagCount) * diagLength * cfg.BraceKgPerM,
		RoofAreaM2:           roofArea,
		SheetCount:           sheetCount,
		ScrewCount:           sheetCount * screwsPerSheet,
	}, nil
}
