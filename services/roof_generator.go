package services

import (
	"fmt"
	"math"
)

// RoofStyle selects the parametric roof shape.
type RoofStyle string

const (
	RoofGable   RoofStyle = "gable"
	RoofHip     RoofStyle = "hip"
	RoofFlat    RoofStyle = "flat"
	RoofGambrel RoofStyle = "gambrel"
)

// PitchMode selects how a roof pitch input is expressed.
type PitchMode string

const (
	PitchRatio   PitchMode = "ratio"
	PitchDegrees PitchMode = "degrees"
	PitchRiseRun PitchMode = "rise_run"
)

// RoofPitch is a pitch input in one of three notations. Value carries the
// ratio or degrees; Rise/Run carry the rise:run pair.
type RoofPitch struct {
	Mode  PitchMode
	Value float64
	Rise  float64
	Run   float64
}

// Ratio normalises the pitch to rise-per-unit-run form.
func (p RoofPitch) Ratio() (float64, error) {
	switch p.Mode {
	case PitchRatio:
		if p.Value < 0 {
			return 0, fmt.Errorf("pitch ratio %.3f is negative", p.Value)
		}
		return p.Value, nil
	case PitchDegrees:
		if p.Value < 0 || p.Value >= 90 {
			return 0, fmt.Errorf("pitch degrees %.2f out of range [0, 90)", p.Value)
		}
		return math.Tan(p.Value * math.Pi / 180), nil
	case PitchRiseRun:
		if p.Run <= 0 {
			return 0, fmt.Errorf("pitch run must be positive, got %.3f", p.Run)
		}
		if p.Rise < 0 {
			return 0, fmt.Errorf("pitch rise %.3f is negative", p.Rise)
		}
		return p.Rise / p.Run, nil
	default:
		return 0, fmt.Errorf("unknown pitch mode %q", p.Mode)
	}
}

// GambrelLowerAngleFactor is the conventional ratio between a gambrel
// roof's lower-slope angle and its upper-slope angle. It is a modelling
// convention rather than an engineering constant, so callers may override
// it in RoofGenConfig.
const GambrelLowerAngleFactor = 0.5

// RoofGenConfig parametrises the roof generator.
type RoofGenConfig struct {
	LengthM            float64
	WidthM             float64
	Style              RoofStyle
	Pitch              RoofPitch
	GambrelLowerFactor float64 // 0 means GambrelLowerAngleFactor
}

// GeneratedPlane is one plane of a generated roof with its edge lengths.
type GeneratedPlane struct {
	Name         string
	PlanAreaM2   float64
	SlopeFactor  float64
	SlopeAreaM2  float64
	RidgeLengthM float64
	EaveLengthM  float64
	HipLengthM   float64
}

// RoofGenSummary aggregates a generated roof.
type RoofGenSummary struct {
	TotalPlanAreaM2  float64
	TotalSlopeAreaM2 float64
	RidgeLengthM     float64
	EaveLengthM      float64
	HipLengthM       float64
}

// RoofGeneration is the full output of the parametric generator.
type RoofGeneration struct {
	Style   RoofStyle
	Planes  []GeneratedPlane
	Summary RoofGenSummary
}

// GenerateRoof produces the constituent planes for a rectangular building
// of the given footprint. The hip layout always runs its ridge along the
// longer footprint dimension.
func GenerateRoof(cfg RoofGenConfig) (RoofGeneration, error) {
	if cfg.LengthM <= 0 || cfg.WidthM <= 0 {
		return RoofGeneration{}, fmt.Errorf("building dimensions must be positive, got %.3f × %.3f", cfg.LengthM, cfg.WidthM)
	}

	ratio, err := cfg.Pitch.Ratio()
	if err != nil {
		return RoofGeneration{}, err
	}

	switch cfg.Style {
	case RoofFlat:
		return generateFlat(cfg), nil
	case RoofGable:
		return generateGable(cfg, ratio), nil
	case RoofHip:
		return generateHip(cfg, ratio), nil
	case RoofGambrel:
		return generateGambrel(cfg, ratio), nil
	default:
		return RoofGeneration{}, fmt.Errorf("unknown roof style %q", cfg.Style)
	}
}

func generateFlat(cfg RoofGenConfig) RoofGeneration {
	area := cfg.LengthM * cfg.WidthM
	plane := GeneratedPlane{
		Name:        "deck",
		PlanAreaM2:  area,
		SlopeFactor: 1,
		SlopeAreaM2: area,
		EaveLengthM: 2 * (cfg.LengthM + cfg.WidthM),
	}
	return assemble(RoofFlat, []GeneratedPlane{plane})
}

func generateGable(cfg RoofGenConfig, ratio float64) RoofGeneration {
	factor := math.Sqrt(1 + ratio*ratio)
	half := cfg.LengthM * cfg.WidthM / 2

	var planes []GeneratedPlane
	for _, name := range []string{"left", "right"} {
		planes = append(planes, GeneratedPlane{
			Name:        name,
			PlanAreaM2:  half,
			SlopeFactor: factor,
			SlopeAreaM2: half * factor,
			// Each plane meets the ridge over the full building length.
			// The summary counts the shared ridge once.
			RidgeLengthM: cfg.LengthM,
			EaveLengthM:  cfg.LengthM,
		})
	}
	gen := assemble(RoofGable, planes)
	gen.Summary.RidgeLengthM = cfg.LengthM
	return gen
}

func generateHip(cfg RoofGenConfig, ratio float64) RoofGeneration {
	long, short := cfg.LengthM, cfg.WidthM
	if short > long {
		long, short = short, long
	}
	factor := math.Sqrt(1 + ratio*ratio)
	ridge := long - short
	rise := ratio * short / 2
	// A hip rafter runs diagonally from eave corner to ridge end.
	hipLen := math.Sqrt(short/2*short/2 + short/2*short/2 + rise*rise)

	trapezoidPlan := (long + ridge) / 2 * short / 2
	trianglePlan := short * short / 4

	planes := []GeneratedPlane{
		{Name: "side_a", PlanAreaM2: trapezoidPlan, SlopeFactor: factor, SlopeAreaM2: trapezoidPlan * factor, RidgeLengthM: ridge, EaveLengthM: long, HipLengthM: 2 * hipLen},
		{Name: "side_b", PlanAreaM2: trapezoidPlan, SlopeFactor: factor, SlopeAreaM2: trapezoidPlan * factor, RidgeLengthM: ridge, EaveLengthM: long, HipLengthM: 2 * hipLen},
		{Name: "end_a", PlanAreaM2: trianglePlan, SlopeFactor: factor, SlopeAreaM2: trianglePlan * factor, EaveLengthM: short},
		{Name: "end_b", PlanAreaM2: trianglePlan, SlopeFactor: factor, SlopeAreaM2: trianglePlan * factor, EaveLengthM: short},
	}
	gen := assemble(RoofHip, planes)
	gen.Summary.RidgeLengthM = ridge
	gen.Summary.HipLengthM = 4 * hipLen
	return gen
}

func generateGambrel(cfg RoofGenConfig, ratio float64) RoofGeneration {
	lowerFactor := cfg.GambrelLowerFactor
	if lowerFactor == 0 {
		lowerFactor = GambrelLowerAngleFactor
	}
	upperAngle := math.Atan(ratio)
	lowerAngle := upperAngle * lowerFactor

	upperSlope := 1 / math.Cos(upperAngle)
	lowerSlope := 1 / math.Cos(lowerAngle)

	// Each side of the ridge splits into an upper and a lower band of
	// equal horizontal run.
	quarter := cfg.LengthM * cfg.WidthM / 4

	var planes []GeneratedPlane
	for _, side := range []string{"left", "right"} {
		planes = append(planes,
			GeneratedPlane{
				Name:         side + "_upper",
				PlanAreaM2:   quarter,
				SlopeFactor:  upperSlope,
				SlopeAreaM2:  quarter * upperSlope,
				RidgeLengthM: cfg.LengthM,
			},
			GeneratedPlane{
				Name:        side + "_lower",
				PlanAreaM2:  quarter,
				SlopeFactor: lowerSlope,
				SlopeAreaM2: quarter * lowerSlope,
				EaveLengthM: cfg.LengthM,
			},
		)
	}
	gen := assemble(RoofGambrel, planes)
	gen.Summary.RidgeLengthM = cfg.LengthM
	return gen
}

func assemble(style RoofStyle, planes []GeneratedPlane) RoofGeneration {
	var summary RoofGenSummary
	for _, p := range planes {
		summary.TotalPlanAreaM2 += p.PlanAreaM2
		summary.TotalSlopeAreaM2 += p.SlopeAreaM2
		summary.EaveLengthM += p.EaveLengthM
	}
	return RoofGeneration{Style: style, Planes: planes, Summary: summary}
}
