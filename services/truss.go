package services

import (
	"fmt"
	"math"
)

// TrussType discriminates the supported truss geometries.
type TrussType string

const (
	TrussHowe     TrussType = "howe"
	TrussFink     TrussType = "fink"
	TrussKingPost TrussType = "kingpost"
)

// Default connector plate weight. An approximation carried over from the
// original estimating practice, overridable per design.
const DefaultConnectorPlateKg = 0.15

// Recommended proportion limits checked by truss validation.
const (
	minPitchRatio      = 0.15
	maxPitchRatio      = 0.5
	defaultMaxSpanM    = 12.0
	slendernessDivisor = 70.0
	maxWebSlenderness  = 150.0
)

// TrussConfig parametrises one truss design. Section weights are kg per
// metre for the chosen steel sections.
type TrussConfig struct {
	Type              TrussType
	SpanM             float64
	RiseM             float64
	OverhangM         float64
	SpacingM          float64
	TopChordKgPerM    float64
	BottomChordKgPerM float64
	WebKgPerM         float64
	VerticalWebCount  int     // Howe only; 0 selects automatically by span
	ConnectorPlateKg  float64 // 0 means DefaultConnectorPlateKg
	MaxSpanM          float64 // 0 means defaultMaxSpanM
}

// TrussMember is one fabricated member group: identical pieces share an
// entry with a quantity.
type TrussMember struct {
	Name          string
	Role          string // top_chord, bottom_chord, web
	LengthMM      float64
	Quantity      int
	UnitWeightKgM float64
	WeightKg      float64
}

// ConnectorPlates summarises the gusset plates of one truss.
type ConnectorPlates struct {
	Count        int
	UnitWeightKg float64
	WeightKg     float64
}

// TrussValidation carries advisory proportion warnings. Valid is true
// exactly when there are no warnings.
type TrussValidation struct {
	Valid    bool
	Warnings []string
}

// TrussSummary aggregates one truss.
type TrussSummary struct {
	PitchRatio     float64
	PanelCount     int
	MemberWeightKg float64
	PlateWeightKg  float64
	TotalWeightKg  float64
}

// TrussResult is the complete output for one truss design.
type TrussResult struct {
	Type       TrussType
	Members    []TrussMember
	Plates     ConnectorPlates
	Summary    TrussSummary
	Validation TrussValidation
}

// GenerateTruss designs one truss of the configured type. An unknown type
// or non-positive span/rise is a contract violation and returns an error;
// questionable proportions only produce validation warnings.
func GenerateTruss(cfg TrussConfig) (TrussResult, error) {
	if cfg.SpanM <= 0 {
		return TrussResult{}, fmt.Errorf("truss span must be positive, got %.3f", cfg.SpanM)
	}
	if cfg.RiseM <= 0 {
		return TrussResult{}, fmt.Errorf("truss rise must be positive, got %.3f", cfg.RiseM)
	}

	var members []TrussMember
	var panels int
	switch cfg.Type {
	case TrussHowe:
		members, panels = howeMembers(cfg)
	case TrussFink:
		members, panels = finkMembers(cfg)
	case TrussKingPost:
		members, panels = kingPostMembers(cfg)
	default:
		return TrussResult{}, fmt.Errorf("unknown truss type %q", cfg.Type)
	}

	plates := connectorPlates(cfg, members)

	var memberWeight float64
	for _, m := range members {
		memberWeight += m.WeightKg
	}

	pitchRatio := cfg.RiseM / (cfg.SpanM / 2)
	result := TrussResult{
		Type:    cfg.Type,
		Members: members,
		Plates:  plates,
		Summary: TrussSummary{
			PitchRatio:     pitchRatio,
			PanelCount:     panels,
			MemberWeightKg: memberWeight,
			PlateWeightKg:  plates.WeightKg,
			TotalWeightKg:  memberWeight + plates.WeightKg,
		},
	}
	result.Validation = validateTruss(cfg, result)
	return result, nil
}

// howePanelCount resolves the panel count per half-span: explicit vertical
// web count plus one, or auto-selected in [3,5] scaled by span.
func howePanelCount(cfg TrussConfig) int {
	if cfg.VerticalWebCount > 0 {
		return cfg.VerticalWebCount + 1
	}
	switch {
	case cfg.SpanM <= 6:
		return 3
	case cfg.SpanM <= 12:
		return 4
	default:
		return 5
	}
}

func howeMembers(cfg TrussConfig) ([]TrussMember, int) {
	halfSpan := cfg.SpanM / 2
	panels := howePanelCount(cfg)
	panelWidth := halfSpan / float64(panels)
	slopeFactor := math.Sqrt(1 + (cfg.RiseM/halfSpan)*(cfg.RiseM/halfSpan))

	members := []TrussMember{
		chordMember("top_chord", "top_chord",
			math.Sqrt(halfSpan*halfSpan+cfg.RiseM*cfg.RiseM)+cfg.OverhangM*slopeFactor,
			2, cfg.TopChordKgPerM),
		chordMember("bottom_chord", "bottom_chord", cfg.SpanM, 1, cfg.BottomChordKgPerM),
	}

	// Verticals at each interior panel point, mirrored about the centre,
	// plus the full-rise king vertical.
	for i := 1; i < panels; i++ {
		h := cfg.RiseM * float64(i) * panelWidth / halfSpan
		members = append(members, chordMember(
			fmt.Sprintf("vertical_%d", i), "web", h, 2, cfg.WebKgPerM))
	}
	members = append(members, chordMember("vertical_centre", "web", cfg.RiseM, 1, cfg.WebKgPerM))

	// Howe diagonals rise toward the centre between adjacent panel points.
	for i := 1; i < panels; i++ {
		h := cfg.RiseM * float64(i) * panelWidth / halfSpan
		diag := math.Sqrt(panelWidth*panelWidth + h*h)
		members = append(members, chordMember(
			fmt.Sprintf("diagonal_%d", i), "web", diag, 2, cfg.WebKgPerM))
	}
	return members, panels
}

func finkMembers(cfg TrussConfig) ([]TrussMember, int) {
	halfSpan := cfg.SpanM / 2
	slopeFactor := math.Sqrt(1 + (cfg.RiseM/halfSpan)*(cfg.RiseM/halfSpan))

	// The W-web runs from the bottom-chord third points to the top-chord
	// midpoints; all four legs share the same right-triangle geometry.
	webLen := math.Sqrt(halfSpan/2*halfSpan/2 + cfg.RiseM/2*cfg.RiseM/2)

	return []TrussMember{
		chordMember("top_chord", "top_chord",
			math.Sqrt(halfSpan*halfSpan+cfg.RiseM*cfg.RiseM)+cfg.OverhangM*slopeFactor,
			2, cfg.TopChordKgPerM),
		chordMember("bottom_chord", "bottom_chord", cfg.SpanM, 1, cfg.BottomChordKgPerM),
		chordMember("web_diagonal", "web", webLen, 4, cfg.WebKgPerM),
	}, 2
}

func kingPostMembers(cfg TrussConfig) ([]TrussMember, int) {
	halfSpan := cfg.SpanM / 2
	slopeFactor := math.Sqrt(1 + (cfg.RiseM/halfSpan)*(cfg.RiseM/halfSpan))
	strutLen := math.Sqrt(halfSpan/2*halfSpan/2 + cfg.RiseM/2*cfg.RiseM/2)

	return []TrussMember{
		chordMember("top_chord", "top_chord",
			math.Sqrt(halfSpan*halfSpan+cfg.RiseM*cfg.RiseM)+cfg.OverhangM*slopeFactor,
			2, cfg.TopChordKgPerM),
		chordMember("bottom_chord", "bottom_chord", cfg.SpanM, 1, cfg.BottomChordKgPerM),
		chordMember("king_post", "web", cfg.RiseM, 1, cfg.WebKgPerM),
		chordMember("strut", "web", strutLen, 2, cfg.WebKgPerM),
	}, 2
}

// chordMember builds one member entry from a length in metres.
func chordMember(name, role string, lengthM float64, qty int, kgPerM float64) TrussMember {
	lengthMM := lengthM * 1000
	return TrussMember{
		Name:          name,
		Role:          role,
		LengthMM:      lengthMM,
		Quantity:      qty,
		UnitWeightKgM: kgPerM,
		WeightKg:      lengthMM / 1000 * kgPerM * float64(qty),
	}
}

// connectorPlates counts one gusset per heel, one at the apex and one per
// web-to-chord joint.
func connectorPlates(cfg TrussConfig, members []TrussMember) ConnectorPlates {
	unit := cfg.ConnectorPlateKg
	if unit == 0 {
		unit = DefaultConnectorPlateKg
	}
	webJoints := 0
	for _, m := range members {
		if m.Role == "web" {
			webJoints += m.Quantity
		}
	}
	count := 3 + webJoints
	return ConnectorPlates{Count: count, UnitWeightKg: unit, WeightKg: float64(count) * unit}
}

func validateTruss(cfg TrussConfig, result TrussResult) TrussValidation {
	var warnings []string

	ratio := result.Summary.PitchRatio
	if ratio < minPitchRatio {
		warnings = append(warnings, fmt.Sprintf("pitch ratio %.3f below recommended minimum %.2f", ratio, minPitchRatio))
	}
	if ratio > maxPitchRatio {
		warnings = append(warnings, fmt.Sprintf("pitch ratio %.3f above recommended maximum %.2f", ratio, maxPitchRatio))
	}

	maxSpan := cfg.MaxSpanM
	if maxSpan == 0 {
		maxSpan = defaultMaxSpanM
	}
	if cfg.SpanM > maxSpan {
		warnings = append(warnings, fmt.Sprintf("span %.2f m exceeds recommended maximum %.2f m for %s trusses", cfg.SpanM, maxSpan, cfg.Type))
	}

	for _, m := range result.Members {
		if m.Role != "web" {
			continue
		}
		if slenderness := m.LengthMM / slendernessDivisor; slenderness > maxWebSlenderness {
			warnings = append(warnings, fmt.Sprintf("member %s slenderness %.1f exceeds %.0f", m.Name, slenderness, maxWebSlenderness))
		}
	}

	return TrussValidation{Valid: len(warnings) == 0, Warnings: warnings}
}
