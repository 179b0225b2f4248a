package services

import (
	"math"
	"strings"
	"testing"
)

func howeConfig() TrussConfig {
	return TrussConfig{
		Type:              TrussHowe,
		SpanM:             8,
		RiseM:             1.2,
		OverhangM:         0.5,
		SpacingM:          0.6,
		TopChordKgPerM:    7.51,
		BottomChordKgPerM: 7.51,
		WebKgPerM:         4.48,
	}
}

func TestGenerateTrussHowe(t *testing.T) {
	result, err := GenerateTruss(howeConfig())
	if err != nil {
		t.Fatalf("GenerateTruss error = %v", err)
	}

	// Span 8 m auto-selects 4 panels per half.
	if result.Summary.PanelCount != 4 {
		t.Errorf("panel count = %d, want 4", result.Summary.PanelCount)
	}

	// Pitch 1.2 / 4.0 = 0.3: inside the recommended band.
	if math.Abs(result.Summary.PitchRatio-0.3) > 1e-9 {
		t.Errorf("pitch ratio = %v, want 0.3", result.Summary.PitchRatio)
	}
	if !result.Validation.Valid {
		t.Errorf("expected valid design, warnings: %v", result.Validation.Warnings)
	}

	// Top chord: sqrt(4² + 1.2²) + overhang × slope factor, two pieces.
	var topChord TrussMember
	for _, m := range result.Members {
		if m.Name == "top_chord" {
			topChord = m
		}
	}
	slope := math.Sqrt(1 + 0.3*0.3)
	wantLen := (math.Sqrt(16+1.44) + 0.5*slope) * 1000
	if math.Abs(topChord.LengthMM-wantLen) > 0.1 {
		t.Errorf("top chord length = %v, want %v", topChord.LengthMM, wantLen)
	}
	if topChord.Quantity != 2 {
		t.Errorf("top chord quantity = %d, want 2", topChord.Quantity)
	}

	// Member weight identity: (len/1000) × kg/m × qty.
	wantWeight := topChord.LengthMM / 1000 * 7.51 * 2
	if math.Abs(topChord.WeightKg-wantWeight) > 1e-9 {
		t.Errorf("top chord weight = %v, want %v", topChord.WeightKg, wantWeight)
	}

	if result.Summary.TotalWeightKg <= result.Summary.MemberWeightKg {
		t.Error("total weight should include connector plates")
	}
}

func TestGenerateTrussHoweExplicitWebCount(t *testing.T) {
	cfg := howeConfig()
	cfg.VerticalWebCount = 2

	result, err := GenerateTruss(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.Summary.PanelCount != 3 {
		t.Errorf("panel count = %d, want verticalWebCount+1 = 3", result.Summary.PanelCount)
	}
}

func TestHowePanelCountAutoBySpan(t *testing.T) {
	tests := []struct {
		span   float64
		expect int
	}{
		{4, 3},
		{6, 3},
		{8, 4},
		{12, 4},
		{15, 5},
	}
	for _, tt := range tests {
		cfg := howeConfig()
		cfg.SpanM = tt.span
		if got := howePanelCount(cfg); got != tt.expect {
			t.Errorf("howePanelCount(span %v) = %d, want %d", tt.span, got, tt.expect)
		}
	}
}

func TestGenerateTrussFink(t *testing.T) {
	cfg := howeConfig()
	cfg.Type = TrussFink

	result, err := GenerateTruss(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var webs TrussMember
	for _, m := range result.Members {
		if m.Name == "web_diagonal" {
			webs = m
		}
	}
	if webs.Quantity != 4 {
		t.Errorf("fink web quantity = %d, want 4", webs.Quantity)
	}
	wantLen := math.Sqrt(2*2+0.6*0.6) * 1000
	if math.Abs(webs.LengthMM-wantLen) > 0.1 {
		t.Errorf("fink web length = %v, want %v", webs.LengthMM, wantLen)
	}
}

func TestGenerateTrussKingPost(t *testing.T) {
	cfg := howeConfig()
	cfg.Type = TrussKingPost

	result, err := GenerateTruss(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var king TrussMember
	for _, m := range result.Members {
		if m.Name == "king_post" {
			king = m
		}
	}
	if king.Quantity != 1 {
		t.Errorf("king post quantity = %d, want 1", king.Quantity)
	}
	if math.Abs(king.LengthMM-1200) > 0.1 {
		t.Errorf("king post length = %v, want 1200", king.LengthMM)
	}
}

func TestGenerateTrussUnknownType(t *testing.T) {
	cfg := howeConfig()
	cfg.Type = "warren"
	if _, err := GenerateTruss(cfg); err == nil {
		t.Error("unknown truss type must fail loudly")
	}
}

func TestGenerateTrussInvalidDimensions(t *testing.T) {
	cfg := howeConfig()
	cfg.SpanM = 0
	if _, err := GenerateTruss(cfg); err == nil {
		t.Error("zero span should error")
	}

	cfg = howeConfig()
	cfg.RiseM = -1
	if _, err := GenerateTruss(cfg); err == nil {
		t.Error("negative rise should error")
	}
}

func TestTrussValidationWarnings(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*TrussConfig)
		fragment string
	}{
		{
			"shallow pitch",
			func(c *TrussConfig) { c.RiseM = 0.4 }, // ratio 0.1
			"below recommended",
		},
		{
			"steep pitch",
			func(c *TrussConfig) { c.RiseM = 2.4 }, // ratio 0.6
			"above recommended",
		},
		{
			"span over threshold",
			func(c *TrussConfig) { c.SpanM = 14; c.RiseM = 2.1 },
			"exceeds recommended maximum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := howeConfig()
			tt.mutate(&cfg)
			result, err := GenerateTruss(cfg)
			if err != nil {
				t.Fatalf("warnings must not become errors: %v", err)
			}
			if result.Validation.Valid {
				t.Fatal("expected invalid design")
			}
			found := false
			for _, w := range result.Validation.Warnings {
				if strings.Contains(w, tt.fragment) {
					found = true
				}
			}
			if !found {
				t.Errorf("no warning containing %q in %v", tt.fragment, result.Validation.Warnings)
			}
		})
	}
}

func TestConnectorPlateWeight(t *testing.T) {
	result, err := GenerateTruss(howeConfig())
	if err != nil {
		t.Fatal(err)
	}

	if result.Plates.UnitWeightKg != DefaultConnectorPlateKg {
		t.Errorf("plate unit weight = %v, want %v", result.Plates.UnitWeightKg, DefaultConnectorPlateKg)
	}
	want := float64(result.Plates.Count) * DefaultConnectorPlateKg
	if math.Abs(result.Plates.WeightKg-want) > 1e-9 {
		t.Errorf("plate weight = %v, want %v", result.Plates.WeightKg, want)
	}

	// The approximation is configurable, not hard-coded.
	cfg := howeConfig()
	cfg.ConnectorPlateKg = 0.25
	custom, err := GenerateTruss(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if custom.Plates.UnitWeightKg != 0.25 {
		t.Errorf("custom plate weight = %v, want 0.25", custom.Plates.UnitWeightKg)
	}
}
