package services

import (
	"math"
	"strings"
	"testing"
)

// findLine returns the line with the given id suffix, failing the test if
// it is absent.
func findLine(t *testing.T, lines []TakeoffLine, id string) TakeoffLine {
	t.Helper()
	for _, l := range lines {
		if l.ID == id {
			return l
		}
	}
	t.Fatalf("line %q not found in %d lines", id, len(lines))
	return TakeoffLine{}
}

func TestCalculateBeam(t *testing.T) {
	tpl := ElementTemplate{
		ID:   "tpl_b1",
		Type: ElementBeam,
		Beam: BeamSpec{WidthMM: 300, HeightMM: 500},
	}
	inst := ElementInstance{ID: "beam1", TemplateID: "tpl_b1", GridRefs: []string{"A", "B"}, LevelRef: "2F"}

	lines, warnings, err := CalculateElement(tpl, inst, testGrid(), testLevels(), DefaultTakeoffSettings())
	if err != nil {
		t.Fatalf("CalculateElement error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	concrete := findLine(t, lines, "beam1_concrete")
	if math.Abs(concrete.Quantity-0.95) > 0.001 {
		t.Errorf("concrete = %v, want 0.95", concrete.Quantity)
	}
	if concrete.Unit != "cu.m" {
		t.Errorf("concrete unit = %q, want cu.m", concrete.Unit)
	}

	formwork := findLine(t, lines, "beam1_formwork")
	if math.Abs(formwork.Quantity-7.80) > 0.001 {
		t.Errorf("formwork = %v, want 7.80", formwork.Quantity)
	}
}

func TestCalculateColumn(t *testing.T) {
	tpl := ElementTemplate{
		ID:     "tpl_c1",
		Type:   ElementColumn,
		Column: ColumnSpec{WidthMM: 400, DepthMM: 400},
	}
	inst := ElementInstance{ID: "col1", TemplateID: "tpl_c1", LevelRef: "GF"}

	lines, _, err := CalculateElement(tpl, inst, testGrid(), testLevels(), DefaultTakeoffSettings())
	if err != nil {
		t.Fatalf("CalculateElement error = %v", err)
	}

	concrete := findLine(t, lines, "col1_concrete")
	if math.Abs(concrete.Quantity-0.59) > 0.001 {
		t.Errorf("concrete = %v, want 0.59", concrete.Quantity)
	}

	formwork := findLine(t, lines, "col1_formwork")
	if math.Abs(formwork.Quantity-5.60) > 0.001 {
		t.Errorf("formwork = %v, want 5.60", formwork.Quantity)
	}
}

func TestCalculateColumnExplicitEndLevel(t *testing.T) {
	tpl := ElementTemplate{ID: "tpl_c1", Type: ElementColumn, Column: ColumnSpec{WidthMM: 400, DepthMM: 400}}
	inst := ElementInstance{ID: "col2", TemplateID: "tpl_c1", LevelRef: "GF", EndLevelRef: "RF"}

	lines, _, err := CalculateElement(tpl, inst, testGrid(), testLevels(), DefaultTakeoffSettings())
	if err != nil {
		t.Fatalf("CalculateElement error = %v", err)
	}

	// Full 7.0 m over two storeys: 0.4 × 0.4 × 7.0 × 1.05 = 1.176.
	concrete := findLine(t, lines, "col2_concrete")
	if math.Abs(concrete.Quantity-1.18) > 0.001 {
		t.Errorf("concrete = %v, want 1.18", concrete.Quantity)
	}
}

func TestCalculateColumnTopFloorSkipped(t *testing.T) {
	tpl := ElementTemplate{ID: "tpl_c1", Type: ElementColumn, Column: ColumnSpec{WidthMM: 400, DepthMM: 400}}
	inst := ElementInstance{ID: "col_top", TemplateID: "tpl_c1", LevelRef: "RF"}

	lines, warnings, err := CalculateElement(tpl, inst, testGrid(), testLevels(), DefaultTakeoffSettings())
	if err != nil {
		t.Fatalf("top-floor column should not error, got %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("top-floor column should produce no lines, got %d", len(lines))
	}
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "col_top") {
		t.Errorf("warning should reference the instance id, got %q", warnings[0])
	}
}

func TestCalculateCircularColumn(t *testing.T) {
	tpl := ElementTemplate{ID: "tpl_cc", Type: ElementColumn, Column: ColumnSpec{DiameterMM: 500}}
	inst := ElementInstance{ID: "colc", TemplateID: "tpl_cc", LevelRef: "GF"}

	lines, _, err := CalculateElement(tpl, inst, testGrid(), testLevels(), DefaultTakeoffSettings())
	if err != nil {
		t.Fatalf("CalculateElement error = %v", err)
	}

	// π × 0.5²/4 × 3.5 × 1.05 = 0.7216 → 0.72
	concrete := findLine(t, lines, "colc_concrete")
	if math.Abs(concrete.Quantity-0.72) > 0.001 {
		t.Errorf("concrete = %v, want 0.72", concrete.Quantity)
	}

	// π × 0.5 × 3.5 = 5.4978 → 5.50
	formwork := findLine(t, lines, "colc_formwork")
	if math.Abs(formwork.Quantity-5.50) > 0.001 {
		t.Errorf("formwork = %v, want 5.50", formwork.Quantity)
	}
}

func TestCalculateSlab(t *testing.T) {
	tpl := ElementTemplate{
		ID:   "tpl_s1",
		Type: ElementSlab,
		Slab: SlabSpec{ThicknessMM: 120},
		Rebar: []RebarGroup{
			{Role: "main", DiameterMM: 12, SpacingMM: 200},
			{Role: "secondary", DiameterMM: 10, SpacingMM: 250},
		},
	}
	inst := ElementInstance{ID: "slab1", TemplateID: "tpl_s1", GridRefs: []string{"A", "B", "1", "2"}, LevelRef: "2F"}

	lines, _, err := CalculateElement(tpl, inst, testGrid(), testLevels(), DefaultTakeoffSettings())
	if err != nil {
		t.Fatalf("CalculateElement error = %v", err)
	}

	concrete := findLine(t, lines, "slab1_concrete")
	if math.Abs(concrete.Quantity-6.05) > 0.001 {
		t.Errorf("concrete = %v, want 6.05", concrete.Quantity)
	}

	formwork := findLine(t, lines, "slab1_formwork")
	if math.Abs(formwork.Quantity-48.0) > 0.001 {
		t.Errorf("formwork = %v, want 48.0", formwork.Quantity)
	}

	// Both mat directions must be present.
	main := findLine(t, lines, "slab1_rebar_main")
	secondary := findLine(t, lines, "slab1_rebar_secondary")
	if main.Quantity <= 0 || secondary.Quantity <= 0 {
		t.Errorf("rebar lines should carry positive weights, got %v and %v", main.Quantity, secondary.Quantity)
	}
}

func TestCalculateFoundation(t *testing.T) {
	tpl := ElementTemplate{
		ID:         "tpl_f1",
		Type:       ElementFoundation,
		Foundation: FoundationSpec{LengthMM: 1500, WidthMM: 1500, DepthMM: 600},
	}
	inst := ElementInstance{ID: "ftg1", TemplateID: "tpl_f1"}

	lines, _, err := CalculateElement(tpl, inst, nil, nil, DefaultTakeoffSettings())
	if err != nil {
		t.Fatalf("CalculateElement error = %v", err)
	}

	concrete := findLine(t, lines, "ftg1_concrete")
	if math.Abs(concrete.Quantity-1.42) > 0.001 {
		t.Errorf("concrete = %v, want 1.42", concrete.Quantity)
	}

	formwork := findLine(t, lines, "ftg1_formwork")
	if math.Abs(formwork.Quantity-3.60) > 0.001 {
		t.Errorf("formwork = %v, want 3.60", formwork.Quantity)
	}
}

// Formwork is a contact-surface measurement: changing the waste
// configuration must not move it, while concrete must scale.
func TestFormworkIgnoresWaste(t *testing.T) {
	tpl := ElementTemplate{ID: "tpl_b1", Type: ElementBeam, Beam: BeamSpec{WidthMM: 300, HeightMM: 500}}
	inst := ElementInstance{ID: "beam1", TemplateID: "tpl_b1", GridRefs: []string{"A", "B"}}

	low := DefaultTakeoffSettings()
	low.WasteConcrete = 0
	high := DefaultTakeoffSettings()
	high.WasteConcrete = 0.25

	lowLines, _, err := CalculateElement(tpl, inst, testGrid(), testLevels(), low)
	if err != nil {
		t.Fatal(err)
	}
	highLines, _, err := CalculateElement(tpl, inst, testGrid(), testLevels(), high)
	if err != nil {
		t.Fatal(err)
	}

	lowForm := findLine(t, lowLines, "beam1_formwork")
	highForm := findLine(t, highLines, "beam1_formwork")
	if lowForm.Quantity != highForm.Quantity {
		t.Errorf("formwork moved with waste: %v vs %v", lowForm.Quantity, highForm.Quantity)
	}

	lowConc := findLine(t, lowLines, "beam1_concrete")
	highConc := findLine(t, highLines, "beam1_concrete")
	if highConc.Quantity <= lowConc.Quantity {
		t.Errorf("concrete should scale with waste: %v vs %v", lowConc.Quantity, highConc.Quantity)
	}
}

func TestCalculateElementErrors(t *testing.T) {
	settings := DefaultTakeoffSettings()

	tests := []struct {
		name string
		tpl  ElementTemplate
		inst ElementInstance
	}{
		{
			"unknown element type",
			ElementTemplate{ID: "t", Type: "wall"},
			ElementInstance{ID: "i", TemplateID: "t"},
		},
		{
			"beam with missing grid label",
			ElementTemplate{ID: "t", Type: ElementBeam, Beam: BeamSpec{WidthMM: 300, HeightMM: 500}},
			ElementInstance{ID: "i", TemplateID: "t", GridRefs: []string{"A", "Z"}},
		},
		{
			"beam with one grid reference",
			ElementTemplate{ID: "t", Type: ElementBeam, Beam: BeamSpec{WidthMM: 300, HeightMM: 500}},
			ElementInstance{ID: "i", TemplateID: "t", GridRefs: []string{"A"}},
		},
		{
			"slab with missing grid label",
			ElementTemplate{ID: "t", Type: ElementSlab, Slab: SlabSpec{ThicknessMM: 120}},
			ElementInstance{ID: "i", TemplateID: "t", GridRefs: []string{"A", "B", "1", "9"}},
		},
		{
			"column with unknown level",
			ElementTemplate{ID: "t", Type: ElementColumn, Column: ColumnSpec{WidthMM: 300, DepthMM: 300}},
			ElementInstance{ID: "i", TemplateID: "t", LevelRef: "9F"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := CalculateElement(tt.tpl, tt.inst, testGrid(), testLevels(), settings)
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTemplateFromProperties(t *testing.T) {
	tpl, err := TemplateFromProperties("t1", "Beam 300x500", ElementBeam,
		map[string]float64{"width_mm": 300, "height_mm": 500}, nil)
	if err != nil {
		t.Fatalf("TemplateFromProperties error = %v", err)
	}
	if tpl.Beam.WidthMM != 300 || tpl.Beam.HeightMM != 500 {
		t.Errorf("beam spec = %+v", tpl.Beam)
	}

	// Missing keys fall back to defaults rather than zero.
	sparse, err := TemplateFromProperties("t2", "bare", ElementSlab, nil, nil)
	if err != nil {
		t.Fatalf("TemplateFromProperties error = %v", err)
	}
	if sparse.Slab.ThicknessMM != defaultSlabThicknessMM {
		t.Errorf("thickness = %v, want default %v", sparse.Slab.ThicknessMM, defaultSlabThicknessMM)
	}

	if _, err := TemplateFromProperties("t3", "bad", "arch", nil, nil); err == nil {
		t.Error("unknown element type should error")
	}
}
