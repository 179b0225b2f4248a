package services

import "fmt"

// ElementType discriminates the structural element variants.
type ElementType string

const (
	ElementBeam       ElementType = "beam"
	ElementColumn     ElementType = "column"
	ElementSlab       ElementType = "slab"
	ElementFoundation ElementType = "foundation"
)

// BeamSpec holds beam cross-section dimensions in millimetres. The span
// comes from the instance placement, not the template.
type BeamSpec struct {
	WidthMM  float64
	HeightMM float64
}

// ColumnSpec holds column cross-section dimensions in millimetres. A
// non-zero DiameterMM marks the column as circular; Width/Depth are then
// ignored.
type ColumnSpec struct {
	WidthMM    float64
	DepthMM    float64
	DiameterMM float64
}

// SlabSpec holds the slab thickness in millimetres. The plan area comes
// from the instance's grid boundary.
type SlabSpec struct {
	ThicknessMM float64
}

// FoundationSpec holds full footing dimensions in millimetres.
type FoundationSpec struct {
	LengthMM float64
	WidthMM  float64
	DepthMM  float64
}

// RebarGroup configures one group of bars (main, secondary, stirrups) on a
// template. Count takes precedence over SpacingMM; when only spacing is
// given the count is derived as ceil(run/spacing)+1. A zero BarLengthM
// means "derive from the element geometry".
type RebarGroup struct {
	Role       string // main, secondary, stirrups, ties
	DiameterMM float64
	Count      int
	SpacingMM  float64
	BarLengthM float64
}

// ElementTemplate is a reusable parametric element definition. Exactly one
// of the per-type spec fields is meaningful, selected by Type.
type ElementTemplate struct {
	ID         string
	Name       string
	Type       ElementType
	Beam       BeamSpec
	Column     ColumnSpec
	Slab       SlabSpec
	Foundation FoundationSpec
	Rebar      []RebarGroup
}

// ElementInstance is one placed occurrence of a template. It owns no
// geometry, only references: grid labels for horizontal extent and level
// references for vertical extent.
type ElementInstance struct {
	ID          string
	TemplateID  string
	GridRefs    []string
	LevelRef    string
	EndLevelRef string
}

// Default dimensions supplied by TemplateFromProperties when a stored
// properties map omits a key. Millimetres.
const (
	defaultBeamWidthMM       = 250
	defaultBeamHeightMM      = 400
	defaultColumnWidthMM     = 300
	defaultColumnDepthMM     = 300
	defaultSlabThicknessMM   = 100
	defaultFoundationSideMM  = 1000
	defaultFoundationDepthMM = 500
)

// TemplateFromProperties builds a typed ElementTemplate from the dynamic
// properties map a stored record carries. Missing keys fall back to the
// package defaults above, so a sparsely-filled record still yields a
// calculable template. An unknown element type is a contract violation and
// returns an error.
func TemplateFromProperties(id, name string, elementType ElementType, props map[string]float64, rebar []RebarGroup) (ElementTemplate, error) {
	get := func(key string, fallback float64) float64 {
		if v, ok := props[key]; ok && v > 0 {
			return v
		}
		return fallback
	}

	tpl := ElementTemplate{ID: id, Name: name, Type: elementType, Rebar: rebar}
	switch elementType {
	case ElementBeam:
		tpl.Beam = BeamSpec{
			WidthMM:  get("width_mm", defaultBeamWidthMM),
			HeightMM: get("height_mm", defaultBeamHeightMM),
		}
	case ElementColumn:
		tpl.Column = ColumnSpec{
			WidthMM:    get("width_mm", defaultColumnWidthMM),
			DepthMM:    get("depth_mm", defaultColumnDepthMM),
			DiameterMM: get("diameter_mm", 0),
		}
	case ElementSlab:
		tpl.Slab = SlabSpec{ThicknessMM: get("thickness_mm", defaultSlabThicknessMM)}
	case ElementFoundation:
		tpl.Foundation = FoundationSpec{
			LengthMM: get("length_mm", defaultFoundationSideMM),
			WidthMM:  get("width_mm", defaultFoundationSideMM),
			DepthMM:  get("depth_mm", defaultFoundationDepthMM),
		}
	default:
		return ElementTemplate{}, fmt.Errorf("unknown element type %q", elementType)
	}
	return tpl, nil
}
