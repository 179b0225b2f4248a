package services

import (
	"fmt"
	"math"
)

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// CalculateElement produces the takeoff lines for one placed element:
// one concrete line, one formwork line, and one rebar line per configured
// bar group. Returned warnings are advisory (the element was skipped or
// approximated); a returned error means the element could not be computed
// at all (missing grid label, bad placement).
//
// Waste handling: concrete and rebar quantities carry the configured waste
// multiplier. Formwork is a contact-surface measurement and never does.
func CalculateElement(tpl ElementTemplate, inst ElementInstance, grid *GridSystem, levels *LevelSystem, settings TakeoffSettings) ([]TakeoffLine, []string, error) {
	switch tpl.Type {
	case ElementBeam:
		return calcBeam(tpl, inst, grid, levels, settings)
	case ElementColumn:
		return calcColumn(tpl, inst, levels, settings)
	case ElementSlab:
		return calcSlab(tpl, inst, grid, levels, settings)
	case ElementFoundation:
		return calcFoundation(tpl, inst, settings)
	default:
		return nil, nil, fmt.Errorf("unknown element type %q", tpl.Type)
	}
}

func calcBeam(tpl ElementTemplate, inst ElementInstance, grid *GridSystem, levels *LevelSystem, settings TakeoffSettings) ([]TakeoffLine, []string, error) {
	if grid == nil {
		return nil, nil, fmt.Errorf("beam placement requires a grid system")
	}
	if len(inst.GridRefs) < 2 {
		return nil, nil, fmt.Errorf("beam placement requires two grid references, got %d", len(inst.GridRefs))
	}
	span, err := grid.Distance(inst.GridRefs[0], inst.GridRefs[1])
	if err != nil {
		return nil, nil, err
	}

	w := tpl.Beam.WidthMM / 1000
	h := tpl.Beam.HeightMM / 1000
	tags := levelTags(inst, levels)

	volume := w * h * span
	concrete := concreteLine(inst, volume, settings,
		fmt.Sprintf("%.3f × %.3f × %.3f × (1+%.3f)", w, h, span, settings.WasteConcrete),
		map[string]float64{"width_m": w, "height_m": h, "span_m": span, "waste_concrete": settings.WasteConcrete},
		tags)

	// Bottom plus two sides; the top face is struck off, not formed.
	formArea := 2*h*span + w*span
	formwork := formworkLine(inst, formArea, settings,
		fmt.Sprintf("2 × %.3f × %.3f + %.3f × %.3f", h, span, w, span),
		map[string]float64{"width_m": w, "height_m": h, "span_m": span},
		tags)

	lines := []TakeoffLine{concrete, formwork}
	lines = append(lines, rebarLines(tpl, inst, span, w, h, settings, tags)...)
	return lines, nil, nil
}

func calcColumn(tpl ElementTemplate, inst ElementInstance, levels *LevelSystem, settings TakeoffSettings) ([]TakeoffLine, []string, error) {
	if levels == nil {
		return nil, nil, fmt.Errorf("column placement requires level definitions")
	}
	base, err := levels.Elevation(inst.LevelRef)
	if err != nil {
		return nil, nil, err
	}

	var height float64
	if inst.EndLevelRef != "" {
		top, err := levels.Elevation(inst.EndLevelRef)
		if err != nil {
			return nil, nil, err
		}
		height = top - base
	} else {
		next, ok, err := levels.NextAbove(inst.LevelRef)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			// Top-floor column: nothing above to span to. Skip with a
			// warning rather than failing the run.
			warning := fmt.Sprintf("column %s at level %s has no level above; skipped", inst.ID, inst.LevelRef)
			return nil, []string{warning}, nil
		}
		height = next.Elevation - base
	}
	if height <= 0 {
		return nil, nil, fmt.Errorf("column %s resolves to non-positive height %.3f", inst.ID, height)
	}

	tags := levelTags(inst, levels)
	circular := tpl.Column.DiameterMM > 0

	var volume, formArea float64
	var volFormula, formFormula string
	inputs := map[string]float64{"height_m": height, "waste_concrete": settings.WasteConcrete}
	if circular {
		d := tpl.Column.DiameterMM / 1000
		volume = math.Pi * d * d / 4 * height
		formArea = math.Pi * d * height
		volFormula = fmt.Sprintf("π × %.3f² / 4 × %.3f × (1+%.3f)", d, height, settings.WasteConcrete)
		formFormula = fmt.Sprintf("π × %.3f × %.3f", d, height)
		inputs["diameter_m"] = d
	} else {
		w := tpl.Column.WidthMM / 1000
		dep := tpl.Column.DepthMM / 1000
		volume = w * dep * height
		formArea = 2 * (w + dep) * height
		volFormula = fmt.Sprintf("%.3f × %.3f × %.3f × (1+%.3f)", w, dep, height, settings.WasteConcrete)
		formFormula = fmt.Sprintf("2 × (%.3f + %.3f) × %.3f", w, dep, height)
		inputs["width_m"] = w
		inputs["depth_m"] = dep
	}

	concrete := concreteLine(inst, volume, settings, volFormula, inputs, tags)
	formwork := formworkLine(inst, formArea, settings, formFormula, copyInputs(inputs, "waste_concrete"), tags)

	lines := []TakeoffLine{concrete, formwork}
	lines = append(lines, rebarLines(tpl, inst, height, tpl.Column.WidthMM/1000, tpl.Column.DepthMM/1000, settings, tags)...)
	return lines, nil, nil
}

func calcSlab(tpl ElementTemplate, inst ElementInstance, grid *GridSystem, levels *LevelSystem, settings TakeoffSettings) ([]TakeoffLine, []string, error) {
	if grid == nil {
		return nil, nil, fmt.Errorf("slab placement requires a grid system")
	}
	if len(inst.GridRefs) < 4 {
		return nil, nil, fmt.Errorf("slab placement requires four grid references, got %d", len(inst.GridRefs))
	}
	lenX, err := grid.Distance(inst.GridRefs[0], inst.GridRefs[1])
	if err != nil {
		return nil, nil, err
	}
	lenY, err := grid.Distance(inst.GridRefs[2], inst.GridRefs[3])
	if err != nil {
		return nil, nil, err
	}

	t := tpl.Slab.ThicknessMM / 1000
	area := lenX * lenY
	tags := levelTags(inst, levels)

	concrete := concreteLine(inst, area*t, settings,
		fmt.Sprintf("%.3f × %.3f × %.3f × (1+%.3f)", lenX, lenY, t, settings.WasteConcrete),
		map[string]float64{"len_x_m": lenX, "len_y_m": lenY, "thickness_m": t, "waste_concrete": settings.WasteConcrete},
		tags)

	// Soffit only; edge forms are negligible relative to the soffit and
	// are carried by the beam sides.
	formwork := formworkLine(inst, area, settings,
		fmt.Sprintf("%.3f × %.3f", lenX, lenY),
		map[string]float64{"len_x_m": lenX, "len_y_m": lenY},
		tags)

	lines := []TakeoffLine{concrete, formwork}
	lines = append(lines, slabRebarLines(tpl, inst, lenX, lenY, settings, tags)...)
	return lines, nil, nil
}

func calcFoundation(tpl ElementTemplate, inst ElementInstance, settings TakeoffSettings) ([]TakeoffLine, []string, error) {
	l := tpl.Foundation.LengthMM / 1000
	w := tpl.Foundation.WidthMM / 1000
	d := tpl.Foundation.DepthMM / 1000
	var tags []Tag

	concrete := concreteLine(inst, l*w*d, settings,
		fmt.Sprintf("%.3f × %.3f × %.3f × (1+%.3f)", l, w, d, settings.WasteConcrete),
		map[string]float64{"length_m": l, "width_m": w, "depth_m": d, "waste_concrete": settings.WasteConcrete},
		tags)

	formwork := formworkLine(inst, 2*(l+w)*d, settings,
		fmt.Sprintf("2 × (%.3f + %.3f) × %.3f", l, w, d),
		map[string]float64{"length_m": l, "width_m": w, "depth_m": d},
		tags)

	lines := []TakeoffLine{concrete, formwork}
	lines = append(lines, rebarLines(tpl, inst, l, w, d, settings, tags)...)
	return lines, nil, nil
}

// concreteLine builds the waste-adjusted concrete volume line.
func concreteLine(inst ElementInstance, rawVolume float64, settings TakeoffSettings, formula string, inputs map[string]float64, tags []Tag) TakeoffLine {
	qty := roundTo(rawVolume*(1+settings.WasteConcrete), settings.RoundDecimals)
	return TakeoffLine{
		ID:              inst.ID + "_concrete",
		SourceElementID: inst.ID,
		Trade:           "concrete",
		ResourceKey:     "structural_concrete",
		Quantity:        qty,
		Unit:            "cu.m",
		Formula:         formula,
		Inputs:          inputs,
		Tags:            tags,
	}
}

// formworkLine builds the contact-surface line. No waste multiplier: the
// measured quantity is the contact area itself.
func formworkLine(inst ElementInstance, area float64, settings TakeoffSettings, formula string, inputs map[string]float64, tags []Tag) TakeoffLine {
	return TakeoffLine{
		ID:              inst.ID + "_formwork",
		SourceElementID: inst.ID,
		Trade:           "formwork",
		ResourceKey:     "formwork_contact_area",
		Quantity:        roundTo(area, settings.RoundDecimals),
		Unit:            "sq.m",
		Formula:         formula,
		Inputs:          inputs,
		Tags:            tags,
	}
}

// levelTags returns the structured tags for an instance's level placement.
func levelTags(inst ElementInstance, levels *LevelSystem) []Tag {
	if inst.LevelRef == "" || levels == nil {
		return nil
	}
	return []Tag{{Key: "level", Value: inst.LevelRef}}
}

// copyInputs clones an inputs map minus the named keys, so formwork lines
// do not advertise waste inputs they deliberately ignore.
func copyInputs(inputs map[string]float64, drop ...string) map[string]float64 {
	out := make(map[string]float64, len(inputs))
	for k, v := range inputs {
		out[k] = v
	}
	for _, k := range drop {
		delete(out, k)
	}
	return out
}
