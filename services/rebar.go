package services

import (
	"fmt"
	"math"
)

// rebarUnitWeights maps bar diameter (mm) to unit weight (kg/m) per the
// standard deformed-bar tables used in DPWH estimates.
var rebarUnitWeights = map[float64]float64{
	6:  0.222,
	8:  0.395,
	10: 0.616,
	12: 0.888,
	16: 1.578,
	20: 2.466,
	25: 3.853,
	28: 4.831,
	32: 6.313,
	36: 7.990,
}

// RebarUnitWeight returns the unit weight in kg/m for a bar diameter.
// Diameters outside the table fall back to the d²/162.2 approximation.
func RebarUnitWeight(diameterMM float64) float64 {
	if w, ok := rebarUnitWeights[diameterMM]; ok {
		return w
	}
	return diameterMM * diameterMM / 162.2
}

// barCount resolves the number of bars in a group: explicit count wins,
// otherwise derived from spacing over the run length as ceil(run/s)+1.
// Zero means the group is not calculable and yields no line.
func barCount(group RebarGroup, runM float64) int {
	if group.Count > 0 {
		return group.Count
	}
	if group.SpacingMM > 0 && runM > 0 {
		return int(math.Ceil(runM/(group.SpacingMM/1000))) + 1
	}
	return 0
}

// rebarLines produces one line per configured bar group for linear
// elements (beams, columns, footings). runM is the element's primary run
// (span or height); sectionW/sectionH size derived stirrup loops.
func rebarLines(tpl ElementTemplate, inst ElementInstance, runM, sectionW, sectionH float64, settings TakeoffSettings, tags []Tag) []TakeoffLine {
	var lines []TakeoffLine
	for _, group := range tpl.Rebar {
		count := barCount(group, runM)
		if count == 0 {
			continue
		}

		length := group.BarLengthM
		var assumptions []string
		if length == 0 {
			if group.Role == "stirrups" || group.Role == "ties" {
				length = 2 * (sectionW + sectionH)
				assumptions = append(assumptions, "stirrup length taken as section perimeter")
			} else {
				length = runM
			}
		}

		lines = append(lines, rebarLine(inst, group, count, length, settings, tags, assumptions))
	}
	return lines
}

// slabRebarLines produces the two-way mat: main bars run along X spaced
// across Y, secondary bars the reverse.
func slabRebarLines(tpl ElementTemplate, inst ElementInstance, lenX, lenY float64, settings TakeoffSettings, tags []Tag) []TakeoffLine {
	var lines []TakeoffLine
	for _, group := range tpl.Rebar {
		runAcross, barLen := lenY, lenX
		if group.Role == "secondary" {
			runAcross, barLen = lenX, lenY
		}
		count := barCount(group, runAcross)
		if count == 0 {
			continue
		}
		if group.BarLengthM > 0 {
			barLen = group.BarLengthM
		}
		lines = append(lines, rebarLine(inst, group, count, barLen, settings, tags, nil))
	}
	return lines
}

func rebarLine(inst ElementInstance, group RebarGroup, count int, barLengthM float64, settings TakeoffSettings, tags []Tag, assumptions []string) TakeoffLine {
	lap := settings.LapLength()
	unitWeight := RebarUnitWeight(group.DiameterMM)
	weight := float64(count) * (barLengthM + 2*lap) * unitWeight * (1 + settings.WasteRebar)

	return TakeoffLine{
		ID:              fmt.Sprintf("%s_rebar_%s", inst.ID, group.Role),
		SourceElementID: inst.ID,
		Trade:           "rebar",
		ResourceKey:     fmt.Sprintf("rebar_%.0fmm", group.DiameterMM),
		Quantity:        roundTo(weight, settings.RoundDecimals),
		Unit:            "kg",
		Formula: fmt.Sprintf("%d × (%.3f + 2×%.3f) × %.3f × (1+%.3f)",
			count, barLengthM, lap, unitWeight, settings.WasteRebar),
		Inputs: map[string]float64{
			"bar_count":    float64(count),
			"bar_length_m": barLengthM,
			"lap_length_m": lap,
			"unit_weight":  unitWeight,
			"diameter_mm":  group.DiameterMM,
			"waste_rebar":  settings.WasteRebar,
		},
		Assumptions: assumptions,
		Tags:        tags,
	}
}
