package services

import (
	"fmt"
	"sort"
)

// Tag is a structured key/value pair attached to a TakeoffLine for
// grouping and filtering (e.g. {level 2F}, {payitem 900(1)a}).
type Tag struct {
	Key   string
	Value string
}

// TakeoffLine is the atomic, traceable output of every calculator: a
// quantity plus the formula and the exact numeric inputs that produced it.
// Lines are immutable once produced; a re-run yields lines with the same
// deterministic ids so runs can be compared.
type TakeoffLine struct {
	ID              string
	SourceElementID string
	Trade           string // concrete, rebar, formwork, roofing, steel
	ResourceKey     string
	Quantity        float64
	Unit            string
	Formula         string
	Inputs          map[string]float64
	Assumptions     []string
	Tags            []Tag
}

// TakeoffSettings carries the project-level waste, rounding and lap-length
// configuration every structural calculation reads. Waste percentages are
// expressed as fractions (0.05 = 5%).
type TakeoffSettings struct {
	WasteConcrete float64
	WasteRebar    float64
	RoundDecimals int
	DefaultLapM   float64
	MinLapM       float64
	MaxLapM       float64
}

// DefaultTakeoffSettings returns the project defaults: 5% concrete waste,
// 7.5% rebar waste, 2-decimal rounding, 40d-ish lap bounds in metres.
func DefaultTakeoffSettings() TakeoffSettings {
	return TakeoffSettings{
		WasteConcrete: 0.05,
		WasteRebar:    0.075,
		RoundDecimals: 2,
		DefaultLapM:   0.45,
		MinLapM:       0.30,
		MaxLapM:       0.80,
	}
}

// LapLength returns the configured default lap clamped to the min/max
// bounds.
func (s TakeoffSettings) LapLength() float64 {
	lap := s.DefaultLapM
	if lap < s.MinLapM {
		lap = s.MinLapM
	}
	if lap > s.MaxLapM {
		lap = s.MaxLapM
	}
	return lap
}

// TakeoffRun is the result of computing takeoff lines for a batch of
// element instances. Errors abort only the instance that raised them;
// warnings abort nothing.
type TakeoffRun struct {
	Lines    []TakeoffLine
	Errors   []string
	Warnings []string
}

// TakeoffInput bundles everything a batch structural run needs. All
// calculators are pure: the run reads nothing outside this struct.
type TakeoffInput struct {
	Templates map[string]ElementTemplate
	Instances []ElementInstance
	Grid      *GridSystem
	Levels    *LevelSystem
	Settings  TakeoffSettings
}

// RunTakeoff computes concrete, rebar and formwork lines for every
// instance. Instances are processed in id order so two runs over the same
// input produce identical output slices.
func RunTakeoff(in TakeoffInput) TakeoffRun {
	run := TakeoffRun{}

	instances := make([]ElementInstance, len(in.Instances))
	copy(instances, in.Instances)
	sort.Slice(instances, func(i, j int) bool { return instances[i].ID < instances[j].ID })

	for _, inst := range instances {
		tpl, ok := in.Templates[inst.TemplateID]
		if !ok {
			run.Errors = append(run.Errors,
				fmt.Sprintf("instance %s: template %s not found", inst.ID, inst.TemplateID))
			continue
		}
		lines, warnings, err := CalculateElement(tpl, inst, in.Grid, in.Levels, in.Settings)
		if err != nil {
			run.Errors = append(run.Errors, fmt.Sprintf("instance %s: %v", inst.ID, err))
			continue
		}
		run.Warnings = append(run.Warnings, warnings...)
		run.Lines = append(run.Lines, lines...)
	}
	return run
}
