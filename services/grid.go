// Package services contains the quantity takeoff and cost rollup engine:
// pure calculation functions that turn element geometry into traceable
// quantities and priced resource lines into marked-up costs.
package services

import (
	"fmt"
	"sort"
)

// GridLine is a named vertical or horizontal grid axis with a numeric
// offset in metres from the project origin.
type GridLine struct {
	Label  string
	Offset float64
}

// Level is a named floor level with an elevation in metres.
type Level struct {
	ID        string
	Label     string
	Elevation float64
}

// GridSystem resolves grid-line labels to offsets. Lookups are by label
// only, never by index, so reordering the source records cannot change a
// calculation result.
type GridSystem struct {
	offsets map[string]float64
}

// NewGridSystem builds a GridSystem from a slice of grid lines. Later
// duplicates of a label overwrite earlier ones.
func NewGridSystem(lines []GridLine) *GridSystem {
	offsets := make(map[string]float64, len(lines))
	for _, gl := range lines {
		offsets[gl.Label] = gl.Offset
	}
	return &GridSystem{offsets: offsets}
}

// Offset returns the offset for a grid label, or an error naming the
// missing label.
func (g *GridSystem) Offset(label string) (float64, error) {
	off, ok := g.offsets[label]
	if !ok {
		return 0, fmt.Errorf("grid line %q not found", label)
	}
	return off, nil
}

// Distance returns the absolute distance between two grid labels.
func (g *GridSystem) Distance(from, to string) (float64, error) {
	a, err := g.Offset(from)
	if err != nil {
		return 0, err
	}
	b, err := g.Offset(to)
	if err != nil {
		return 0, err
	}
	d := b - a
	if d < 0 {
		d = -d
	}
	return d, nil
}

// LevelSystem resolves level ids/labels to elevations and answers
// "which level is next above this one" for column height detection.
type LevelSystem struct {
	byID   map[string]Level
	sorted []Level // ascending elevation
}

// NewLevelSystem builds a LevelSystem from a slice of levels. Levels are
// indexed by both ID and Label so callers can use whichever reference the
// stored record carries.
func NewLevelSystem(levels []Level) *LevelSystem {
	byID := make(map[string]Level, len(levels)*2)
	sorted := make([]Level, len(levels))
	copy(sorted, levels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Elevation < sorted[j].Elevation })
	for _, lv := range levels {
		if lv.ID != "" {
			byID[lv.ID] = lv
		}
		if lv.Label != "" {
			byID[lv.Label] = lv
		}
	}
	return &LevelSystem{byID: byID, sorted: sorted}
}

// Elevation returns the elevation for a level id or label.
func (l *LevelSystem) Elevation(ref string) (float64, error) {
	lv, ok := l.byID[ref]
	if !ok {
		return 0, fmt.Errorf("level %q not found", ref)
	}
	return lv.Elevation, nil
}

// NextAbove returns the level with the smallest elevation strictly above
// the given level. The second return is false when the level is the
// topmost one.
func (l *LevelSystem) NextAbove(ref string) (Level, bool, error) {
	lv, ok := l.byID[ref]
	if !ok {
		return Level{}, false, fmt.Errorf("level %q not found", ref)
	}
	for _, candidate := range l.sorted {
		if candidate.Elevation > lv.Elevation {
			return candidate, true, nil
		}
	}
	return Level{}, false, nil
}
