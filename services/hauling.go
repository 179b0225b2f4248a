package services

import "fmt"

// HaulSegment is one leg of a haul route with its loaded (toward site)
// and unloaded (return) travel speeds.
type HaulSegment struct {
	DistanceKM       float64
	LoadedSpeedKPH   float64
	UnloadedSpeedKPH float64
}

// HaulingConfig describes a haul route and the hauling equipment. The
// free-hauling distance is the leading portion of the route that is not
// billed, a standard allowance in DPWH unit price analyses.
type HaulingConfig struct {
	FreeDistanceKM      float64
	Segments            []HaulSegment
	EquipmentHourlyRate float64
	EquipmentCapacityM3 float64
}

// HaulingSurcharge converts a haul route into a cost per cubic metre:
// round-trip travel time over the billable distance, weighted by the
// differing loaded/unloaded speeds of each segment, times the equipment
// hourly rate, divided by the load capacity.
//
// Segments wholly inside the free distance contribute nothing; a segment
// straddling the free-distance boundary is split proportionally.
func HaulingSurcharge(cfg HaulingConfig) (float64, error) {
	if cfg.EquipmentCapacityM3 <= 0 {
		return 0, fmt.Errorf("equipment capacity must be positive, got %.3f", cfg.EquipmentCapacityM3)
	}
	if cfg.FreeDistanceKM < 0 {
		return 0, fmt.Errorf("free hauling distance cannot be negative, got %.3f", cfg.FreeDistanceKM)
	}

	var travelled float64
	var totalHours float64
	for i, seg := range cfg.Segments {
		if seg.DistanceKM < 0 {
			return 0, fmt.Errorf("segment %d: distance cannot be negative, got %.3f", i, seg.DistanceKM)
		}

		segEnd := travelled + seg.DistanceKM
		travelled = segEnd

		billable := segEnd - cfg.FreeDistanceKM
		if billable <= 0 {
			continue // wholly within the free distance
		}
		if billable > seg.DistanceKM {
			billable = seg.DistanceKM // segment starts past the boundary
		}

		if seg.LoadedSpeedKPH <= 0 || seg.UnloadedSpeedKPH <= 0 {
			return 0, fmt.Errorf("segment %d: speeds must be positive on billable segments", i)
		}
		totalHours += billable/seg.LoadedSpeedKPH + billable/seg.UnloadedSpeedKPH
	}

	return totalHours * cfg.EquipmentHourlyRate / cfg.EquipmentCapacityM3, nil
}
