package handlers

import (
	"fmt"
	"sort"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// The handlers in this file translate stored records into the pure input
// structs the calculation engine consumes. All engine calls stay free of
// database access.

func findProjectRecords(app *pocketbase.PocketBase, collection, projectID, sortField string) ([]*core.Record, error) {
	col, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		return nil, fmt.Errorf("collection %s not found: %w", collection, err)
	}
	return app.FindRecordsByFilter(col, "project = {:pid}", sortField, 0, 0, map[string]any{"pid": projectID})
}

// loadGridSystem builds the grid resolver from a project's grid lines.
// The returned labels are ordered by axis then sort order for form
// dropdowns.
func loadGridSystem(app *pocketbase.PocketBase, projectID string) (*services.GridSystem, []string, error) {
	records, err := findProjectRecords(app, "grid_lines", projectID, "axis,sort_order")
	if err != nil {
		return nil, nil, err
	}

	lines := make([]services.GridLine, 0, len(records))
	labels := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, services.GridLine{
			Label:  rec.GetString("label"),
			Offset: rec.GetFloat("offset_m"),
		})
		labels = append(labels, rec.GetString("label"))
	}
	return services.NewGridSystem(lines), labels, nil
}

// loadLevelSystem builds the level resolver from a project's levels.
func loadLevelSystem(app *pocketbase.PocketBase, projectID string) (*services.LevelSystem, []string, error) {
	records, err := findProjectRecords(app, "levels", projectID, "sort_order")
	if err != nil {
		return nil, nil, err
	}

	levels := make([]services.Level, 0, len(records))
	labels := make([]string, 0, len(records))
	for _, rec := range records {
		levels = append(levels, services.Level{
			ID:        rec.Id,
			Label:     rec.GetString("label"),
			Elevation: rec.GetFloat("elevation_m"),
		})
		labels = append(labels, rec.GetString("label"))
	}
	return services.NewLevelSystem(levels), labels, nil
}

// loadTemplates builds the typed element templates keyed by record id.
func loadTemplates(app *pocketbase.PocketBase, projectID string) (map[string]services.ElementTemplate, error) {
	records, err := findProjectRecords(app, "element_templates", projectID, "created")
	if err != nil {
		return nil, err
	}

	templatesByID := make(map[string]services.ElementTemplate, len(records))
	for _, rec := range records {
		var props map[string]float64
		if err := rec.UnmarshalJSONField("properties", &props); err != nil {
			props = nil
		}

		var rawGroups []map[string]any
		_ = rec.UnmarshalJSONField("rebar_groups", &rawGroups)
		rebar := make([]services.RebarGroup, 0, len(rawGroups))
		for _, rg := range rawGroups {
			role, _ := rg["role"].(string)
			if role == "" {
				role = "main"
			}
			rebar = append(rebar, services.RebarGroup{
				Role:       role,
				DiameterMM: jsonFloat(rg["diameter_mm"]),
				Count:      int(jsonFloat(rg["count"])),
				SpacingMM:  jsonFloat(rg["spacing_mm"]),
				BarLengthM: jsonFloat(rg["bar_length_m"]),
			})
		}

		tpl, err := services.TemplateFromProperties(
			rec.Id,
			rec.GetString("name"),
			services.ElementType(rec.GetString("element_type")),
			props,
			rebar,
		)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", rec.GetString("name"), err)
		}
		templatesByID[rec.Id] = tpl
	}
	return templatesByID, nil
}

// jsonFloat reads a numeric value out of a decoded JSON map. Integers
// stored by Set arrive as float64 either way; anything else is zero.
func jsonFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

// loadInstances builds the placed element instances for a project.
func loadInstances(app *pocketbase.PocketBase, projectID string) ([]services.ElementInstance, error) {
	records, err := findProjectRecords(app, "element_instances", projectID, "created")
	if err != nil {
		return nil, err
	}

	instances := make([]services.ElementInstance, 0, len(records))
	for _, rec := range records {
		var gridRefs []string
		_ = rec.UnmarshalJSONField("grid_refs", &gridRefs)
		instances = append(instances, services.ElementInstance{
			ID:          rec.Id,
			TemplateID:  rec.GetString("template"),
			GridRefs:    gridRefs,
			LevelRef:    rec.GetString("level_ref"),
			EndLevelRef: rec.GetString("end_level_ref"),
		})
	}
	return instances, nil
}

// loadTakeoffSettings reads a project's estimate_settings record into the
// engine config structs, falling back to package defaults when no record
// exists.
func loadTakeoffSettings(app *pocketbase.PocketBase, projectID string) (services.TakeoffSettings, services.MarkupConfig, services.HaulingConfig) {
	takeoff := services.DefaultTakeoffSettings()
	markups := services.DefaultMarkups()
	var hauling services.HaulingConfig

	rec := findEstimateSettings(app, projectID)
	if rec == nil {
		return takeoff, markups, hauling
	}

	takeoff.WasteConcrete = rec.GetFloat("waste_concrete")
	takeoff.WasteRebar = rec.GetFloat("waste_rebar")
	takeoff.RoundDecimals = int(rec.GetFloat("round_decimals"))
	takeoff.DefaultLapM = rec.GetFloat("default_lap_m")
	// Records created before the lap bounds existed carry zeroes; a zero
	// max would clamp every lap to nothing, so keep the defaults instead.
	if v := rec.GetFloat("min_lap_m"); v > 0 {
		takeoff.MinLapM = v
	}
	if v := rec.GetFloat("max_lap_m"); v > 0 {
		takeoff.MaxLapM = v
	}

	markups.OCMPercent = rec.GetFloat("ocm_percent")
	markups.CPPercent = rec.GetFloat("cp_percent")
	markups.VATPercent = rec.GetFloat("vat_percent")
	markups.MinorToolsPercent = rec.GetFloat("minor_tools_percent")
	markups.MinorToolsEnabled = rec.GetBool("minor_tools_enabled")

	hauling.FreeDistanceKM = rec.GetFloat("free_distance_km")
	hauling.EquipmentHourlyRate = rec.GetFloat("haul_equipment_rate")
	hauling.EquipmentCapacityM3 = rec.GetFloat("haul_equipment_capacity_m3")

	var segments []map[string]float64
	if err := rec.UnmarshalJSONField("haul_segments", &segments); err == nil {
		for _, seg := range segments {
			hauling.Segments = append(hauling.Segments, services.HaulSegment{
				DistanceKM:       seg["distance_km"],
				LoadedSpeedKPH:   seg["loaded_speed_kph"],
				UnloadedSpeedKPH: seg["unloaded_speed_kph"],
			})
		}
	}
	return takeoff, markups, hauling
}

// jsonLaborItem mirrors the stored labor line shape of a dupa_items record.
type jsonLaborItem struct {
	Description string  `json:"description"`
	Persons     float64 `json:"persons"`
	Hours       float64 `json:"hours"`
	HourlyRate  float64 `json:"hourly_rate"`
}

type jsonEquipmentItem struct {
	Description string  `json:"description"`
	Units       float64 `json:"units"`
	Hours       float64 `json:"hours"`
	HourlyRate  float64 `json:"hourly_rate"`
}

type jsonMaterialItem struct {
	Description    string  `json:"description"`
	Unit           string  `json:"unit"`
	Quantity       float64 `json:"quantity"`
	BasePrice      float64 `json:"base_price"`
	PriceSource    string  `json:"price_source"`
	IncludeHauling bool    `json:"include_hauling"`
}

// loadDUPAInputs reads a project's pay items into rollup inputs, ordered
// by pay item number so re-computed estimates keep a stable row order.
func loadDUPAInputs(app *pocketbase.PocketBase, projectID string, markups services.MarkupConfig, haulSurcharge float64) ([]services.DUPAInput, error) {
	records, err := findProjectRecords(app, "dupa_items", projectID, "pay_item_no")
	if err != nil {
		return nil, err
	}

	inputs := make([]services.DUPAInput, 0, len(records))
	for _, rec := range records {
		in := services.DUPAInput{
			PayItemNo:             rec.GetString("pay_item_no"),
			Description:           rec.GetString("description"),
			Unit:                  rec.GetString("unit"),
			Quantity:              rec.GetFloat("quantity"),
			Markups:               markups,
			HaulingSurchargePerM3: haulSurcharge,
		}

		var labor []jsonLaborItem
		_ = rec.UnmarshalJSONField("labor", &labor)
		for _, l := range labor {
			in.Labor = append(in.Labor, services.LaborItem{
				Description: l.Description,
				Persons:     l.Persons,
				Hours:       l.Hours,
				HourlyRate:  l.HourlyRate,
			})
		}

		var equipment []jsonEquipmentItem
		_ = rec.UnmarshalJSONField("equipment", &equipment)
		for _, eq := range equipment {
			in.Equipment = append(in.Equipment, services.EquipmentItem{
				Description: eq.Description,
				Units:       eq.Units,
				Hours:       eq.Hours,
				HourlyRate:  eq.HourlyRate,
			})
		}

		var materials []jsonMaterialItem
		_ = rec.UnmarshalJSONField("materials", &materials)
		for _, m := range materials {
			in.Materials = append(in.Materials, services.MaterialItem{
				Description:    m.Description,
				Unit:           m.Unit,
				Quantity:       m.Quantity,
				BasePrice:      m.BasePrice,
				PriceSource:    m.PriceSource,
				IncludeHauling: m.IncludeHauling,
			})
		}

		inputs = append(inputs, in)
	}

	sort.Slice(inputs, func(i, j int) bool { return inputs[i].PayItemNo < inputs[j].PayItemNo })
	return inputs, nil
}
