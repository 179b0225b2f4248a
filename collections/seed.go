package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type gridDef struct {
	axis      string
	label     string
	offsetM   float64
	sortOrder int
}

type levelDef struct {
	label      string
	elevationM float64
	sortOrder  int
}

type rebarGroupDef struct {
	role       string
	diameterMM float64
	count      int
	spacingMM  float64
}

type templateDef struct {
	name        string
	elementType string
	properties  map[string]float64
	rebarGroups []rebarGroupDef
}

type instanceDef struct {
	templateName string
	gridRefs     []string
	levelRef     string
	endLevelRef  string
}

type laborRateDef struct {
	description string
	hourlyRate  float64
}

type equipmentRateDef struct {
	description string
	hourlyRate  float64
	capacityM3  float64
}

type materialPriceDef struct {
	description    string
	unit           string
	basePrice      float64
	priceSource    string
	includeHauling bool
}

type dupaDef struct {
	payItemNo   string
	description string
	unit        string
	quantity    float64
	labor       []map[string]any
	equipment   []map[string]any
	materials   []map[string]any
}

// ── Seed data ────────────────────────────────────────────────────────────

var seedGrids = []gridDef{
	{"x", "A", 0, 1},
	{"x", "B", 6, 2},
	{"x", "C", 12, 3},
	{"x", "D", 18, 4},
	{"y", "1", 0, 1},
	{"y", "2", 8, 2},
	{"y", "3", 16, 3},
	{"y", "4", 24, 4},
}

var seedLevels = []levelDef{
	{"GF", 0, 1},
	{"2F", 3.5, 2},
	{"RF", 7.0, 3},
}

var seedTemplates = []templateDef{
	{
		name:        "B-300x500",
		elementType: "beam",
		properties:  map[string]float64{"width_mm": 300, "height_mm": 500},
		rebarGroups: []rebarGroupDef{
			{role: "main", diameterMM: 16, count: 4},
			{role: "stirrups", diameterMM: 10, spacingMM: 200},
		},
	},
	{
		name:        "C-400x400",
		elementType: "column",
		properties:  map[string]float64{"width_mm": 400, "depth_mm": 400},
		rebarGroups: []rebarGroupDef{
			{role: "main", diameterMM: 16, count: 8},
			{role: "ties", diameterMM: 10, spacingMM: 200},
		},
	},
	{
		name:        "S-120",
		elementType: "slab",
		properties:  map[string]float64{"thickness_mm": 120},
		rebarGroups: []rebarGroupDef{
			{role: "main", diameterMM: 12, spacingMM: 200},
			{role: "secondary", diameterMM: 10, spacingMM: 250},
		},
	},
	{
		name:        "F-1500",
		elementType: "foundation",
		properties:  map[string]float64{"length_mm": 1500, "width_mm": 1500, "depth_mm": 600},
		rebarGroups: []rebarGroupDef{
			{role: "main", diameterMM: 16, count: 10},
		},
	},
}

var seedInstances = []instanceDef{
	{templateName: "B-300x500", gridRefs: []string{"A", "B"}, levelRef: "2F"},
	{templateName: "B-300x500", gridRefs: []string{"B", "C"}, levelRef: "2F"},
	{templateName: "C-400x400", gridRefs: []string{"A"}, levelRef: "GF"},
	{templateName: "C-400x400", gridRefs: []string{"B"}, levelRef: "GF"},
	{templateName: "S-120", gridRefs: []string{"A", "B", "1", "2"}, levelRef: "2F"},
	{templateName: "F-1500", gridRefs: []string{"A"}, levelRef: "GF"},
}

var seedLaborRates = []laborRateDef{
	{"Construction Foreman", 121.88},
	{"Skilled Laborer", 93.75},
	{"Unskilled Laborer", 72.19},
	{"Heavy Equipment Operator", 109.38},
	{"Welder/Fabricator", 101.56},
}

var seedEquipmentRates = []equipmentRateDef{
	{"One-Bagger Concrete Mixer (4-6 cu.ft)", 192.47, 0},
	{"Concrete Vibrator", 91.19, 0},
	{"Dump Truck (12 yd³)", 1087.13, 10},
	{"Bar Cutter, Single Phase", 219.62, 0},
	{"Truck Mounted Crane (20-25 MT)", 2219.66, 0},
}

var seedMaterialPrices = []materialPriceDef{
	{"Portland Cement, Type 1 (40 kg)", "bags", 258.00, "cmpd", true},
	{"Washed Sand", "cu.m", 1365.00, "cmpd", true},
	{"Crushed Gravel, 3/4\"", "cu.m", 1590.00, "cmpd", true},
	{"Deformed Round Bars, Grade 40", "kg", 54.60, "canvass", true},
	{"G.I. Tie Wire #16", "kg", 92.00, "canvass", false},
	{"Marine Plywood 1/2\" x 4' x 8'", "sheets", 980.00, "canvass", false},
	{"Coco Lumber, Assorted", "bd.ft", 28.00, "canvass", false},
	{"Pre-painted Rib-Type Roofing Sheet", "sheets", 0, "missing", false},
}

var seedDUPAItems = []dupaDef{
	{
		payItemNo:   "900(1)c2",
		description: "Structural Concrete, Class A (28 days), Portland Cement",
		unit:        "cu.m",
		quantity:    9.99,
		labor: []map[string]any{
			{"description": "Construction Foreman", "persons": 1, "hours": 8, "hourly_rate": 121.88},
			{"description": "Skilled Laborer", "persons": 4, "hours": 8, "hourly_rate": 93.75},
			{"description": "Unskilled Laborer", "persons": 8, "hours": 8, "hourly_rate": 72.19},
		},
		equipment: []map[string]any{
			{"description": "One-Bagger Concrete Mixer (4-6 cu.ft)", "units": 1, "hours": 8, "hourly_rate": 192.47},
			{"description": "Concrete Vibrator", "units": 1, "hours": 8, "hourly_rate": 91.19},
		},
		materials: []map[string]any{
			{"description": "Portland Cement, Type 1 (40 kg)", "unit": "bags", "quantity": 9.0, "base_price": 258.00, "price_source": "cmpd", "include_hauling": true},
			{"description": "Washed Sand", "unit": "cu.m", "quantity": 0.5, "base_price": 1365.00, "price_source": "cmpd", "include_hauling": true},
			{"description": "Crushed Gravel, 3/4\"", "unit": "cu.m", "quantity": 1.0, "base_price": 1590.00, "price_source": "cmpd", "include_hauling": true},
		},
	},
	{
		payItemNo:   "902(1)a",
		description: "Reinforcing Steel, Deformed, Grade 40",
		unit:        "kg",
		quantity:    1212.6,
		labor: []map[string]any{
			{"description": "Construction Foreman", "persons": 1, "hours": 8, "hourly_rate": 121.88},
			{"description": "Skilled Laborer", "persons": 3, "hours": 8, "hourly_rate": 93.75},
		},
		equipment: []map[string]any{
			{"description": "Bar Cutter, Single Phase", "units": 1, "hours": 4, "hourly_rate": 219.62},
		},
		materials: []map[string]any{
			{"description": "Deformed Round Bars, Grade 40", "unit": "kg", "quantity": 1.05, "base_price": 54.60, "price_source": "canvass", "include_hauling": true},
			{"description": "G.I. Tie Wire #16", "unit": "kg", "quantity": 0.02, "base_price": 92.00, "price_source": "canvass", "include_hauling": false},
		},
	},
	{
		payItemNo:   "903(2)",
		description: "Formworks and Falseworks",
		unit:        "sq.m",
		quantity:    64.9,
		labor: []map[string]any{
			{"description": "Construction Foreman", "persons": 1, "hours": 8, "hourly_rate": 121.88},
			{"description": "Skilled Laborer", "persons": 4, "hours": 8, "hourly_rate": 93.75},
		},
		equipment: []map[string]any{},
		materials: []map[string]any{
			{"description": "Marine Plywood 1/2\" x 4' x 8'", "unit": "sheets", "quantity": 0.35, "base_price": 980.00, "price_source": "canvass", "include_hauling": false},
			{"description": "Coco Lumber, Assorted", "unit": "bd.ft", "quantity": 8.5, "base_price": 28.00, "price_source": "canvass", "include_hauling": false},
		},
	},
}

// Seed populates all collections with a realistic demo estimate: a
// two-storey reinforced concrete building with grids, levels, element
// templates, rate tables and DUPA items. It is safe to call on every
// startup because it returns early if any project records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if projects already exist ──────────────────
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty – inserting seed data …")

	// ── lookup helper collections ────────────────────────────────────
	gridsCol, err := app.FindCollectionByNameOrId("grid_lines")
	if err != nil {
		return fmt.Errorf("seed: could not find grid_lines collection: %w", err)
	}
	levelsCol, err := app.FindCollectionByNameOrId("levels")
	if err != nil {
		return fmt.Errorf("seed: could not find levels collection: %w", err)
	}
	templatesCol, err := app.FindCollectionByNameOrId("element_templates")
	if err != nil {
		return fmt.Errorf("seed: could not find element_templates collection: %w", err)
	}
	instancesCol, err := app.FindCollectionByNameOrId("element_instances")
	if err != nil {
		return fmt.Errorf("seed: could not find element_instances collection: %w", err)
	}
	laborCol, err := app.FindCollectionByNameOrId("labor_rates")
	if err != nil {
		return fmt.Errorf("seed: could not find labor_rates collection: %w", err)
	}
	equipmentCol, err := app.FindCollectionByNameOrId("equipment_rates")
	if err != nil {
		return fmt.Errorf("seed: could not find equipment_rates collection: %w", err)
	}
	materialsCol, err := app.FindCollectionByNameOrId("material_prices")
	if err != nil {
		return fmt.Errorf("seed: could not find material_prices collection: %w", err)
	}
	dupaCol, err := app.FindCollectionByNameOrId("dupa_items")
	if err != nil {
		return fmt.Errorf("seed: could not find dupa_items collection: %w", err)
	}
	settingsCol, err := app.FindCollectionByNameOrId("estimate_settings")
	if err != nil {
		return fmt.Errorf("seed: could not find estimate_settings collection: %w", err)
	}

	// ── project ──────────────────────────────────────────────────────
	project := core.NewRecord(projectsCol)
	project.Set("name", "Two-Storey Barangay Multi-Purpose Hall")
	project.Set("location", "Brgy. San Isidro, Tagum City, Davao del Norte")
	project.Set("status", "active")
	if err := app.Save(project); err != nil {
		return fmt.Errorf("seed: failed to create project: %w", err)
	}

	// ── grids & levels ───────────────────────────────────────────────
	for _, g := range seedGrids {
		record := core.NewRecord(gridsCol)
		record.Set("project", project.Id)
		record.Set("axis", g.axis)
		record.Set("label", g.label)
		record.Set("offset_m", g.offsetM)
		record.Set("sort_order", g.sortOrder)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: failed to create grid line %q: %w", g.label, err)
		}
	}
	for _, l := range seedLevels {
		record := core.NewRecord(levelsCol)
		record.Set("project", project.Id)
		record.Set("label", l.label)
		record.Set("elevation_m", l.elevationM)
		record.Set("sort_order", l.sortOrder)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: failed to create level %q: %w", l.label, err)
		}
	}

	// ── element templates & instances ────────────────────────────────
	templateIDs := make(map[string]string, len(seedTemplates))
	for _, tpl := range seedTemplates {
		rebar := make([]map[string]any, 0, len(tpl.rebarGroups))
		for _, rg := range tpl.rebarGroups {
			rebar = append(rebar, map[string]any{
				"role":        rg.role,
				"diameter_mm": rg.diameterMM,
				"count":       rg.count,
				"spacing_mm":  rg.spacingMM,
			})
		}

		record := core.NewRecord(templatesCol)
		record.Set("project", project.Id)
		record.Set("name", tpl.name)
		record.Set("element_type", tpl.elementType)
		record.Set("properties", tpl.properties)
		record.Set("rebar_groups", rebar)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: failed to create template %q: %w", tpl.name, err)
		}
		templateIDs[tpl.name] = record.Id
	}

	for i, inst := range seedInstances {
		record := core.NewRecord(instancesCol)
		record.Set("project", project.Id)
		record.Set("template", templateIDs[inst.templateName])
		record.Set("grid_refs", inst.gridRefs)
		record.Set("level_ref", inst.levelRef)
		record.Set("end_level_ref", inst.endLevelRef)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: failed to create instance %d (%s): %w", i, inst.templateName, err)
		}
	}

	// ── rate tables ──────────────────────────────────────────────────
	for _, r := range seedLaborRates {
		record := core.NewRecord(laborCol)
		record.Set("description", r.description)
		record.Set("hourly_rate", r.hourlyRate)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: failed to create labor rate %q: %w", r.description, err)
		}
	}
	for _, r := range seedEquipmentRates {
		record := core.NewRecord(equipmentCol)
		record.Set("description", r.description)
		record.Set("hourly_rate", r.hourlyRate)
		record.Set("capacity_m3", r.capacityM3)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: failed to create equipment rate %q: %w", r.description, err)
		}
	}
	for _, m := range seedMaterialPrices {
		record := core.NewRecord(materialsCol)
		record.Set("description", m.description)
		record.Set("unit", m.unit)
		record.Set("base_price", m.basePrice)
		record.Set("price_source", m.priceSource)
		record.Set("include_hauling", m.includeHauling)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: failed to create material price %q: %w", m.description, err)
		}
	}

	// ── DUPA items ───────────────────────────────────────────────────
	for _, d := range seedDUPAItems {
		record := core.NewRecord(dupaCol)
		record.Set("project", project.Id)
		record.Set("pay_item_no", d.payItemNo)
		record.Set("description", d.description)
		record.Set("unit", d.unit)
		record.Set("quantity", d.quantity)
		record.Set("labor", d.labor)
		record.Set("equipment", d.equipment)
		record.Set("materials", d.materials)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: failed to create DUPA item %q: %w", d.payItemNo, err)
		}
	}

	// ── estimate settings (DPWH defaults) ────────────────────────────
	markups := services.DefaultMarkups()
	takeoff := services.DefaultTakeoffSettings()

	settings := core.NewRecord(settingsCol)
	settings.Set("project", project.Id)
	settings.Set("ocm_percent", markups.OCMPercent)
	settings.Set("cp_percent", markups.CPPercent)
	settings.Set("vat_percent", markups.VATPercent)
	settings.Set("minor_tools_percent", markups.MinorToolsPercent)
	settings.Set("minor_tools_enabled", markups.MinorToolsEnabled)
	settings.Set("waste_concrete", takeoff.WasteConcrete)
	settings.Set("waste_rebar", takeoff.WasteRebar)
	settings.Set("round_decimals", takeoff.RoundDecimals)
	settings.Set("default_lap_m", takeoff.DefaultLapM)
	settings.Set("min_lap_m", takeoff.MinLapM)
	settings.Set("max_lap_m", takeoff.MaxLapM)
	settings.Set("free_distance_km", 1.0)
	settings.Set("haul_segments", []map[string]any{
		{"distance_km": 2, "loaded_speed_kph": 30, "unloaded_speed_kph": 40},
		{"distance_km": 3, "loaded_speed_kph": 20, "unloaded_speed_kph": 30},
	})
	settings.Set("haul_equipment_rate", 1087.13)
	settings.Set("haul_equipment_capacity_m3", 10)
	if err := app.Save(settings); err != nil {
		return fmt.Errorf("seed: failed to create estimate settings: %w", err)
	}

	log.Printf("seed: created demo project %q with %d templates, %d instances and %d DUPA items.\n",
		project.GetString("name"), len(seedTemplates), len(seedInstances), len(seedDUPAItems))
	return nil
}
