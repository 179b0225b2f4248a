package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures all collections used by the
// estimating application: projects, grid/level geometry, element templates
// and instances, roof and truss designs, rate tables, DUPA items and the
// derived takeoff/cost records.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "location", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"active", "completed", "on_hold"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "grid_lines", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "axis",
			Required:  true,
			Values:    []string{"x", "y"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "label", Required: true})
		c.Fields.Add(&core.NumberField{Name: "offset_m", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
	})

	ensureCollection(app, "levels", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "label", Required: true})
		c.Fields.Add(&core.NumberField{Name: "elevation_m", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
	})

	elementTemplates := ensureCollection(app, "element_templates", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "element_type",
			Required:  true,
			Values:    []string{"beam", "column", "slab", "foundation"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.JSONField{Name: "properties"})
		c.Fields.Add(&core.JSONField{Name: "rebar_groups"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "element_instances", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "template",
			Required:      true,
			CollectionId:  elementTemplates.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.JSONField{Name: "grid_refs"})
		c.Fields.Add(&core.TextField{Name: "level_ref", Required: false})
		c.Fields.Add(&core.TextField{Name: "end_level_ref", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "takeoff_lines", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "line_id", Required: true})
		c.Fields.Add(&core.TextField{Name: "source_element", Required: false})
		c.Fields.Add(&core.TextField{Name: "trade", Required: false})
		c.Fields.Add(&core.TextField{Name: "resource_key", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.TextField{Name: "formula", Required: false})
		c.Fields.Add(&core.JSONField{Name: "inputs"})
		c.Fields.Add(&core.JSONField{Name: "assumptions"})
		c.Fields.Add(&core.JSONField{Name: "tags"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "roof_types", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "area_basis",
			Required:  true,
			Values:    []string{"slopeArea", "planArea"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "lap_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "waste_percent", Required: false})
	})

	ensureCollection(app, "roof_designs", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "style",
			Required:  true,
			Values:    []string{"gable", "hip", "flat", "gambrel"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "length_m", Required: true})
		c.Fields.Add(&core.NumberField{Name: "width_m", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "pitch_mode",
			Required:  true,
			Values:    []string{"ratio", "degrees", "rise_run"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "pitch_value", Required: false})
		c.Fields.Add(&core.NumberField{Name: "pitch_rise", Required: false})
		c.Fields.Add(&core.NumberField{Name: "pitch_run", Required: false})
		c.Fields.Add(&core.NumberField{Name: "gambrel_lower_factor", Required: false})
		c.Fields.Add(&core.JSONField{Name: "result"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "truss_designs", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "truss_type",
			Required:  true,
			Values:    []string{"howe", "fink", "kingpost"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "span_m", Required: true})
		c.Fields.Add(&core.NumberField{Name: "rise_m", Required: true})
		c.Fields.Add(&core.NumberField{Name: "overhang_m", Required: false})
		c.Fields.Add(&core.NumberField{Name: "spacing_m", Required: false})
		c.Fields.Add(&core.NumberField{Name: "top_chord_kg_m", Required: false})
		c.Fields.Add(&core.NumberField{Name: "bottom_chord_kg_m", Required: false})
		c.Fields.Add(&core.NumberField{Name: "web_kg_m", Required: false})
		c.Fields.Add(&core.NumberField{Name: "vertical_web_count", Required: false})
		c.Fields.Add(&core.NumberField{Name: "connector_plate_kg", Required: false})
		c.Fields.Add(&core.JSONField{Name: "result"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "labor_rates", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.NumberField{Name: "hourly_rate", Required: true})
	})

	ensureCollection(app, "equipment_rates", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.NumberField{Name: "hourly_rate", Required: true})
		c.Fields.Add(&core.NumberField{Name: "capacity_m3", Required: false})
	})

	ensureCollection(app, "material_prices", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "base_price", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "price_source",
			Required:  false,
			Values:    []string{"canvass", "cmpd", "missing"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.BoolField{Name: "include_hauling"})
	})

	dupaItems := ensureCollection(app, "dupa_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "pay_item_no", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.JSONField{Name: "labor"})
		c.Fields.Add(&core.JSONField{Name: "equipment"})
		c.Fields.Add(&core.JSONField{Name: "materials"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "cost_breakdowns", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "dupa_item",
			Required:      true,
			CollectionId:  dupaItems.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "pay_item_no", Required: true})
		c.Fields.Add(&core.NumberField{Name: "direct_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "ocm_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "cp_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "vat_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_unit_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_amount", Required: false})
		c.Fields.Add(&core.JSONField{Name: "breakdown"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "estimate_settings", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "ocm_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "cp_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "vat_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "minor_tools_percent", Required: false})
		c.Fields.Add(&core.BoolField{Name: "minor_tools_enabled"})
		c.Fields.Add(&core.NumberField{Name: "waste_concrete", Required: false})
		c.Fields.Add(&core.NumberField{Name: "waste_rebar", Required: false})
		c.Fields.Add(&core.NumberField{Name: "round_decimals", Required: false})
		c.Fields.Add(&core.NumberField{Name: "default_lap_m", Required: false})
		c.Fields.Add(&core.NumberField{Name: "min_lap_m", Required: false})
		c.Fields.Add(&core.NumberField{Name: "max_lap_m", Required: false})
		c.Fields.Add(&core.NumberField{Name: "free_distance_km", Required: false})
		c.Fields.Add(&core.JSONField{Name: "haul_segments"})
		c.Fields.Add(&core.NumberField{Name: "haul_equipment_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "haul_equipment_capacity_m3", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
