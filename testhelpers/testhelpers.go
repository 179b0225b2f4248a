// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("location", "Brgy. San Isidro, Tagum City")
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestGridLine creates one grid line for a project and returns it.
func CreateTestGridLine(t *testing.T, app *pocketbase.PocketBase, projectID, axis, label string, offsetM float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("grid_lines")
	if err != nil {
		t.Fatalf("failed to find grid_lines collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("axis", axis)
	record.Set("label", label)
	record.Set("offset_m", offsetM)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test grid line: %v", err)
	}

	return record
}

// CreateTestLevel creates one level for a project and returns it.
func CreateTestLevel(t *testing.T, app *pocketbase.PocketBase, projectID, label string, elevationM float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("levels")
	if err != nil {
		t.Fatalf("failed to find levels collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("label", label)
	record.Set("elevation_m", elevationM)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test level: %v", err)
	}

	return record
}

// CreateTestGridSystem seeds a small two-axis grid (A/B at 0/6 m, 1/2 at
// 0/8 m) and three levels (GF/2F/RF) for calculator tests.
func CreateTestGridSystem(t *testing.T, app *pocketbase.PocketBase, projectID string) {
	t.Helper()

	CreateTestGridLine(t, app, projectID, "x", "A", 0)
	CreateTestGridLine(t, app, projectID, "x", "B", 6)
	CreateTestGridLine(t, app, projectID, "y", "1", 0)
	CreateTestGridLine(t, app, projectID, "y", "2", 8)
	CreateTestLevel(t, app, projectID, "GF", 0)
	CreateTestLevel(t, app, projectID, "2F", 3.5)
	CreateTestLevel(t, app, projectID, "RF", 7.0)
}

// CreateTestTemplate creates an element template with the given dimension
// properties (millimetres) and returns it.
func CreateTestTemplate(t *testing.T, app *pocketbase.PocketBase, projectID, name, elementType string, properties map[string]float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("element_templates")
	if err != nil {
		t.Fatalf("failed to find element_templates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("name", name)
	record.Set("element_type", elementType)
	record.Set("properties", properties)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test template: %v", err)
	}

	return record
}

// CreateTestInstance creates an element instance placed on the given grid
// references and level.
func CreateTestInstance(t *testing.T, app *pocketbase.PocketBase, projectID, templateID string, gridRefs []string, levelRef string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("element_instances")
	if err != nil {
		t.Fatalf("failed to find element_instances collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("template", templateID)
	record.Set("grid_refs", gridRefs)
	record.Set("level_ref", levelRef)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test instance: %v", err)
	}

	return record
}

// CreateTestDUPAItem creates a DUPA item with one labor line so cost
// rollups produce non-zero figures.
func CreateTestDUPAItem(t *testing.T, app *pocketbase.PocketBase, projectID, payItemNo, description string, quantity float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("dupa_items")
	if err != nil {
		t.Fatalf("failed to find dupa_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("pay_item_no", payItemNo)
	record.Set("description", description)
	record.Set("unit", "cu.m")
	record.Set("quantity", quantity)
	record.Set("labor", []map[string]any{
		{"description": "Skilled Laborer", "persons": 2, "hours": 8, "hourly_rate": 93.75},
	})
	record.Set("materials", []map[string]any{
		{"description": "Portland Cement", "unit": "bags", "quantity": 9.0, "base_price": 258.00, "price_source": "cmpd", "include_hauling": true},
	})

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test DUPA item: %v", err)
	}

	return record
}

// CreateTestEstimateSettings creates an estimate_settings record for a
// project with the given markup percentages.
func CreateTestEstimateSettings(t *testing.T, app *pocketbase.PocketBase, projectID string, ocm, cp, vat float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimate_settings")
	if err != nil {
		t.Fatalf("failed to find estimate_settings collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("ocm_percent", ocm)
	record.Set("cp_percent", cp)
	record.Set("vat_percent", vat)
	record.Set("minor_tools_percent", 10)
	record.Set("minor_tools_enabled", true)
	record.Set("waste_concrete", 0.05)
	record.Set("waste_rebar", 0.075)
	record.Set("round_decimals", 2)
	record.Set("default_lap_m", 0.45)
	record.Set("min_lap_m", 0.30)
	record.Set("max_lap_m", 0.80)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimate settings: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
