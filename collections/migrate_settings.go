package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// MigrateDefaultEstimateSettings creates a default estimate_settings record
// for every project that is missing one, using the DPWH template
// percentages and the engine's takeoff defaults. Safe to call on every
// startup.
func MigrateDefaultEstimateSettings(app *pocketbase.PocketBase) error {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("migrate_settings: could not find projects collection: %w", err)
	}

	settingsCol, err := app.FindCollectionByNameOrId("estimate_settings")
	if err != nil {
		return fmt.Errorf("migrate_settings: could not find estimate_settings collection: %w", err)
	}

	projects, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("migrate_settings: could not query projects: %w", err)
	}

	markups := services.DefaultMarkups()
	takeoff := services.DefaultTakeoffSettings()

	for _, project := range projects {
		existing, _ := app.FindRecordsByFilter(
			settingsCol,
			"project = {:projectId}",
			"",
			1, 0,
			map[string]any{"projectId": project.Id},
		)
		if len(existing) > 0 {
			continue
		}

		record := core.NewRecord(settingsCol)
		record.Set("project", project.Id)
		record.Set("ocm_percent", markups.OCMPercent)
		record.Set("cp_percent", markups.CPPercent)
		record.Set("vat_percent", markups.VATPercent)
		record.Set("minor_tools_percent", markups.MinorToolsPercent)
		record.Set("minor_tools_enabled", markups.MinorToolsEnabled)
		record.Set("waste_concrete", takeoff.WasteConcrete)
		record.Set("waste_rebar", takeoff.WasteRebar)
		record.Set("round_decimals", takeoff.RoundDecimals)
		record.Set("default_lap_m", takeoff.DefaultLapM)
		record.Set("min_lap_m", takeoff.MinLapM)
		record.Set("max_lap_m", takeoff.MaxLapM)

		if err := app.Save(record); err != nil {
			log.Printf("migrate_settings: failed to create settings for project %s: %v\n",
				project.Id, err)
			continue
		}
	}

	return nil
}
