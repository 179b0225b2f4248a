package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
	"costestimation/templates"
)

// formFloat parses a form value as a float. Blank and malformed values
// yield zero.
func formFloat(e *core.RequestEvent, name string) float64 {
	v := strings.TrimSpace(e.Request.FormValue(name))
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// findEstimateSettings returns the estimate_settings record for a project,
// or nil when none exists yet.
func findEstimateSettings(app *pocketbase.PocketBase, projectID string) *core.Record {
	col, err := app.FindCollectionByNameOrId("estimate_settings")
	if err != nil {
		return nil
	}
	records, err := app.FindRecordsByFilter(col, "project = {:pid}", "", 1, 0, map[string]any{"pid": projectID})
	if err != nil || len(records) == 0 {
		return nil
	}
	return records[0]
}

// settingsFormData builds the form view from a settings record, falling
// back to the package defaults when the record is nil.
func settingsFormData(projectID, projectName string, rec *core.Record) templates.ProjectSettingsData {
	markups := services.DefaultMarkups()
	takeoff := services.DefaultTakeoffSettings()

	data := templates.ProjectSettingsData{
		ProjectID:            projectID,
		ProjectName:          projectName,
		OCMPercent:           markups.OCMPercent,
		CPPercent:            markups.CPPercent,
		VATPercent:           markups.VATPercent,
		MinorToolsPercent:    markups.MinorToolsPercent,
		MinorToolsEnabled:    markups.MinorToolsEnabled,
		WasteConcretePercent: takeoff.WasteConcrete * 100,
		WasteRebarPercent:    takeoff.WasteRebar * 100,
		RoundDecimals:        takeoff.RoundDecimals,
		DefaultLapM:          takeoff.DefaultLapM,
		MinLapM:              takeoff.MinLapM,
		MaxLapM:              takeoff.MaxLapM,
		Errors:               make(map[string]string),
	}
	if rec == nil {
		return data
	}

	data.OCMPercent = rec.GetFloat("ocm_percent")
	data.CPPercent = rec.GetFloat("cp_percent")
	data.VATPercent = rec.GetFloat("vat_percent")
	data.MinorToolsPercent = rec.GetFloat("minor_tools_percent")
	data.MinorToolsEnabled = rec.GetBool("minor_tools_enabled")
	data.WasteConcretePercent = rec.GetFloat("waste_concrete") * 100
	data.WasteRebarPercent = rec.GetFloat("waste_rebar") * 100
	data.RoundDecimals = int(rec.GetFloat("round_decimals"))
	data.DefaultLapM = rec.GetFloat("default_lap_m")
	if v := rec.GetFloat("min_lap_m"); v > 0 {
		data.MinLapM = v
	}
	if v := rec.GetFloat("max_lap_m"); v > 0 {
		data.MaxLapM = v
	}
	data.FreeDistanceKM = rec.GetFloat("free_distance_km")
	data.HaulEquipmentRate = rec.GetFloat("haul_equipment_rate")
	data.HaulCapacityM3 = rec.GetFloat("haul_equipment_capacity_m3")

	var segments []map[string]float64
	if err := rec.UnmarshalJSONField("haul_segments", &segments); err == nil {
		for _, seg := range segments {
			data.Segments = append(data.Segments, templates.HaulSegmentRow{
				DistanceKM:       seg["distance_km"],
				LoadedSpeedKPH:   seg["loaded_speed_kph"],
				UnloadedSpeedKPH: seg["unloaded_speed_kph"],
			})
		}
	}
	return data
}

func HandleProjectSettings(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing project ID")
		}

		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_settings: could not find project %s: %v", projectID, err)
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		data := settingsFormData(projectID, project.GetString("name"), findEstimateSettings(app, projectID))

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ProjectSettingsContent(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.ProjectSettingsPage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

func HandleProjectSettingsSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing project ID")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			log.Printf("project_settings_save: could not find project %s: %v", projectID, err)
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		record := findEstimateSettings(app, projectID)
		if record == nil {
			col, err := app.FindCollectionByNameOrId("estimate_settings")
			if err != nil {
				log.Printf("project_settings_save: could not find estimate_settings collection: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			record = core.NewRecord(col)
			record.Set("project", projectID)
		}

		record.Set("ocm_percent", formFloat(e, "ocm_percent"))
		record.Set("cp_percent", formFloat(e, "cp_percent"))
		record.Set("vat_percent", formFloat(e, "vat_percent"))
		record.Set("minor_tools_percent", formFloat(e, "minor_tools_percent"))
		record.Set("minor_tools_enabled", e.Request.FormValue("minor_tools_enabled") == "on" ||
			e.Request.FormValue("minor_tools_enabled") == "true")
		record.Set("waste_concrete", formFloat(e, "waste_concrete_percent")/100)
		record.Set("waste_rebar", formFloat(e, "waste_rebar_percent")/100)
		record.Set("round_decimals", formFloat(e, "round_decimals"))
		record.Set("default_lap_m", formFloat(e, "default_lap_m"))
		record.Set("min_lap_m", formFloat(e, "min_lap_m"))
		record.Set("max_lap_m", formFloat(e, "max_lap_m"))
		record.Set("free_distance_km", formFloat(e, "free_distance_km"))
		record.Set("haul_equipment_rate", formFloat(e, "haul_equipment_rate"))
		record.Set("haul_equipment_capacity_m3", formFloat(e, "haul_capacity_m3"))

		// Haul segments arrive as indexed rows; a row with zero distance
		// ends the route.
		var segments []map[string]float64
		for i := 0; ; i++ {
			if e.Request.FormValue(fmt.Sprintf("segment_distance_%d", i)) == "" {
				break
			}
			distance := formFloat(e, fmt.Sprintf("segment_distance_%d", i))
			if distance <= 0 {
				break
			}
			segments = append(segments, map[string]float64{
				"distance_km":        distance,
				"loaded_speed_kph":   formFloat(e, fmt.Sprintf("segment_loaded_%d", i)),
				"unloaded_speed_kph": formFloat(e, fmt.Sprintf("segment_unloaded_%d", i)),
			})
		}
		record.Set("haul_segments", segments)

		if err := app.Save(record); err != nil {
			log.Printf("project_settings_save: failed to save settings for %s: %v", projectID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Settings saved")

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", fmt.Sprintf("/projects/%s/settings", projectID))
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, fmt.Sprintf("/projects/%s/settings", projectID))
	}
}
