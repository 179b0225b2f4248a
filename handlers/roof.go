package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
	"costestimation/templates"
)

var pitchModeOptions = []string{
	string(services.PitchRatio),
	string(services.PitchDegrees),
	string(services.PitchRiseRun),
}

// defaultRoofForm returns the designer form with a fresh gable at the
// customary 0.3 ratio.
func defaultRoofForm(projectID string) templates.RoofDesignData {
	return templates.RoofDesignData{
		ProjectID:    projectID,
		StyleOptions: services.RoofStyleOptions,
		Style:        string(services.RoofGable),
		PitchModes:   pitchModeOptions,
		PitchMode:    string(services.PitchRatio),
		PitchValue:   0.3,
		Errors:       make(map[string]string),
	}
}

// roofResultView folds a generation result into the form view.
func roofResultView(data *templates.RoofDesignData, gen services.RoofGeneration) {
	data.HasResult = true
	for _, p := range gen.Planes {
		data.Planes = append(data.Planes, templates.RoofPlaneRow{
			Name:         p.Name,
			PlanAreaM2:   p.PlanAreaM2,
			SlopeFactor:  p.SlopeFactor,
			SlopeAreaM2:  p.SlopeAreaM2,
			RidgeLengthM: p.RidgeLengthM,
			EaveLengthM:  p.EaveLengthM,
			HipLengthM:   p.HipLengthM,
		})
	}
	data.TotalPlanAreaM2 = gen.Summary.TotalPlanAreaM2
	data.TotalSlopeAreaM2 = gen.Summary.TotalSlopeAreaM2
	data.RidgeLengthM = gen.Summary.RidgeLengthM
	data.EaveLengthM = gen.Summary.EaveLengthM
	data.HipLengthM = gen.Summary.HipLengthM
}

// projectRoofType returns the project's first stored roof type, or a
// slope-area covering with no allowances when none is configured.
func projectRoofType(app *pocketbase.PocketBase, projectID string) services.RoofType {
	records, err := findProjectRecords(app, "roof_types", projectID, "created")
	if err != nil || len(records) == 0 {
		return services.RoofType{ID: "covering", Name: "Covering", AreaBasis: "slopeArea"}
	}
	rec := records[0]
	return services.RoofType{
		ID:                  rec.Id,
		Name:                rec.GetString("name"),
		AreaBasis:           rec.GetString("area_basis"),
		LapAllowancePercent: rec.GetFloat("lap_percent"),
		WastePercent:        rec.GetFloat("waste_percent"),
	}
}

func HandleRoofDesigner(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		data := defaultRoofForm(projectID)

		// Prefill from the latest stored design, re-running the generator
		// rather than trusting the stored result blob.
		if records, err := findProjectRecords(app, "roof_designs", projectID, "-created"); err == nil && len(records) > 0 {
			rec := records[0]
			data.Style = rec.GetString("style")
			data.LengthM = rec.GetFloat("length_m")
			data.WidthM = rec.GetFloat("width_m")
			data.PitchMode = rec.GetString("pitch_mode")
			data.PitchValue = rec.GetFloat("pitch_value")
			data.PitchRise = rec.GetFloat("pitch_rise")
			data.PitchRun = rec.GetFloat("pitch_run")

			gen, err := services.GenerateRoof(roofConfigFromRecord(rec))
			if err == nil {
				roofResultView(&data, gen)
			}
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.RoofDesignContent(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.RoofDesignPage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

func roofConfigFromRecord(rec *core.Record) services.RoofGenConfig {
	return services.RoofGenConfig{
		LengthM: rec.GetFloat("length_m"),
		WidthM:  rec.GetFloat("width_m"),
		Style:   services.RoofStyle(rec.GetString("style")),
		Pitch: services.RoofPitch{
			Mode:  services.PitchMode(rec.GetString("pitch_mode")),
			Value: rec.GetFloat("pitch_value"),
			Rise:  rec.GetFloat("pitch_rise"),
			Run:   rec.GetFloat("pitch_run"),
		},
		GambrelLowerFactor: rec.GetFloat("gambrel_lower_factor"),
	}
}

// HandleRoofGenerate runs the parametric generator, stores the design and
// renders the result panel.
func HandleRoofGenerate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing project ID")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		cfg := services.RoofGenConfig{
			LengthM: formFloat(e, "length_m"),
			WidthM:  formFloat(e, "width_m"),
			Style:   services.RoofStyle(e.Request.FormValue("style")),
			Pitch: services.RoofPitch{
				Mode:  services.PitchMode(e.Request.FormValue("pitch_mode")),
				Value: formFloat(e, "pitch_value"),
				Rise:  formFloat(e, "pitch_rise"),
				Run:   formFloat(e, "pitch_run"),
			},
		}

		data := defaultRoofForm(projectID)
		data.Style = string(cfg.Style)
		data.LengthM = cfg.LengthM
		data.WidthM = cfg.WidthM
		data.PitchMode = string(cfg.Pitch.Mode)
		data.PitchValue = cfg.Pitch.Value
		data.PitchRise = cfg.Pitch.Rise
		data.PitchRun = cfg.Pitch.Run

		gen, err := services.GenerateRoof(cfg)
		if err != nil {
			log.Printf("roof: generation failed for %s: %v", projectID, err)
			SetToast(e, "error", err.Error())
			data.Errors["length_m"] = err.Error()
			return templates.RoofDesignContent(data).Render(e.Request.Context(), e.Response)
		}

		roofResultView(&data, gen)

		// Covering quantity from the whole-roof areas
		roofType := projectRoofType(app, projectID)
		settings, _, _ := loadTakeoffSettings(app, projectID)
		covering := services.CoveringTakeoff(
			services.RoofPlane{ID: "roof_" + projectID, RoofType: roofType.ID},
			services.RoofAreas{
				PlanAreaM2:  gen.Summary.TotalPlanAreaM2,
				SlopeAreaM2: gen.Summary.TotalSlopeAreaM2,
			},
			roofType,
			settings,
		)
		data.CoveringQty = covering.Quantity
		data.CoveringUnit = covering.Unit

		if err := storeRoofDesign(app, projectID, cfg, gen); err != nil {
			log.Printf("roof: failed to store design for %s: %v", projectID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to store roof design")
		}

		SetToast(e, "success", "Roof generated")
		return templates.RoofDesignContent(data).Render(e.Request.Context(), e.Response)
	}
}

func storeRoofDesign(app *pocketbase.PocketBase, projectID string, cfg services.RoofGenConfig, gen services.RoofGeneration) error {
	col, err := app.FindCollectionByNameOrId("roof_designs")
	if err != nil {
		return err
	}

	rec := core.NewRecord(col)
	rec.Set("project", projectID)
	rec.Set("style", string(cfg.Style))
	rec.Set("length_m", cfg.LengthM)
	rec.Set("width_m", cfg.WidthM)
	rec.Set("pitch_mode", string(cfg.Pitch.Mode))
	rec.Set("pitch_value", cfg.Pitch.Value)
	rec.Set("pitch_rise", cfg.Pitch.Rise)
	rec.Set("pitch_run", cfg.Pitch.Run)
	rec.Set("gambrel_lower_factor", cfg.GambrelLowerFactor)
	rec.Set("result", gen)
	return app.Save(rec)
}
