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

// Framing defaults for the derived purlin/bracing/sheeting quantities:
// C-purlins at 600 mm, X-bracing every 3 m, standard long-span sheets.
const (
	defaultPurlinSpacingM   = 0.6
	defaultPurlinKgPerM     = 3.33
	defaultBracingIntervalM = 3.0
	defaultBraceKgPerM      = 2.27
	defaultSheetLengthM     = 2.44
	defaultSheetWidthM      = 1.07
)

// defaultTrussForm returns the designer form with a typical Howe truss.
func defaultTrussForm(projectID string) templates.TrussDesignData {
	return templates.TrussDesignData{
		ProjectID:   projectID,
		TypeOptions: services.TrussTypeOptions,
		Type:        string(services.TrussHowe),
		SpanM:       8,
		RiseM:       1.2,
		OverhangM:   0.5,
		SpacingM:    0.6,
		TopChordKg:  7.51,
		BottomKg:    7.51,
		WebKg:       4.48,
		Errors:      make(map[string]string),
	}
}

func trussResultView(data *templates.TrussDesignData, result services.TrussResult) {
	data.HasResult = true
	for _, m := range result.Members {
		data.Members = append(data.Members, templates.TrussMemberRow{
			Name:          m.Name,
			Role:          m.Role,
			LengthMM:      m.LengthMM,
			Quantity:      m.Quantity,
			UnitWeightKgM: m.UnitWeightKgM,
			WeightKg:      m.WeightKg,
		})
	}
	data.PanelCount = result.Summary.PanelCount
	data.PlateCount = result.Plates.Count
	data.PlateWeightKg = result.Summary.PlateWeightKg
	data.MemberWeightKg = result.Summary.MemberWeightKg
	data.TotalWeightKg = result.Summary.TotalWeightKg
	data.Warnings = result.Validation.Warnings
}

func HandleTrussDesigner(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		data := defaultTrussForm(projectID)

		if records, err := findProjectRecords(app, "truss_designs", projectID, "-created"); err == nil && len(records) > 0 {
			rec := records[0]
			data.Type = rec.GetString("truss_type")
			data.SpanM = rec.GetFloat("span_m")
			data.RiseM = rec.GetFloat("rise_m")
			data.OverhangM = rec.GetFloat("overhang_m")
			data.SpacingM = rec.GetFloat("spacing_m")
			data.TopChordKg = rec.GetFloat("top_chord_kg_m")
			data.BottomKg = rec.GetFloat("bottom_chord_kg_m")
			data.WebKg = rec.GetFloat("web_kg_m")

			result, err := services.GenerateTruss(trussConfigFromRecord(rec))
			if err == nil {
				trussResultView(&data, result)
				data.Framing = buildFramingSummary(app, projectID, rec)
			}
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.TrussDesignContent(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.TrussDesignPage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

func trussConfigFromRecord(rec *core.Record) services.TrussConfig {
	return services.TrussConfig{
		Type:              services.TrussType(rec.GetString("truss_type")),
		SpanM:             rec.GetFloat("span_m"),
		RiseM:             rec.GetFloat("rise_m"),
		OverhangM:         rec.GetFloat("overhang_m"),
		SpacingM:          rec.GetFloat("spacing_m"),
		TopChordKgPerM:    rec.GetFloat("top_chord_kg_m"),
		BottomChordKgPerM: rec.GetFloat("bottom_chord_kg_m"),
		WebKgPerM:         rec.GetFloat("web_kg_m"),
		VerticalWebCount:  int(rec.GetFloat("vertical_web_count")),
		ConnectorPlateKg:  rec.GetFloat("connector_plate_kg"),
	}
}

// buildFramingSummary derives the whole-roof framing from the truss
// design and the latest roof design's footprint. Without a roof design
// there is no building length, so no framing is computed.
func buildFramingSummary(app *pocketbase.PocketBase, projectID string, trussRec *core.Record) *templates.FramingSummary {
	roofs, err := findProjectRecords(app, "roof_designs", projectID, "-created")
	if err != nil || len(roofs) == 0 {
		return nil
	}
	roof := roofs[0]

	span := trussRec.GetFloat("span_m")
	rise := trussRec.GetFloat("rise_m")
	pitch := 0.0
	if span > 0 {
		pitch = rise / (span / 2)
	}

	result, err := services.CalculateFraming(services.FramingConfig{
		BuildingLengthM:  roof.GetFloat("length_m"),
		BuildingWidthM:   span,
		PitchRatio:       pitch,
		TrussSpacingM:    trussRec.GetFloat("spacing_m"),
		TrussRiseM:       rise,
		PurlinSpacingM:   defaultPurlinSpacingM,
		PurlinKgPerM:     defaultPurlinKgPerM,
		BracingIntervalM: defaultBracingIntervalM,
		BracingStyle:     services.BracingX,
		BraceKgPerM:      defaultBraceKgPerM,
		SheetLengthM:     defaultSheetLengthM,
		SheetWidthM:      defaultSheetWidthM,
	})
	if err != nil {
		log.Printf("truss: framing calculation failed for %s: %v", projectID, err)
		return nil
	}

	return &templates.FramingSummary{
		TrussCount:         result.TrussCount,
		PurlinTotalLengthM: result.PurlinTotalLengthM,
		PurlinWeightKg:     result.PurlinWeightKg,
		BraceDiagonalCount: result.BraceDiagonalCount,
		BraceWeightKg:      result.BraceWeightKg,
		RoofAreaM2:         result.RoofAreaM2,
		SheetCount:         result.SheetCount,
		ScrewCount:         result.ScrewCount,
	}
}

// HandleTrussDesign runs the truss generator, stores the design and
// renders the result panel.
func HandleTrussDesign(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
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

		cfg := services.TrussConfig{
			Type:              services.TrussType(e.Request.FormValue("truss_type")),
			SpanM:             formFloat(e, "span_m"),
			RiseM:             formFloat(e, "rise_m"),
			OverhangM:         formFloat(e, "overhang_m"),
			SpacingM:          formFloat(e, "spacing_m"),
			TopChordKgPerM:    formFloat(e, "top_chord_kg_m"),
			BottomChordKgPerM: formFloat(e, "bottom_chord_kg_m"),
			WebKgPerM:         formFloat(e, "web_kg_m"),
		}

		data := defaultTrussForm(projectID)
		data.Type = string(cfg.Type)
		data.SpanM = cfg.SpanM
		data.RiseM = cfg.RiseM
		data.OverhangM = cfg.OverhangM
		data.SpacingM = cfg.SpacingM
		data.TopChordKg = cfg.TopChordKgPerM
		data.BottomKg = cfg.BottomChordKgPerM
		data.WebKg = cfg.WebKgPerM

		result, err := services.GenerateTruss(cfg)
		if err != nil {
			log.Printf("truss: design failed for %s: %v", projectID, err)
			SetToast(e, "error", err.Error())
			data.Errors["span_m"] = err.Error()
			return templates.TrussDesignContent(data).Render(e.Request.Context(), e.Response)
		}

		trussResultView(&data, result)

		rec, err := storeTrussDesign(app, projectID, cfg, result)
		if err != nil {
			log.Printf("truss: failed to store design for %s: %v", projectID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to store truss design")
		}
		data.Framing = buildFramingSummary(app, projectID, rec)

		if result.Validation.Valid {
			SetToast(e, "success", "Truss designed")
		} else {
			SetToast(e, "warning", "Truss designed with proportion warnings")
		}
		return templates.TrussDesignContent(data).Render(e.Request.Context(), e.Response)
	}
}

func storeTrussDesign(app *pocketbase.PocketBase, projectID string, cfg services.TrussConfig, result services.TrussResult) (*core.Record, error) {
	col, err := app.FindCollectionByNameOrId("truss_designs")
	if err != nil {
		return nil, err
	}

	rec := core.NewRecord(col)
	rec.Set("project", projectID)
	rec.Set("truss_type", string(cfg.Type))
	rec.Set("span_m", cfg.SpanM)
	rec.Set("rise_m", cfg.RiseM)
	rec.Set("overhang_m", cfg.OverhangM)
	rec.Set("spacing_m", cfg.SpacingM)
	rec.Set("top_chord_kg_m", cfg.TopChordKgPerM)
	rec.Set("bottom_chord_kg_m", cfg.BottomChordKgPerM)
	rec.Set("web_kg_m", cfg.WebKgPerM)
	rec.Set("vertical_web_count", cfg.VerticalWebCount)
	rec.Set("connector_plate_kg", cfg.ConnectorPlateKg)
	rec.Set("result", result)
	if err := app.Save(rec); err != nil {
		return nil, err
	}
	return rec, nil
}
