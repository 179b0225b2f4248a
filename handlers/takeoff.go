package handlers

import (
	"log"
	"net/http"
	"sort"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
	"costestimation/templates"
)

// buildTakeoffData loads the stored takeoff lines of a project into the
// page view, with per-trade totals for trades whose lines share a unit.
func buildTakeoffData(app *pocketbase.PocketBase, projectID string) (templates.TakeoffData, error) {
	data := templates.TakeoffData{ProjectID: projectID}

	records, err := findProjectRecords(app, "takeoff_lines", projectID, "line_id")
	if err != nil {
		return data, err
	}

	type tradeKey struct {
		trade string
		unit  string
	}
	totals := make(map[tradeKey]float64)

	for _, rec := range records {
		line := templates.TakeoffLineRow{
			LineID:      rec.GetString("line_id"),
			Source:      rec.GetString("source_element"),
			Trade:       rec.GetString("trade"),
			ResourceKey: rec.GetString("resource_key"),
			Quantity:    rec.GetFloat("quantity"),
			Unit:        rec.GetString("unit"),
			Formula:     rec.GetString("formula"),
		}
		data.Lines = append(data.Lines, line)
		totals[tradeKey{line.Trade, line.Unit}] += line.Quantity

		if data.LastRun == "" {
			if dt := rec.GetDateTime("created"); !dt.IsZero() {
				data.LastRun = dt.Time().Format("02 Jan 2006 15:04")
			}
		}
	}

	for key, qty := range totals {
		data.Totals = append(data.Totals, templates.TradeTotal{Trade: key.trade, Quantity: qty, Unit: key.unit})
	}
	sort.Slice(data.Totals, func(i, j int) bool { return data.Totals[i].Trade < data.Totals[j].Trade })

	return data, nil
}

func HandleTakeoffView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		data, err := buildTakeoffData(app, projectID)
		if err != nil {
			log.Printf("takeoff: failed to load lines for %s: %v", projectID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.TakeoffContent(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.TakeoffPage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleTakeoffRun recomputes every structural takeoff line of a project
// and replaces the stored set. Lines keep deterministic ids, so a re-run
// over unchanged elements stores an identical set.
func HandleTakeoffRun(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing project ID")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Project not found")
		}

		grid, _, err := loadGridSystem(app, projectID)
		if err != nil {
			log.Printf("takeoff_run: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		levelSystem, _, err := loadLevelSystem(app, projectID)
		if err != nil {
			log.Printf("takeoff_run: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		elementTemplates, err := loadTemplates(app, projectID)
		if err != nil {
			log.Printf("takeoff_run: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		instances, err := loadInstances(app, projectID)
		if err != nil {
			log.Printf("takeoff_run: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		settings, _, _ := loadTakeoffSettings(app, projectID)

		run := services.RunTakeoff(services.TakeoffInput{
			Templates: elementTemplates,
			Instances: instances,
			Grid:      grid,
			Levels:    levelSystem,
			Settings:  settings,
		})

		if err := storeTakeoffLines(app, projectID, run.Lines); err != nil {
			log.Printf("takeoff_run: failed to store lines for %s: %v", projectID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to store takeoff lines")
		}

		log.Printf("takeoff_run: project %s produced %d lines, %d errors, %d warnings",
			projectID, len(run.Lines), len(run.Errors), len(run.Warnings))

		data, err := buildTakeoffData(app, projectID)
		if err != nil {
			log.Printf("takeoff_run: failed to reload lines for %s: %v", projectID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		data.Errors = run.Errors
		data.Warnings = run.Warnings

		if len(run.Errors) > 0 {
			SetToast(e, "warning", "Takeoff completed with errors")
		} else {
			SetToast(e, "success", "Takeoff completed")
		}

		return templates.TakeoffContent(data).Render(e.Request.Context(), e.Response)
	}
}

// storeTakeoffLines replaces a project's stored lines with a freshly
// computed set.
func storeTakeoffLines(app *pocketbase.PocketBase, projectID string, lines []services.TakeoffLine) error {
	col, err := app.FindCollectionByNameOrId("takeoff_lines")
	if err != nil {
		return err
	}

	existing, err := app.FindRecordsByFilter(col, "project = {:pid}", "", 0, 0, map[string]any{"pid": projectID})
	if err == nil {
		for _, rec := range existing {
			if err := app.Delete(rec); err != nil {
				return err
			}
		}
	}

	for _, line := range lines {
		tags := make(map[string]string, len(line.Tags))
		for _, tag := range line.Tags {
			tags[tag.Key] = tag.Value
		}

		rec := core.NewRecord(col)
		rec.Set("project", projectID)
		rec.Set("line_id", line.ID)
		rec.Set("source_element", line.SourceElementID)
		rec.Set("trade", line.Trade)
		rec.Set("resource_key", line.ResourceKey)
		rec.Set("quantity", line.Quantity)
		rec.Set("unit", line.Unit)
		rec.Set("formula", line.Formula)
		rec.Set("inputs", line.Inputs)
		rec.Set("assumptions", line.Assumptions)
		rec.Set("tags", tags)
		if err := app.Save(rec); err != nil {
			return err
		}
	}
	return nil
}
