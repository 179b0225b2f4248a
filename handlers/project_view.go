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

func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_view: could not find project %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		status := record.GetString("status")

		data := templates.ProjectViewData{
			ID:               projectID,
			Name:             record.GetString("name"),
			Location:         record.GetString("location"),
			Status:           status,
			StatusBadgeClass: statusBadgeClass(status),
			TemplateCount:    countProjectRecords(app, "element_templates", projectID),
			InstanceCount:    countProjectRecords(app, "element_instances", projectID),
			TakeoffLineCount: countProjectRecords(app, "takeoff_lines", projectID),
			DUPACount:        countProjectRecords(app, "dupa_items", projectID),
		}

		if lines, err := findProjectRecords(app, "grid_lines", projectID, "axis,sort_order"); err == nil {
			for _, gl := range lines {
				data.GridLines = append(data.GridLines, templates.GridLineItem{
					ID:      gl.Id,
					Axis:    gl.GetString("axis"),
					Label:   gl.GetString("label"),
					OffsetM: gl.GetFloat("offset_m"),
				})
			}
		}
		if levels, err := findProjectRecords(app, "levels", projectID, "sort_order"); err == nil {
			for _, lv := range levels {
				data.Levels = append(data.Levels, templates.LevelItem{
					ID:         lv.Id,
					Label:      lv.GetString("label"),
					ElevationM: lv.GetFloat("elevation_m"),
				})
			}
		}

		if col, err := app.FindCollectionByNameOrId("cost_breakdowns"); err == nil {
			breakdowns, _ := app.FindRecordsByFilter(col, "project = {:pid}", "", 0, 0, map[string]any{"pid": projectID})
			var total float64
			for _, b := range breakdowns {
				total += b.GetFloat("total_amount")
			}
			if len(breakdowns) > 0 {
				data.GrandTotal = services.FormatPHP(total)
			}
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ProjectViewContent(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.ProjectViewPage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
