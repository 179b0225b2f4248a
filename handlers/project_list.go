package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/templates"
)

func statusBadgeClass(status string) string {
	switch status {
	case "active":
		return "badge-success"
	case "completed":
		return "badge-info"
	case "on_hold":
		return "badge-warning"
	default:
		return "badge-ghost"
	}
}

func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_list: could not find projects collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindAllRecords(projectsCol)
		if err != nil {
			log.Printf("project_list: could not query projects: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		var items []templates.ProjectListItem

		for _, rec := range records {
			createdDate := "—"
			if dt := rec.GetDateTime("created"); !dt.IsZero() {
				createdDate = dt.Time().Format("02 Jan 2006")
			}

			status := rec.GetString("status")

			items = append(items, templates.ProjectListItem{
				ID:               rec.Id,
				Name:             rec.GetString("name"),
				Location:         rec.GetString("location"),
				Status:           status,
				StatusBadgeClass: statusBadgeClass(status),
				ElementCount:     countProjectRecords(app, "element_instances", rec.Id),
				DUPACount:        countProjectRecords(app, "dupa_items", rec.Id),
				CreatedDate:      createdDate,
			})
		}

		data := templates.ProjectListData{
			Projects:   items,
			TotalCount: len(records),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ProjectListContent(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.ProjectListPage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
