package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"

	"costestimation/templates"
)

// BuildSidebarData constructs the SidebarData from the current request
// context. It reads the active project from middleware context and counts
// the records shown as navigation badges.
func BuildSidebarData(r *http.Request, app *pocketbase.PocketBase) templates.SidebarData {
	activeProj := GetActiveProject(r)
	if activeProj == nil {
		return templates.SidebarData{
			ActivePath: r.URL.Path,
		}
	}

	data := templates.SidebarData{
		ActiveProject: activeProj,
		ActivePath:    r.URL.Path,
	}

	data.ElementCount = countProjectRecords(app, "element_instances", activeProj.ID)
	data.TakeoffLineCount = countProjectRecords(app, "takeoff_lines", activeProj.ID)
	data.DUPACount = countProjectRecords(app, "dupa_items", activeProj.ID)

	return data
}

// countProjectRecords counts the records of a collection linked to a
// project. Missing collections and query failures count as zero.
func countProjectRecords(app *pocketbase.PocketBase, collection, projectID string) int {
	col, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		return 0
	}
	records, err := app.FindRecordsByFilter(col, "project = {:pid}", "", 0, 0, map[string]any{"pid": projectID})
	if err != nil {
		return 0
	}
	return len(records)
}
