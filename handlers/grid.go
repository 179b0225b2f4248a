package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func HandleGridLineCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing project ID")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		axis := e.Request.FormValue("axis")
		if axis != "x" && axis != "y" {
			return ErrorToast(e, http.StatusBadRequest, "Axis must be x or y")
		}
		label := strings.TrimSpace(e.Request.FormValue("label"))
		if label == "" {
			return ErrorToast(e, http.StatusBadRequest, "Grid label is required")
		}

		// Duplicate labels silently shadow each other in the resolver,
		// so reject them up front.
		existing, _ := app.FindRecordsByFilter(
			"grid_lines",
			"project = {:pid} && label = {:label}",
			"", 1, 0,
			map[string]any{"pid": projectID, "label": label},
		)
		if len(existing) > 0 {
			return ErrorToast(e, http.StatusBadRequest, "A grid line with this label already exists")
		}

		col, err := app.FindCollectionByNameOrId("grid_lines")
		if err != nil {
			log.Printf("grid: could not find grid_lines collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("axis", axis)
		record.Set("label", label)
		record.Set("offset_m", formFloat(e, "offset_m"))
		record.Set("sort_order", countProjectRecords(app, "grid_lines", projectID))

		if err := app.Save(record); err != nil {
			log.Printf("grid: could not save grid line: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Grid line added")
		e.Response.Header().Set("HX-Redirect", fmt.Sprintf("/projects/%s", projectID))
		return e.String(http.StatusOK, "")
	}
}

func HandleGridLineDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		gridID := e.Request.PathValue("gridId")
		if projectID == "" || gridID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing grid line ID")
		}

		record, err := app.FindRecordById("grid_lines", gridID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Grid line not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("grid: failed to delete grid line %s: %v", gridID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to delete grid line")
		}

		SetToast(e, "success", "Grid line deleted")
		e.Response.Header().Set("HX-Redirect", fmt.Sprintf("/projects/%s", projectID))
		return e.String(http.StatusOK, "")
	}
}

func HandleLevelCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing project ID")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		label := strings.TrimSpace(e.Request.FormValue("label"))
		if label == "" {
			return ErrorToast(e, http.StatusBadRequest, "Level label is required")
		}

		existing, _ := app.FindRecordsByFilter(
			"levels",
			"project = {:pid} && label = {:label}",
			"", 1, 0,
			map[string]any{"pid": projectID, "label": label},
		)
		if len(existing) > 0 {
			return ErrorToast(e, http.StatusBadRequest, "A level with this label already exists")
		}

		col, err := app.FindCollectionByNameOrId("levels")
		if err != nil {
			log.Printf("grid: could not find levels collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("label", label)
		record.Set("elevation_m", formFloat(e, "elevation_m"))
		record.Set("sort_order", countProjectRecords(app, "levels", projectID))

		if err := app.Save(record); err != nil {
			log.Printf("grid: could not save level: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Level added")
		e.Response.Header().Set("HX-Redirect", fmt.Sprintf("/projects/%s", projectID))
		return e.String(http.StatusOK, "")
	}
}

func HandleLevelDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		levelID := e.Request.PathValue("levelId")
		if projectID == "" || levelID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing level ID")
		}

		record, err := app.FindRecordById("levels", levelID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Level not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("grid: failed to delete level %s: %v", levelID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to delete level")
		}

		SetToast(e, "success", "Level deleted")
		e.Response.Header().Set("HX-Redirect", fmt.Sprintf("/projects/%s", projectID))
		return e.String(http.StatusOK, "")
	}
}
