package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/templates"
)

func HandleProjectEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_edit: could not find project %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		data := templates.ProjectFormData{
			ID:            projectID,
			Name:          record.GetString("name"),
			Location:      record.GetString("location"),
			Status:        record.GetString("status"),
			StatusOptions: ProjectStatusOptions,
			Errors:        make(map[string]string),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ProjectForm(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.ProjectFormPage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

func HandleProjectUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_update: could not find project %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		location := strings.TrimSpace(e.Request.FormValue("location"))
		status := strings.TrimSpace(e.Request.FormValue("status"))

		errors := make(map[string]string)
		if name == "" {
			errors["name"] = "Project name is required"
		}

		validStatus := false
		for _, s := range ProjectStatusOptions {
			if status == s {
				validStatus = true
				break
			}
		}
		if !validStatus {
			status = record.GetString("status")
		}

		if name != "" {
			existing, _ := app.FindRecordsByFilter(
				"projects",
				"name = {:name} && id != {:id}",
				"", 1, 0,
				map[string]any{"name": name, "id": projectID},
			)
			if len(existing) > 0 {
				errors["name"] = "A project with this name already exists"
			}
		}

		if len(errors) > 0 {
			data := templates.ProjectFormData{
				ID:            projectID,
				Name:          name,
				Location:      location,
				Status:        status,
				StatusOptions: ProjectStatusOptions,
				Errors:        errors,
			}

			var component templ.Component
			if e.Request.Header.Get("HX-Request") == "true" {
				component = templates.ProjectForm(data)
			} else {
				headerData := GetHeaderData(e.Request)
				sidebarData := GetSidebarData(e.Request)
				component = templates.ProjectFormPage(data, headerData, sidebarData)
			}
			return component.Render(e.Request.Context(), e.Response)
		}

		record.Set("name", name)
		record.Set("location", location)
		record.Set("status", status)

		if err := app.Save(record); err != nil {
			log.Printf("project_update: could not save project %s: %v", projectID, err)
			return e.String(http.StatusInternalServerError, "Failed to save project")
		}

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/projects")
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/projects")
	}
}
