package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/collections"
	"costestimation/templates"
)

var ProjectStatusOptions = []string{"active", "completed", "on_hold"}

func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.ProjectFormData{
			Status:        "active",
			StatusOptions: ProjectStatusOptions,
			Errors:        make(map[string]string),
		}
		headerData := GetHeaderData(e.Request)
		sidebarData := GetSidebarData(e.Request)
		component := templates.ProjectFormPage(data, headerData, sidebarData)
		return component.Render(e.Request.Context(), e.Response)
	}
}

func HandleProjectSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
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
			status = "active"
		}

		if name != "" {
			existing, _ := app.FindRecordsByFilter(
				"projects",
				"name = {:name}",
				"", 1, 0,
				map[string]any{"name": name},
			)
			if len(existing) > 0 {
				errors["name"] = "A project with this name already exists"
			}
		}

		if len(errors) > 0 {
			SetToast(e, "warning", "Please fix the errors below")
			data := templates.ProjectFormData{
				Name:          name,
				Location:      location,
				Status:        status,
				StatusOptions: ProjectStatusOptions,
				Errors:        errors,
			}
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component := templates.ProjectFormPage(data, headerData, sidebarData)
			return component.Render(e.Request.Context(), e.Response)
		}

		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_create: could not find projects collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(projectsCol)
		record.Set("name", name)
		record.Set("location", location)
		record.Set("status", status)

		if err := app.Save(record); err != nil {
			log.Printf("project_create: could not save project: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		if err := collections.MigrateDefaultEstimateSettings(app); err != nil {
			log.Printf("project_create: failed to create default estimate settings: %v", err)
		}

		SetToast(e, "success", "Project created successfully")

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/projects")
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/projects")
	}
}
