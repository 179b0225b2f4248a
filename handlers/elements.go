package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
	"costestimation/templates"
)

// templateDimensions renders a template's section for the list table.
func templateDimensions(elementType string, props map[string]float64) string {
	switch elementType {
	case string(services.ElementBeam):
		return fmt.Sprintf("%.0f × %.0f mm", props["width_mm"], props["height_mm"])
	case string(services.ElementColumn):
		if d := props["diameter_mm"]; d > 0 {
			return fmt.Sprintf("⌀ %.0f mm", d)
		}
		return fmt.Sprintf("%.0f × %.0f mm", props["width_mm"], props["depth_mm"])
	case string(services.ElementSlab):
		return fmt.Sprintf("t = %.0f mm", props["thickness_mm"])
	case string(services.ElementFoundation):
		return fmt.Sprintf("%.0f × %.0f × %.0f mm", props["length_mm"], props["width_mm"], props["depth_mm"])
	}
	return ""
}

// rebarSummary renders a template's rebar groups for the list table.
func rebarSummary(groups []map[string]any) string {
	var parts []string
	for _, g := range groups {
		role, _ := g["role"].(string)
		dia := jsonFloat(g["diameter_mm"])
		if count := jsonFloat(g["count"]); count > 0 {
			parts = append(parts, fmt.Sprintf("%.0f × %.0fmm %s", count, dia, role))
		} else if spacing := jsonFloat(g["spacing_mm"]); spacing > 0 {
			parts = append(parts, fmt.Sprintf("%.0fmm %s @ %.0f", dia, role, spacing))
		}
	}
	return strings.Join(parts, ", ")
}

func buildElementListData(app *pocketbase.PocketBase, projectID string) (templates.ElementListData, error) {
	data := templates.ElementListData{
		ProjectID:   projectID,
		TypeOptions: services.ElementTypeOptions,
	}

	tplRecords, err := findProjectRecords(app, "element_templates", projectID, "created")
	if err != nil {
		return data, err
	}
	tplNames := make(map[string]string, len(tplRecords))
	for _, rec := range tplRecords {
		var props map[string]float64
		_ = rec.UnmarshalJSONField("properties", &props)
		var groups []map[string]any
		_ = rec.UnmarshalJSONField("rebar_groups", &groups)

		tplNames[rec.Id] = rec.GetString("name")
		data.Templates = append(data.Templates, templates.ElementTemplateItem{
			ID:           rec.Id,
			Name:         rec.GetString("name"),
			Type:         rec.GetString("element_type"),
			Dimensions:   templateDimensions(rec.GetString("element_type"), props),
			RebarSummary: rebarSummary(groups),
		})
	}

	instRecords, err := findProjectRecords(app, "element_instances", projectID, "created")
	if err != nil {
		return data, err
	}
	for _, rec := range instRecords {
		var gridRefs []string
		_ = rec.UnmarshalJSONField("grid_refs", &gridRefs)
		data.Instances = append(data.Instances, templates.ElementInstanceItem{
			ID:           rec.Id,
			TemplateName: tplNames[rec.GetString("template")],
			GridRefs:     strings.Join(gridRefs, " → "),
			LevelRef:     rec.GetString("level_ref"),
			EndLevelRef:  rec.GetString("end_level_ref"),
		})
	}

	_, gridLabels, err := loadGridSystem(app, projectID)
	if err == nil {
		data.GridLabels = gridLabels
	}
	_, levelLabels, err := loadLevelSystem(app, projectID)
	if err == nil {
		data.LevelLabels = levelLabels
	}
	return data, nil
}

func HandleElementList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		data, err := buildElementListData(app, projectID)
		if err != nil {
			log.Printf("elements: failed to build element list for %s: %v", projectID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ElementListContent(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.ElementListPage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// templateProperties maps the form fields onto the property keys each
// element type reads. Height doubles as depth for columns and foundations.
func templateProperties(e *core.RequestEvent, elementType string) map[string]float64 {
	props := make(map[string]float64)
	width := formFloat(e, "width_mm")
	height := formFloat(e, "height_mm")
	thickness := formFloat(e, "thickness_mm")

	switch elementType {
	case string(services.ElementBeam):
		props["width_mm"] = width
		props["height_mm"] = height
	case string(services.ElementColumn):
		props["width_mm"] = width
		props["depth_mm"] = height
	case string(services.ElementSlab):
		props["thickness_mm"] = thickness
	case string(services.ElementFoundation):
		props["length_mm"] = width
		props["width_mm"] = width
		props["depth_mm"] = height
	}
	return props
}

func HandleTemplateCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing project ID")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		elementType := e.Request.FormValue("element_type")
		if name == "" {
			return ErrorToast(e, http.StatusBadRequest, "Template name is required")
		}

		valid := false
		for _, t := range services.ElementTypeOptions {
			if elementType == t {
				valid = true
				break
			}
		}
		if !valid {
			return ErrorToast(e, http.StatusBadRequest, "Unknown element type")
		}

		col, err := app.FindCollectionByNameOrId("element_templates")
		if err != nil {
			log.Printf("elements: could not find element_templates collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("name", name)
		record.Set("element_type", elementType)
		record.Set("properties", templateProperties(e, elementType))
		record.Set("rebar_groups", []map[string]any{})

		if err := app.Save(record); err != nil {
			log.Printf("elements: could not save template: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Template created")
		e.Response.Header().Set("HX-Redirect", fmt.Sprintf("/projects/%s/elements", projectID))
		return e.String(http.StatusOK, "")
	}
}

func HandleTemplateDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		templateID := e.Request.PathValue("templateId")
		if projectID == "" || templateID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing template ID")
		}

		record, err := app.FindRecordById("element_templates", templateID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Template not found")
		}

		// Instances cascade with the template
		if err := app.Delete(record); err != nil {
			log.Printf("elements: failed to delete template %s: %v", templateID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to delete template")
		}

		SetToast(e, "success", "Template deleted")
		e.Response.Header().Set("HX-Redirect", fmt.Sprintf("/projects/%s/elements", projectID))
		return e.String(http.StatusOK, "")
	}
}

func HandleInstanceCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing project ID")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		templateID := e.Request.FormValue("template")
		if _, err := app.FindRecordById("element_templates", templateID); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Template not found")
		}

		var gridRefs []string
		for _, ref := range strings.Split(e.Request.FormValue("grid_refs"), ",") {
			if ref = strings.TrimSpace(ref); ref != "" {
				gridRefs = append(gridRefs, ref)
			}
		}

		col, err := app.FindCollectionByNameOrId("element_instances")
		if err != nil {
			log.Printf("elements: could not find element_instances collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("template", templateID)
		record.Set("grid_refs", gridRefs)
		record.Set("level_ref", strings.TrimSpace(e.Request.FormValue("level_ref")))
		record.Set("end_level_ref", strings.TrimSpace(e.Request.FormValue("end_level_ref")))

		if err := app.Save(record); err != nil {
			log.Printf("elements: could not save instance: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Instance placed")
		e.Response.Header().Set("HX-Redirect", fmt.Sprintf("/projects/%s/elements", projectID))
		return e.String(http.StatusOK, "")
	}
}

func HandleInstanceDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		instanceID := e.Request.PathValue("instanceId")
		if projectID == "" || instanceID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing instance ID")
		}

		record, err := app.FindRecordById("element_instances", instanceID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Instance not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("elements: failed to delete instance %s: %v", instanceID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to delete instance")
		}

		SetToast(e, "success", "Instance deleted")
		e.Response.Header().Set("HX-Redirect", fmt.Sprintf("/projects/%s/elements", projectID))
		return e.String(http.StatusOK, "")
	}
}
