package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"costestimation/testhelpers"
)

func TestHandleProjectCreate_RendersForm(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectCreate(app)

	req := httptest.NewRequest(http.MethodGet, "/projects/create", nil)
	rec := httptest.NewRecorder()

	// Create a minimal RequestEvent — PocketBase handlers need this
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "name", "location", "status")
}

func TestHandleProjectSave_ValidData(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectSave(app)

	form := url.Values{}
	form.Set("name", "Two-Storey Residence")
	form.Set("location", "Brgy. Magugpo, Tagum City")
	form.Set("status", "active")

	req := httptest.NewRequest(http.MethodPost, "/projects",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/projects")

	// Verify project was created in the database
	records, err := app.FindRecordsByFilter("projects", "name = {:name}", "", 1, 0,
		map[string]any{"name": "Two-Storey Residence"})
	if err != nil || len(records) == 0 {
		t.Fatal("expected project to be created in database")
	}

	// A new project gets default estimate settings
	settings, _ := app.FindRecordsByFilter("estimate_settings", "project = {:pid}", "", 1, 0,
		map[string]any{"pid": records[0].Id})
	if len(settings) == 0 {
		t.Error("expected default estimate settings for new project")
	}
}

func TestHandleProjectSave_MissingName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectSave(app)

	form := url.Values{}
	form.Set("name", "")
	form.Set("status", "active")

	req := httptest.NewRequest(http.MethodPost, "/projects",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	// Should re-render form with errors, not redirect
	if rec.Header().Get("HX-Redirect") != "" {
		t.Error("expected no HX-Redirect for validation error")
	}

	records, _ := app.FindAllRecords("projects")
	if len(records) != 0 {
		t.Error("expected no project to be created")
	}
}

func TestHandleProjectSave_DuplicateName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "Existing Project")

	handler := HandleProjectSave(app)

	form := url.Values{}
	form.Set("name", "Existing Project")
	form.Set("status", "active")

	req := httptest.NewRequest(http.MethodPost, "/projects",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Header().Get("HX-Redirect") != "" {
		t.Error("expected no HX-Redirect for duplicate name error")
	}

	records, _ := app.FindAllRecords("projects")
	if len(records) != 1 {
		t.Errorf("expected single project, got %d", len(records))
	}
}
