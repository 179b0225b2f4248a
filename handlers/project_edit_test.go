package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"costestimation/testhelpers"
)

func TestHandleProjectEdit_PrefillsForm(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Edit Me")

	handler := HandleProjectEdit(app)

	req := httptest.NewRequest(http.MethodGet, "/projects/"+project.Id+"/edit", nil)
	req.SetPathValue("id", project.Id)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Edit Me", "Brgy. San Isidro, Tagum City")
}

func TestHandleProjectUpdate_SavesChanges(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Old Name")

	handler := HandleProjectUpdate(app)

	form := url.Values{}
	form.Set("name", "New Name")
	form.Set("location", "Brgy. Visayan Village, Tagum City")
	form.Set("status", "completed")

	req, rec := postForm(t, "/projects/"+project.Id+"/edit", form)
	req.SetPathValue("id", project.Id)

	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	updated, err := app.FindRecordById("projects", project.Id)
	if err != nil {
		t.Fatalf("project disappeared: %v", err)
	}
	if updated.GetString("name") != "New Name" {
		t.Errorf("expected name to change, got %q", updated.GetString("name"))
	}
	if updated.GetString("status") != "completed" {
		t.Errorf("expected status completed, got %q", updated.GetString("status"))
	}
}

func TestHandleProjectUpdate_RejectsNameCollision(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "Taken")
	project := testhelpers.CreateTestProject(t, app, "Mine")

	handler := HandleProjectUpdate(app)

	form := url.Values{}
	form.Set("name", "Taken")
	form.Set("status", "active")

	req, rec := postForm(t, "/projects/"+project.Id+"/edit", form)
	req.SetPathValue("id", project.Id)

	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Header().Get("HX-Redirect") != "" {
		t.Error("expected form re-render, not redirect")
	}
	unchanged, _ := app.FindRecordById("projects", project.Id)
	if unchanged.GetString("name") != "Mine" {
		t.Errorf("expected name to stay, got %q", unchanged.GetString("name"))
	}
}

func TestHandleProjectUpdate_KeepsStatusOnBadValue(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Status Project")

	handler := HandleProjectUpdate(app)

	form := url.Values{}
	form.Set("name", "Status Project")
	form.Set("status", "abandoned")

	req, rec := postForm(t, "/projects/"+project.Id+"/edit", form)
	req.SetPathValue("id", project.Id)

	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	updated, _ := app.FindRecordById("projects", project.Id)
	if updated.GetString("status") != "active" {
		t.Errorf("expected status to stay active, got %q", updated.GetString("status"))
	}
}
