package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"costestimation/testhelpers"
)

func trussForm() url.Values {
	form := url.Values{}
	form.Set("truss_type", "howe")
	form.Set("span_m", "8")
	form.Set("rise_m", "1.6")
	form.Set("overhang_m", "0.5")
	form.Set("spacing_m", "0.6")
	form.Set("top_chord_kg_m", "7.51")
	form.Set("bottom_chord_kg_m", "7.51")
	form.Set("web_kg_m", "4.48")
	return form
}

func TestHandleTrussDesign_StoresDesign(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Truss Project")

	handler := HandleTrussDesign(app)

	req, rec := postForm(t, "/projects/"+project.Id+"/truss", trussForm())
	req.SetPathValue("id", project.Id)

	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	records, _ := app.FindRecordsByFilter("truss_designs", "project = {:pid}", "", 0, 0,
		map[string]any{"pid": project.Id})
	if len(records) != 1 {
		t.Fatalf("expected 1 stored truss design, got %d", len(records))
	}
	if records[0].GetString("truss_type") != "howe" {
		t.Errorf("expected truss_type howe, got %s", records[0].GetString("truss_type"))
	}
	if records[0].GetFloat("span_m") != 8 {
		t.Errorf("expected span 8, got %v", records[0].GetFloat("span_m"))
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(), "top_chord", "bottom_chord")
}

func TestHandleTrussDesign_InvalidSpan(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Truss Project")

	handler := HandleTrussDesign(app)

	form := trussForm()
	form.Set("span_m", "0")

	req, rec := postForm(t, "/projects/"+project.Id+"/truss", form)
	req.SetPathValue("id", project.Id)

	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	records, _ := app.FindRecordsByFilter("truss_designs", "project = {:pid}", "", 0, 0,
		map[string]any{"pid": project.Id})
	if len(records) != 0 {
		t.Errorf("expected no stored design for invalid span, got %d", len(records))
	}
}

func TestHandleTrussDesign_FramingNeedsRoofDesign(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Truss Project")

	// Without a roof design there is no building length to frame against
	req, rec := postForm(t, "/projects/"+project.Id+"/truss", trussForm())
	req.SetPathValue("id", project.Id)
	if err := HandleTrussDesign(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if body := rec.Body.String(); containsFraming(body) {
		t.Error("expected no framing section without a roof design")
	}

	// Generate a roof, then redesign the truss: framing appears
	roofForm := url.Values{}
	roofForm.Set("style", "gable")
	roofForm.Set("length_m", "10")
	roofForm.Set("width_m", "8")
	roofForm.Set("pitch_mode", "ratio")
	roofForm.Set("pitch_value", "0.3")
	roofReq, roofRec := postForm(t, "/projects/"+project.Id+"/roof", roofForm)
	roofReq.SetPathValue("id", project.Id)
	if err := HandleRoofGenerate(app)(newTestRequestEvent(app, roofReq, roofRec)); err != nil {
		t.Fatalf("roof generate failed: %v", err)
	}

	req2, rec2 := postForm(t, "/projects/"+project.Id+"/truss", trussForm())
	req2.SetPathValue("id", project.Id)
	if err := HandleTrussDesign(app)(newTestRequestEvent(app, req2, rec2)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if body := rec2.Body.String(); !containsFraming(body) {
		t.Error("expected framing section once a roof design exists")
	}
}

func containsFraming(body string) bool {
	return strings.Contains(body, "Roof Framing")
}
