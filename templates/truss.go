package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// TrussMemberRow is one member group in the truss result table.
type TrussMemberRow struct {
	Name          string
	Role          string
	LengthMM      float64
	Quantity      int
	UnitWeightKgM float64
	WeightKg      float64
}

// FramingSummary carries the purlin/bracing/sheeting quantities derived
// for the whole roof at the configured truss spacing.
type FramingSummary struct {
	TrussCount         int
	PurlinTotalLengthM float64
	PurlinWeightKg     float64
	BraceDiagonalCount int
	BraceWeightKg      float64
	RoofAreaM2         float64
	SheetCount         int
	ScrewCount         int
}

// TrussDesignData feeds the truss designer form and its result panel.
type TrussDesignData struct {
	ProjectID   string
	TypeOptions []string
	Type        string
	SpanM       float64
	RiseM       float64
	OverhangM   float64
	SpacingM    float64
	TopChordKg  float64
	BottomKg    float64
	WebKg       float64

	HasResult      bool
	Members        []TrussMemberRow
	PanelCount     int
	PlateCount     int
	PlateWeightKg  float64
	MemberWeightKg float64
	TotalWeightKg  float64
	Warnings       []string
	Framing        *FramingSummary

	Errors map[string]string
}

// TrussDesignContent renders the truss designer fragment.
func TrussDesignContent(data TrussDesignData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		base := "/projects/" + data.ProjectID
		h.raw("<div class=\"page-head\"><h1>Truss Designer</h1></div>")
		h.rawf("<form class=\"form\" hx-post=\"%s/truss\" hx-target=\"#content\" hx-swap=\"innerHTML\" method=\"post\" action=\"%s/truss\">", attr(base), attr(base))
		h.raw("<label for=\"truss_type\">Type</label>")
		selectField(h, "truss_type", data.Type, data.TypeOptions)
		numberField(h, "span_m", "Span (m)", data.SpanM, data.Errors)
		numberField(h, "rise_m", "Rise (m)", data.RiseM, data.Errors)
		numberField(h, "overhang_m", "Overhang (m)", data.OverhangM, data.Errors)
		numberField(h, "spacing_m", "Truss spacing (m)", data.SpacingM, data.Errors)
		numberField(h, "top_chord_kg_m", "Top chord (kg/m)", data.TopChordKg, data.Errors)
		numberField(h, "bottom_chord_kg_m", "Bottom chord (kg/m)", data.BottomKg, data.Errors)
		numberField(h, "web_kg_m", "Web (kg/m)", data.WebKg, data.Errors)
		h.raw("<button type=\"submit\" class=\"btn btn-primary\">Design</button>")
		h.raw("</form>")

		if !data.HasResult {
			return h.err
		}
		for _, msg := range data.Warnings {
			h.raw("<p class=\"alert warning\">")
			h.text(msg)
			h.raw("</p>")
		}
		h.raw("<section class=\"truss-result\"><h2>Members</h2>")
		h.raw("<table class=\"data-table\"><thead><tr><th>Member</th><th>Role</th><th>Length (mm)</th><th>Qty</th><th>kg/m</th><th>Weight (kg)</th></tr></thead><tbody>")
		for _, m := range data.Members {
			h.raw("<tr><td>")
			h.text(m.Name)
			h.raw("</td><td>")
			h.text(m.Role)
			h.rawf("</td><td class=\"num\">%s</td><td class=\"num\">%d</td><td class=\"num\">%s</td><td class=\"num\">%s</td></tr>",
				num(m.LengthMM), m.Quantity, num(m.UnitWeightKgM), num(m.WeightKg))
		}
		h.raw("</tbody></table>")
		h.raw("<div class=\"stat-grid\">")
		stat(h, "Panels", data.PanelCount)
		stat(h, "Plates", data.PlateCount)
		floatStat(h, "Plate weight (kg)", data.PlateWeightKg)
		floatStat(h, "Member weight (kg)", data.MemberWeightKg)
		floatStat(h, "Total weight (kg)", data.TotalWeightKg)
		h.raw("</div>")
		if f := data.Framing; f != nil {
			h.raw("<h2>Roof Framing</h2><div class=\"stat-grid\">")
			stat(h, "Trusses", f.TrussCount)
			floatStat(h, "Purlins (m)", f.PurlinTotalLengthM)
			floatStat(h, "Purlin weight (kg)", f.PurlinWeightKg)
			stat(h, "Brace diagonals", f.BraceDiagonalCount)
			floatStat(h, "Brace weight (kg)", f.BraceWeightKg)
			floatStat(h, "Roof area (sq.m)", f.RoofAreaM2)
			stat(h, "Sheets", f.SheetCount)
			stat(h, "Screws", f.ScrewCount)
			h.raw("</div>")
		}
		h.raw("</section>")
		return h.err
	})
}

// TrussDesignPage renders the truss designer inside the full shell.
func TrussDesignPage(data TrussDesignData, header HeaderData, sidebar SidebarData) templ.Component {
	return page("Truss Designer", header, sidebar, TrussDesignContent(data))
}
