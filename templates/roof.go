package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// RoofPlaneRow is one generated roof plane in the result table.
type RoofPlaneRow struct {
	Name         string
	PlanAreaM2   float64
	SlopeFactor  float64
	SlopeAreaM2  float64
	RidgeLengthM float64
	EaveLengthM  float64
	HipLengthM   float64
}

// RoofDesignData feeds the roof designer form and its result panel.
type RoofDesignData struct {
	ProjectID    string
	StyleOptions []string
	Style        string
	LengthM      float64
	WidthM       float64
	PitchModes   []string
	PitchMode    string
	PitchValue   float64
	PitchRise    float64
	PitchRun     float64

	HasResult        bool
	Planes           []RoofPlaneRow
	TotalPlanAreaM2  float64
	TotalSlopeAreaM2 float64
	RidgeLengthM     float64
	EaveLengthM      float64
	HipLengthM       float64
	CoveringQty      float64
	CoveringUnit     string

	Errors map[string]string
}

// RoofDesignContent renders the roof designer fragment.
func RoofDesignContent(data RoofDesignData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		base := "/projects/" + data.ProjectID
		h.raw("<div class=\"page-head\"><h1>Roof Designer</h1></div>")
		h.rawf("<form class=\"form\" hx-post=\"%s/roof\" hx-target=\"#content\" hx-swap=\"innerHTML\" method=\"post\" action=\"%s/roof\">", attr(base), attr(base))
		h.raw("<label for=\"style\">Style</label>")
		selectField(h, "style", data.Style, data.StyleOptions)
		numberField(h, "length_m", "Building length (m)", data.LengthM, data.Errors)
		numberField(h, "width_m", "Building width (m)", data.WidthM, data.Errors)
		h.raw("<label for=\"pitch_mode\">Pitch mode</label>")
		selectField(h, "pitch_mode", data.PitchMode, data.PitchModes)
		numberField(h, "pitch_value", "Pitch (ratio or degrees)", data.PitchValue, data.Errors)
		numberField(h, "pitch_rise", "Rise (rise/run mode)", data.PitchRise, data.Errors)
		numberField(h, "pitch_run", "Run (rise/run mode)", data.PitchRun, data.Errors)
		h.raw("<button type=\"submit\" class=\"btn btn-primary\">Generate</button>")
		h.raw("</form>")

		if !data.HasResult {
			return h.err
		}
		h.raw("<section class=\"roof-result\"><h2>Generated Planes</h2>")
		h.raw("<table class=\"data-table\"><thead><tr><th>Plane</th><th>Plan Area</th><th>Factor</th><th>Slope Area</th><th>Ridge</th><th>Eave</th><th>Hip</th></tr></thead><tbody>")
		for _, p := range data.Planes {
			h.raw("<tr><td>")
			h.text(p.Name)
			h.rawf("</td><td class=\"num\">%s</td><td class=\"num\">%s</td><td class=\"num\">%s</td><td class=\"num\">%s</td><td class=\"num\">%s</td><td class=\"num\">%s</td></tr>",
				num(p.PlanAreaM2), num(p.SlopeFactor), num(p.SlopeAreaM2),
				num(p.RidgeLengthM), num(p.EaveLengthM), num(p.HipLengthM))
		}
		h.raw("</tbody></table>")
		h.raw("<div class=\"stat-grid\">")
		floatStat(h, "Plan area (sq.m)", data.TotalPlanAreaM2)
		floatStat(h, "Slope area (sq.m)", data.TotalSlopeAreaM2)
		floatStat(h, "Ridge (m)", data.RidgeLengthM)
		floatStat(h, "Eave (m)", data.EaveLengthM)
		floatStat(h, "Hip (m)", data.HipLengthM)
		h.raw("</div>")
		if data.CoveringQty > 0 {
			h.rawf("<p class=\"covering\">Covering takeoff: <strong>%s %s</strong></p>", num(data.CoveringQty), attr(data.CoveringUnit))
		}
		h.raw("</section>")
		return h.err
	})
}

func floatStat(h *hw, label string, value float64) {
	h.raw("<div class=\"stat\"><span class=\"stat-label\">")
	h.text(label)
	h.rawf("</span><span class=\"stat-value\">%s</span></div>", num(value))
}

// RoofDesignPage renders the roof designer inside the full shell.
func RoofDesignPage(data RoofDesignData, header HeaderData, sidebar SidebarData) templ.Component {
	return page("Roof Designer", header, sidebar, RoofDesignContent(data))
}
