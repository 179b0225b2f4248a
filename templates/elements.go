package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ElementTemplateItem is one template row on the elements page.
type ElementTemplateItem struct {
	ID           string
	Name         string
	Type         string
	Dimensions   string // e.g. "300 × 500 mm"
	RebarSummary string // e.g. "4 × 16mm main, 10mm stirrups @ 200"
}

// ElementInstanceItem is one placed instance row.
type ElementInstanceItem struct {
	ID           string
	TemplateName string
	GridRefs     string // joined, e.g. "A-1 → B-1"
	LevelRef     string
	EndLevelRef  string
}

// ElementListData feeds the elements page: templates, instances and the
// option lists the placement form needs.
type ElementListData struct {
	ProjectID   string
	Templates   []ElementTemplateItem
	Instances   []ElementInstanceItem
	GridLabels  []string
	LevelLabels []string
	TypeOptions []string
}

// ElementListContent renders the elements fragment.
func ElementListContent(data ElementListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		base := "/projects/" + data.ProjectID
		h.raw("<div class=\"page-head\"><h1>Structural Elements</h1></div>")

		h.raw("<section class=\"templates\"><h2>Templates</h2>")
		if len(data.Templates) == 0 {
			h.raw("<p class=\"empty-state\">No element templates yet.</p>")
		} else {
			h.raw("<table class=\"data-table\"><thead><tr><th>Name</th><th>Type</th><th>Section</th><th>Rebar</th><th></th></tr></thead><tbody>")
			for _, t := range data.Templates {
				h.rawf("<tr id=\"template-%s\"><td>", attr(t.ID))
				h.text(t.Name)
				h.raw("</td><td>")
				h.text(t.Type)
				h.raw("</td><td>")
				h.text(t.Dimensions)
				h.raw("</td><td>")
				h.text(t.RebarSummary)
				h.rawf("</td><td><button class=\"danger\" hx-delete=\"%s/templates/%s\" hx-confirm=\"Delete this template and its instances?\" hx-swap=\"none\">Delete</button></td></tr>", attr(base), attr(t.ID))
			}
			h.raw("</tbody></table>")
		}
		h.rawf("<form class=\"form inline\" hx-post=\"%s/templates\" method=\"post\" action=\"%s/templates\">", attr(base), attr(base))
		h.raw("<input type=\"text\" name=\"name\" placeholder=\"Name\" required>")
		selectField(h, "element_type", "", data.TypeOptions)
		h.raw("<input type=\"number\" step=\"any\" name=\"width_mm\" placeholder=\"Width mm\">")
		h.raw("<input type=\"number\" step=\"any\" name=\"height_mm\" placeholder=\"Height/Depth mm\">")
		h.raw("<input type=\"number\" step=\"any\" name=\"thickness_mm\" placeholder=\"Thickness mm\">")
		h.raw("<button type=\"submit\" class=\"btn\">Add Template</button>")
		h.raw("</form></section>")

		h.raw("<section class=\"instances\"><h2>Placed Instances</h2>")
		if len(data.Instances) == 0 {
			h.raw("<p class=\"empty-state\">No instances placed yet.</p>")
		} else {
			h.raw("<table class=\"data-table\"><thead><tr><th>Template</th><th>Grid</th><th>Level</th><th>End Level</th><th></th></tr></thead><tbody>")
			for _, inst := range data.Instances {
				h.rawf("<tr id=\"instance-%s\"><td>", attr(inst.ID))
				h.text(inst.TemplateName)
				h.raw("</td><td>")
				h.text(inst.GridRefs)
				h.raw("</td><td>")
				h.text(inst.LevelRef)
				h.raw("</td><td>")
				h.text(inst.EndLevelRef)
				h.rawf("</td><td><button class=\"danger\" hx-delete=\"%s/instances/%s\" hx-swap=\"none\">Delete</button></td></tr>", attr(base), attr(inst.ID))
			}
			h.raw("</tbody></table>")
		}
		h.rawf("<form class=\"form inline\" hx-post=\"%s/instances\" method=\"post\" action=\"%s/instances\">", attr(base), attr(base))
		h.raw("<select name=\"template\">")
		for _, t := range data.Templates {
			h.rawf("<option value=\"%s\">", attr(t.ID))
			h.text(t.Name)
			h.raw("</option>")
		}
		h.raw("</select>")
		h.raw("<input type=\"text\" name=\"grid_refs\" placeholder=\"Grid refs, e.g. A,B\">")
		selectField(h, "level_ref", "", data.LevelLabels)
		selectField(h, "end_level_ref", "", append([]string{""}, data.LevelLabels...))
		h.raw("<button type=\"submit\" class=\"btn\">Place Instance</button>")
		h.raw("</form></section>")
		return h.err
	})
}

// ElementListPage renders the elements page inside the full shell.
func ElementListPage(data ElementListData, header HeaderData, sidebar SidebarData) templ.Component {
	return page("Elements", header, sidebar, ElementListContent(data))
}
