package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ProjectListItem is one project card on the project list page.
type ProjectListItem struct {
	ID               string
	Name             string
	Location         string
	Status           string
	StatusBadgeClass string
	ElementCount     int
	DUPACount        int
	CreatedDate      string
}

// ProjectListData feeds the project list page.
type ProjectListData struct {
	Projects   []ProjectListItem
	TotalCount int
}

// ProjectListContent renders the project list fragment.
func ProjectListContent(data ProjectListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		h.raw("<div class=\"page-head\"><h1>Projects</h1>")
		h.raw("<a class=\"btn btn-primary\" href=\"/projects/create\">New Project</a></div>")
		if len(data.Projects) == 0 {
			h.raw("<p class=\"empty-state\">No projects yet. Create one to start estimating.</p>")
		} else {
			h.raw("<div class=\"card-grid\">")
			for _, p := range data.Projects {
				h.rawf("<div class=\"card project-card\" id=\"project-%s\">", attr(p.ID))
				h.rawf("<h2><a href=\"/projects/%s\">", attr(p.ID))
				h.text(p.Name)
				h.raw("</a></h2>")
				if p.Location != "" {
					h.raw("<p class=\"location\">")
					h.text(p.Location)
					h.raw("</p>")
				}
				h.rawf("<span class=\"badge %s\">", attr(p.StatusBadgeClass))
				h.text(p.Status)
				h.raw("</span>")
				h.rawf("<p class=\"counts\">%d elements · %d pay items</p>", p.ElementCount, p.DUPACount)
				h.raw("<p class=\"created\">")
				h.text(p.CreatedDate)
				h.raw("</p>")
				h.rawf("<div class=\"card-actions\"><button hx-post=\"/projects/%s/activate\" hx-swap=\"none\">Activate</button>", attr(p.ID))
				h.rawf("<a href=\"/projects/%s/edit\">Edit</a>", attr(p.ID))
				h.rawf("<button class=\"danger\" hx-delete=\"/projects/%s\" hx-confirm=\"Delete this project and all its data?\" hx-swap=\"none\">Delete</button>", attr(p.ID))
				h.raw("</div></div>")
			}
			h.raw("</div>")
		}
		return h.err
	})
}

// ProjectListPage renders the project list inside the full shell.
func ProjectListPage(data ProjectListData, header HeaderData, sidebar SidebarData) templ.Component {
	return page("Projects", header, sidebar, ProjectListContent(data))
}

// ProjectFormData feeds both the create and edit forms. A zero ID means
// create.
type ProjectFormData struct {
	ID            string
	Name          string
	Location      string
	Status        string
	StatusOptions []string
	Errors        map[string]string
}

// ProjectForm renders the create/edit form fragment.
func ProjectForm(data ProjectFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		action := "/projects"
		title := "New Project"
		if data.ID != "" {
			action = "/projects/" + data.ID + "/edit"
			title = "Edit Project"
		}
		h.raw("<div class=\"page-head\"><h1>")
		h.text(title)
		h.raw("</h1></div>")
		h.rawf("<form class=\"form\" hx-post=\"%s\" method=\"post\" action=\"%s\">", attr(action), attr(action))
		h.raw("<label for=\"name\">Name</label>")
		h.rawf("<input type=\"text\" name=\"name\" id=\"name\" value=\"%s\" required>", attr(data.Name))
		formError(h, data.Errors, "name")
		h.raw("<label for=\"location\">Location</label>")
		h.rawf("<input type=\"text\" name=\"location\" id=\"location\" value=\"%s\">", attr(data.Location))
		h.raw("<label for=\"status\">Status</label>")
		selectField(h, "status", data.Status, data.StatusOptions)
		h.raw("<button type=\"submit\" class=\"btn btn-primary\">Save</button>")
		h.raw("</form>")
		return h.err
	})
}

// ProjectFormPage renders the create/edit form inside the full shell.
func ProjectFormPage(data ProjectFormData, header HeaderData, sidebar SidebarData) templ.Component {
	title := "New Project"
	if data.ID != "" {
		title = "Edit Project"
	}
	return page(title, header, sidebar, ProjectForm(data))
}

// GridLineItem is one grid line row on the dashboard.
type GridLineItem struct {
	ID      string
	Axis    string
	Label   string
	OffsetM float64
}

// LevelItem is one level row on the dashboard.
type LevelItem struct {
	ID         string
	Label      string
	ElevationM float64
}

// ProjectViewData feeds the per-project dashboard.
type ProjectViewData struct {
	ID               string
	Name             string
	Location         string
	Status           string
	StatusBadgeClass string
	GridLines        []GridLineItem
	Levels           []LevelItem
	TemplateCount    int
	InstanceCount    int
	TakeoffLineCount int
	DUPACount        int
	GrandTotal       string // formatted, empty when no breakdowns exist
}

// ProjectViewContent renders the dashboard fragment.
func ProjectViewContent(data ProjectViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		h.raw("<div class=\"page-head\"><h1>")
		h.text(data.Name)
		h.rawf("</h1><span class=\"badge %s\">", attr(data.StatusBadgeClass))
		h.text(data.Status)
		h.raw("</span></div>")
		if data.Location != "" {
			h.raw("<p class=\"location\">")
			h.text(data.Location)
			h.raw("</p>")
		}
		h.raw("<div class=\"stat-grid\">")
		stat(h, "Grid lines", len(data.GridLines))
		stat(h, "Levels", len(data.Levels))
		stat(h, "Templates", data.TemplateCount)
		stat(h, "Instances", data.InstanceCount)
		stat(h, "Takeoff lines", data.TakeoffLineCount)
		stat(h, "Pay items", data.DUPACount)
		h.raw("</div>")
		if data.GrandTotal != "" {
			h.raw("<p class=\"grand-total\">Estimate total: <strong>")
			h.text(data.GrandTotal)
			h.raw("</strong></p>")
		}
		base := "/projects/" + data.ID

		h.raw("<section class=\"grid-lines\"><h2>Grid Lines</h2>")
		if len(data.GridLines) > 0 {
			h.raw("<table class=\"data-table\"><thead><tr><th>Axis</th><th>Label</th><th>Offset (m)</th><th></th></tr></thead><tbody>")
			for _, gl := range data.GridLines {
				h.rawf("<tr id=\"grid-%s\"><td>", attr(gl.ID))
				h.text(gl.Axis)
				h.raw("</td><td>")
				h.text(gl.Label)
				h.rawf("</td><td class=\"num\">%s</td>", num(gl.OffsetM))
				h.rawf("<td><button class=\"danger\" hx-delete=\"%s/grids/%s\" hx-swap=\"none\">Delete</button></td></tr>", attr(base), attr(gl.ID))
			}
			h.raw("</tbody></table>")
		}
		h.rawf("<form class=\"form inline\" hx-post=\"%s/grids\" method=\"post\" action=\"%s/grids\">", attr(base), attr(base))
		selectField(h, "axis", "x", []string{"x", "y"})
		h.raw("<input type=\"text\" name=\"label\" placeholder=\"Label\" required>")
		h.raw("<input type=\"number\" step=\"any\" name=\"offset_m\" placeholder=\"Offset m\">")
		h.raw("<button type=\"submit\" class=\"btn\">Add Grid Line</button>")
		h.raw("</form></section>")

		h.raw("<section class=\"levels\"><h2>Levels</h2>")
		if len(data.Levels) > 0 {
			h.raw("<table class=\"data-table\"><thead><tr><th>Label</th><th>Elevation (m)</th><th></th></tr></thead><tbody>")
			for _, lv := range data.Levels {
				h.rawf("<tr id=\"level-%s\"><td>", attr(lv.ID))
				h.text(lv.Label)
				h.rawf("</td><td class=\"num\">%s</td>", num(lv.ElevationM))
				h.rawf("<td><button class=\"danger\" hx-delete=\"%s/levels/%s\" hx-swap=\"none\">Delete</button></td></tr>", attr(base), attr(lv.ID))
			}
			h.raw("</tbody></table>")
		}
		h.rawf("<form class=\"form inline\" hx-post=\"%s/levels\" method=\"post\" action=\"%s/levels\">", attr(base), attr(base))
		h.raw("<input type=\"text\" name=\"label\" placeholder=\"Label\" required>")
		h.raw("<input type=\"number\" step=\"any\" name=\"elevation_m\" placeholder=\"Elevation m\">")
		h.raw("<button type=\"submit\" class=\"btn\">Add Level</button>")
		h.raw("</form></section>")

		h.rawf("<div class=\"quick-links\"><a href=\"%s/elements\">Elements</a>", attr(base))
		h.rawf("<a href=\"%s/takeoff\">Takeoff</a>", attr(base))
		h.rawf("<a href=\"%s/estimate\">Estimate</a></div>", attr(base))
		return h.err
	})
}

func stat(h *hw, label string, value int) {
	h.raw("<div class=\"stat\"><span class=\"stat-label\">")
	h.text(label)
	h.rawf("</span><span class=\"stat-value\">%d</span></div>", value)
}

// ProjectViewPage renders the dashboard inside the full shell.
func ProjectViewPage(data ProjectViewData, header HeaderData, sidebar SidebarData) templ.Component {
	return page(data.Name, header, sidebar, ProjectViewContent(data))
}

// HaulSegmentRow is one haul route leg on the settings form.
type HaulSegmentRow struct {
	DistanceKM       float64
	LoadedSpeedKPH   float64
	UnloadedSpeedKPH float64
}

// ProjectSettingsData feeds the estimate settings form: markup
// percentages, waste factors, lap length and the haul route.
type ProjectSettingsData struct {
	ProjectID            string
	ProjectName          string
	OCMPercent           float64
	CPPercent            float64
	VATPercent           float64
	MinorToolsPercent    float64
	MinorToolsEnabled    bool
	WasteConcretePercent float64
	WasteRebarPercent    float64
	RoundDecimals        int
	DefaultLapM          float64
	MinLapM              float64
	MaxLapM              float64
	FreeDistanceKM       float64
	Segments             []HaulSegmentRow
	HaulEquipmentRate    float64
	HaulCapacityM3       float64
	Errors               map[string]string
}

// ProjectSettingsContent renders the settings form fragment.
func ProjectSettingsContent(data ProjectSettingsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		h.raw("<div class=\"page-head\"><h1>Estimate Settings</h1><p>")
		h.text(data.ProjectName)
		h.raw("</p></div>")
		action := "/projects/" + data.ProjectID + "/settings"
		h.rawf("<form class=\"form settings-form\" hx-post=\"%s\" method=\"post\" action=\"%s\">", attr(action), attr(action))

		h.raw("<fieldset><legend>Markups</legend>")
		numberField(h, "ocm_percent", "OCM %", data.OCMPercent, data.Errors)
		numberField(h, "cp_percent", "Contractor's Profit %", data.CPPercent, data.Errors)
		numberField(h, "vat_percent", "VAT %", data.VATPercent, data.Errors)
		numberField(h, "minor_tools_percent", "Minor Tools % of labor", data.MinorToolsPercent, data.Errors)
		checked := ""
		if data.MinorToolsEnabled {
			checked = " checked"
		}
		h.rawf("<label class=\"checkbox\"><input type=\"checkbox\" name=\"minor_tools_enabled\"%s> Include minor tools</label>", checked)
		h.raw("</fieldset>")

		h.raw("<fieldset><legend>Takeoff</legend>")
		numberField(h, "waste_concrete_percent", "Concrete waste %", data.WasteConcretePercent, data.Errors)
		numberField(h, "waste_rebar_percent", "Rebar waste %", data.WasteRebarPercent, data.Errors)
		numberField(h, "round_decimals", "Rounding decimals", float64(data.RoundDecimals), data.Errors)
		numberField(h, "default_lap_m", "Default lap length (m)", data.DefaultLapM, data.Errors)
		numberField(h, "min_lap_m", "Minimum lap length (m)", data.MinLapM, data.Errors)
		numberField(h, "max_lap_m", "Maximum lap length (m)", data.MaxLapM, data.Errors)
		h.raw("</fieldset>")

		h.raw("<fieldset><legend>Hauling</legend>")
		numberField(h, "free_distance_km", "Free hauling distance (km)", data.FreeDistanceKM, data.Errors)
		numberField(h, "haul_equipment_rate", "Equipment hourly rate", data.HaulEquipmentRate, data.Errors)
		numberField(h, "haul_capacity_m3", "Equipment capacity (cu.m)", data.HaulCapacityM3, data.Errors)
		h.raw("<table class=\"segment-table\"><thead><tr><th>Distance (km)</th><th>Loaded (kph)</th><th>Unloaded (kph)</th></tr></thead><tbody>")
		for i, seg := range data.Segments {
			h.raw("<tr>")
			h.rawf("<td><input type=\"number\" step=\"any\" name=\"segment_distance_%d\" value=\"%s\"></td>", i, num(seg.DistanceKM))
			h.rawf("<td><input type=\"number\" step=\"any\" name=\"segment_loaded_%d\" value=\"%s\"></td>", i, num(seg.LoadedSpeedKPH))
			h.rawf("<td><input type=\"number\" step=\"any\" name=\"segment_unloaded_%d\" value=\"%s\"></td>", i, num(seg.UnloadedSpeedKPH))
			h.raw("</tr>")
		}
		// one blank row for appending a leg
		i := len(data.Segments)
		h.raw("<tr>")
		h.rawf("<td><input type=\"number\" step=\"any\" name=\"segment_distance_%d\" value=\"\"></td>", i)
		h.rawf("<td><input type=\"number\" step=\"any\" name=\"segment_loaded_%d\" value=\"\"></td>", i)
		h.rawf("<td><input type=\"number\" step=\"any\" name=\"segment_unloaded_%d\" value=\"\"></td>", i)
		h.raw("</tr>")
		h.raw("</tbody></table>")
		formError(h, data.Errors, "segments")
		h.raw("</fieldset>")

		h.raw("<button type=\"submit\" class=\"btn btn-primary\">Save Settings</button>")
		h.raw("</form>")
		return h.err
	})
}

func numberField(h *hw, name, label string, value float64, errors map[string]string) {
	h.rawf("<label for=\"%s\">", attr(name))
	h.text(label)
	h.raw("</label>")
	h.rawf("<input type=\"number\" step=\"any\" name=\"%s\" id=\"%s\" value=\"%s\">", attr(name), attr(name), num(value))
	formError(h, errors, name)
}

// ProjectSettingsPage renders the settings form inside the full shell.
func ProjectSettingsPage(data ProjectSettingsData, header HeaderData, sidebar SidebarData) templ.Component {
	return page("Estimate Settings", header, sidebar, ProjectSettingsContent(data))
}
