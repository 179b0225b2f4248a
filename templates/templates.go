// Package templates renders the HTML shell and page fragments served to
// HTMX. Components are hand-built templ.Component values so handlers can
// compose pages and partials the same way.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// ActiveProject identifies the project selected via the active_project
// cookie.
type ActiveProject struct {
	ID   string
	Name string
}

// ProjectSelectorItem is one entry in the header's project dropdown.
type ProjectSelectorItem struct {
	ID       string
	Name     string
	Location string
	IsActive bool
}

// HeaderData feeds the top bar: the active project plus the selector list.
type HeaderData struct {
	ActiveProject *ActiveProject
	Projects      []ProjectSelectorItem
}

// SidebarData feeds the per-project navigation. Counts are shown as badges
// next to the corresponding links.
type SidebarData struct {
	ActiveProject    *ActiveProject
	ActivePath       string
	ElementCount     int
	TakeoffLineCount int
	DUPACount        int
}

// hw accumulates HTML output, short-circuiting after the first write error.
type hw struct {
	w   io.Writer
	err error
}

func (h *hw) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *hw) text(s string) {
	h.raw(html.EscapeString(s))
}

func (h *hw) rawf(format string, args ...any) {
	h.raw(fmt.Sprintf(format, args...))
}

// num renders a float without trailing zero noise.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	return s
}

func attr(s string) string {
	return html.EscapeString(s)
}

// page wraps a content component in the full document shell: head, header
// with project selector, sidebar and the toast listener.
func page(title string, header HeaderData, sidebar SidebarData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		h.raw("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		h.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		h.raw("<title>")
		h.text(title)
		h.raw(" · Cost Estimation</title>")
		h.raw("<script src=\"/static/js/htmx.min.js\"></script>")
		h.raw("<link rel=\"stylesheet\" href=\"/static/css/app.css\">")
		h.raw("</head><body hx-boost=\"true\">")
		if h.err != nil {
			return h.err
		}
		if err := pageHeader(header).Render(ctx, w); err != nil {
			return err
		}
		h.raw("<div class=\"shell\">")
		if h.err != nil {
			return h.err
		}
		if err := pageSidebar(sidebar).Render(ctx, w); err != nil {
			return err
		}
		h.raw("<main id=\"content\" class=\"content\">")
		if h.err != nil {
			return h.err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		h.raw("</main></div>")
		h.raw("<div id=\"toast-container\"></div>")
		h.raw("<script src=\"/static/js/toast.js\"></script>")
		h.raw("</body></html>")
		return h.err
	})
}

func pageHeader(data HeaderData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		h.raw("<header class=\"topbar\"><a class=\"brand\" href=\"/projects\">Cost Estimation</a>")
		h.raw("<div class=\"project-selector\">")
		if data.ActiveProject != nil {
			h.raw("<span class=\"active-project-name\">")
			h.text(data.ActiveProject.Name)
			h.raw("</span>")
		} else {
			h.raw("<span class=\"active-project-name muted\">No active project</span>")
		}
		if len(data.Projects) > 0 {
			h.raw("<ul class=\"project-dropdown\">")
			for _, p := range data.Projects {
				cls := "project-option"
				if p.IsActive {
					cls += " active"
				}
				h.rawf("<li class=\"%s\"><button hx-post=\"/projects/%s/activate\" hx-swap=\"none\">", cls, attr(p.ID))
				h.text(p.Name)
				if p.Location != "" {
					h.raw("<small>")
					h.text(p.Location)
					h.raw("</small>")
				}
				h.raw("</button></li>")
			}
			h.raw("</ul>")
		}
		h.raw("</div></header>")
		return h.err
	})
}

func pageSidebar(data SidebarData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		h.raw("<nav class=\"sidebar\"><ul>")
		sidebarLink(h, data.ActivePath, "/projects", "Projects", -1)
		if data.ActiveProject != nil {
			base := "/projects/" + data.ActiveProject.ID
			sidebarLink(h, data.ActivePath, base, "Dashboard", -1)
			sidebarLink(h, data.ActivePath, base+"/elements", "Elements", data.ElementCount)
			sidebarLink(h, data.ActivePath, base+"/takeoff", "Takeoff", data.TakeoffLineCount)
			sidebarLink(h, data.ActivePath, base+"/roof", "Roof", -1)
			sidebarLink(h, data.ActivePath, base+"/truss", "Truss", -1)
			sidebarLink(h, data.ActivePath, base+"/estimate", "Estimate", data.DUPACount)
			sidebarLink(h, data.ActivePath, base+"/settings", "Settings", -1)
		}
		h.raw("</ul></nav>")
		return h.err
	})
}

func sidebarLink(h *hw, activePath, href, label string, count int) {
	cls := "nav-link"
	if activePath == href {
		cls += " current"
	}
	h.rawf("<li><a class=\"%s\" href=\"%s\">", cls, attr(href))
	h.text(label)
	if count >= 0 {
		h.rawf("<span class=\"badge\">%d</span>", count)
	}
	h.raw("</a></li>")
}

// formError renders the inline validation message for a field, if any.
func formError(h *hw, errors map[string]string, field string) {
	if msg, ok := errors[field]; ok && msg != "" {
		h.raw("<p class=\"field-error\">")
		h.text(msg)
		h.raw("</p>")
	}
}

// selectField renders a select input with the given options, marking the
// selected one.
func selectField(h *hw, name, selected string, options []string) {
	h.rawf("<select name=\"%s\" id=\"%s\">", attr(name), attr(name))
	for _, opt := range options {
		if opt == selected {
			h.rawf("<option value=\"%s\" selected>", attr(opt))
		} else {
			h.rawf("<option value=\"%s\">", attr(opt))
		}
		h.text(opt)
		h.raw("</option>")
	}
	h.raw("</select>")
}
