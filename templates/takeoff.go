package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// TakeoffLineRow is one computed takeoff line on the takeoff page.
type TakeoffLineRow struct {
	LineID      string
	Source      string
	Trade       string
	ResourceKey string
	Quantity    float64
	Unit        string
	Formula     string
}

// TradeTotal aggregates takeoff quantities per trade for the summary
// strip above the line table.
type TradeTotal struct {
	Trade    string
	Quantity float64
	Unit     string
}

// TakeoffData feeds the takeoff page: stored lines plus the errors and
// warnings of the latest run.
type TakeoffData struct {
	ProjectID string
	Lines     []TakeoffLineRow
	Totals    []TradeTotal
	Errors    []string
	Warnings  []string
	LastRun   string
}

// TakeoffContent renders the takeoff fragment.
func TakeoffContent(data TakeoffData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		base := "/projects/" + data.ProjectID
		h.raw("<div class=\"page-head\"><h1>Quantity Takeoff</h1>")
		h.rawf("<button class=\"btn btn-primary\" hx-post=\"%s/takeoff/run\" hx-target=\"#content\" hx-swap=\"innerHTML\">Run Takeoff</button></div>", attr(base))
		if data.LastRun != "" {
			h.raw("<p class=\"muted\">Last run: ")
			h.text(data.LastRun)
			h.raw("</p>")
		}
		for _, msg := range data.Errors {
			h.raw("<p class=\"alert error\">")
			h.text(msg)
			h.raw("</p>")
		}
		for _, msg := range data.Warnings {
			h.raw("<p class=\"alert warning\">")
			h.text(msg)
			h.raw("</p>")
		}
		if len(data.Totals) > 0 {
			h.raw("<div class=\"trade-totals\">")
			for _, t := range data.Totals {
				h.raw("<div class=\"stat\"><span class=\"stat-label\">")
				h.text(t.Trade)
				h.rawf("</span><span class=\"stat-value\">%s %s</span></div>", num(t.Quantity), attr(t.Unit))
			}
			h.raw("</div>")
		}
		if len(data.Lines) == 0 {
			h.raw("<p class=\"empty-state\">No takeoff lines. Run a takeoff to compute quantities.</p>")
			return h.err
		}
		h.raw("<table class=\"data-table\"><thead><tr><th>Source</th><th>Trade</th><th>Resource</th><th>Qty</th><th>Unit</th><th>Formula</th></tr></thead><tbody>")
		for _, l := range data.Lines {
			h.rawf("<tr id=\"line-%s\"><td>", attr(l.LineID))
			h.text(l.Source)
			h.raw("</td><td>")
			h.text(l.Trade)
			h.raw("</td><td>")
			h.text(l.ResourceKey)
			h.rawf("</td><td class=\"num\">%s</td><td>", num(l.Quantity))
			h.text(l.Unit)
			h.raw("</td><td class=\"formula\">")
			h.text(l.Formula)
			h.raw("</td></tr>")
		}
		h.raw("</tbody></table>")
		return h.err
	})
}

// TakeoffPage renders the takeoff page inside the full shell.
func TakeoffPage(data TakeoffData, header HeaderData, sidebar SidebarData) templ.Component {
	return page("Takeoff", header, sidebar, TakeoffContent(data))
}
