package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// EstimateRowView is one rendered estimate row: either a part group
// header (Level 0) or a priced pay item (Level 1). Monetary columns
// arrive pre-formatted.
type EstimateRowView struct {
	Level         int
	Index         string
	Description   string
	Qty           float64
	UOM           string
	DirectCost    string
	TotalUnitCost string
	Amount        string
}

// DUPAItemRow is one editable pay item in the management section.
type DUPAItemRow struct {
	ID          string
	PayItemNo   string
	Description string
	Unit        string
	Quantity    float64
}

// EstimateData feeds the estimate page: the part-grouped rows, the
// summary strip and the grand total in words.
type EstimateData struct {
	ProjectID       string
	ProjectName     string
	Items           []DUPAItemRow
	UOMOptions      []string
	Rows            []EstimateRowView
	TotalDirect     string
	TotalOCM        string
	TotalCP         string
	TotalVAT        string
	GrandTotal      string
	GrandTotalWords string
	MissingPrices   []string
}

// EstimateContent renders the estimate fragment.
func EstimateContent(data EstimateData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &hw{w: w}
		base := "/projects/" + data.ProjectID
		h.raw("<div class=\"page-head\"><h1>Cost Estimate</h1>")
		h.rawf("<div class=\"export-actions\"><a class=\"btn\" href=\"%s/estimate/export/excel\">Excel</a>", attr(base))
		h.rawf("<a class=\"btn\" href=\"%s/estimate/export/pdf\">PDF</a></div></div>", attr(base))
		for _, msg := range data.MissingPrices {
			h.raw("<p class=\"alert warning\">")
			h.text(msg)
			h.raw("</p>")
		}
		if len(data.Rows) == 0 {
			h.raw("<p class=\"empty-state\">No pay items yet. Add DUPA items to build the estimate.</p>")
		} else {
			estimateTable(h, data)
		}

		h.raw("<section class=\"pay-items\"><h2>Pay Items</h2>")
		if len(data.Items) > 0 {
			h.raw("<table class=\"data-table\"><thead><tr><th>Item No.</th><th>Description</th><th>Unit</th><th>Qty</th><th></th></tr></thead><tbody>")
			for _, item := range data.Items {
				h.rawf("<tr id=\"dupa-%s\"><td>", attr(item.ID))
				h.text(item.PayItemNo)
				h.raw("</td><td>")
				h.text(item.Description)
				h.raw("</td><td>")
				h.text(item.Unit)
				h.rawf("</td><td class=\"num\">%s</td>", num(item.Quantity))
				h.rawf("<td><button class=\"danger\" hx-delete=\"%s/dupa/%s\" hx-confirm=\"Delete this pay item?\" hx-swap=\"none\">Delete</button></td></tr>", attr(base), attr(item.ID))
			}
			h.raw("</tbody></table>")
		}
		h.rawf("<form class=\"form inline\" hx-post=\"%s/dupa\" method=\"post\" action=\"%s/dupa\">", attr(base), attr(base))
		h.raw("<input type=\"text\" name=\"pay_item_no\" placeholder=\"Item No.\" required>")
		h.raw("<input type=\"text\" name=\"description\" placeholder=\"Description\" required>")
		selectField(h, "unit", "", data.UOMOptions)
		h.raw("<input type=\"number\" step=\"any\" name=\"quantity\" placeholder=\"Qty\">")
		h.raw("<button type=\"submit\" class=\"btn\">Add Pay Item</button>")
		h.raw("</form></section>")
		return h.err
	})
}

// estimateTable renders the part-grouped rows and summary strip.
func estimateTable(h *hw, data EstimateData) {
	h.raw("<table class=\"data-table estimate-table\"><thead><tr><th>Item No.</th><th>Description</th><th>Qty</th><th>Unit</th><th>Direct Cost</th><th>Unit Cost</th><th>Amount</th></tr></thead><tbody>")
	for _, r := range data.Rows {
		if r.Level == 0 {
			h.raw("<tr class=\"part-header\"><td>")
			h.text(r.Index)
			h.raw("</td><td colspan=\"6\">")
			h.text(r.Description)
			h.raw("</td></tr>")
			continue
		}
		h.raw("<tr><td>")
		h.text(r.Index)
		h.raw("</td><td>")
		h.text(r.Description)
		h.rawf("</td><td class=\"num\">%s</td><td>", num(r.Qty))
		h.text(r.UOM)
		h.raw("</td><td class=\"num\">")
		h.text(r.DirectCost)
		h.raw("</td><td class=\"num\">")
		h.text(r.TotalUnitCost)
		h.raw("</td><td class=\"num\">")
		h.text(r.Amount)
		h.raw("</td></tr>")
	}
	h.raw("</tbody></table>")
	h.raw("<div class=\"stat-grid estimate-summary\">")
	textStat(h, "Direct cost", data.TotalDirect)
	textStat(h, "OCM", data.TotalOCM)
	textStat(h, "Contractor's profit", data.TotalCP)
	textStat(h, "VAT", data.TotalVAT)
	textStat(h, "Grand total", data.GrandTotal)
	h.raw("</div>")
	if data.GrandTotalWords != "" {
		h.raw("<p class=\"amount-words\"><em>")
		h.text(data.GrandTotalWords)
		h.raw("</em></p>")
	}
}

func textStat(h *hw, label, value string) {
	h.raw("<div class=\"stat\"><span class=\"stat-label\">")
	h.text(label)
	h.raw("</span><span class=\"stat-value\">")
	h.text(value)
	h.raw("</span></div>")
}

// EstimatePage renders the estimate inside the full shell.
func EstimatePage(data EstimateData, header HeaderData, sidebar SidebarData) templ.Component {
	return page("Cost Estimate", header, sidebar, EstimateContent(data))
}
