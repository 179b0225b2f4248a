package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
	"costestimation/templates"
)

// computeEstimate rolls up every pay item of a project: the hauling
// surcharge feeds the material unit costs, each DUPA gets its cascading
// markups, and the derived breakdowns replace the stored snapshots.
func computeEstimate(app *pocketbase.PocketBase, projectID string) ([]services.DUPAInput, []services.CostBreakdown, error) {
	_, markups, hauling := loadTakeoffSettings(app, projectID)

	var haulSurcharge float64
	if hauling.EquipmentCapacityM3 > 0 {
		surcharge, err := services.HaulingSurcharge(hauling)
		if err != nil {
			log.Printf("estimate: hauling surcharge for %s unavailable: %v", projectID, err)
		} else {
			haulSurcharge = surcharge
		}
	}

	inputs, err := loadDUPAInputs(app, projectID, markups, haulSurcharge)
	if err != nil {
		return nil, nil, err
	}

	breakdowns := make([]services.CostBreakdown, 0, len(inputs))
	for _, in := range inputs {
		breakdowns = append(breakdowns, services.ComputeCostBreakdown(in))
	}

	if err := storeCostBreakdowns(app, projectID, breakdowns); err != nil {
		return nil, nil, err
	}
	return inputs, breakdowns, nil
}

// storeCostBreakdowns replaces a project's stored breakdown snapshots.
func storeCostBreakdowns(app *pocketbase.PocketBase, projectID string, breakdowns []services.CostBreakdown) error {
	col, err := app.FindCollectionByNameOrId("cost_breakdowns")
	if err != nil {
		return err
	}

	existing, err := app.FindRecordsByFilter(col, "project = {:pid}", "", 0, 0, map[string]any{"pid": projectID})
	if err == nil {
		for _, rec := range existing {
			if err := app.Delete(rec); err != nil {
				return err
			}
		}
	}

	itemsByPayNo := make(map[string]string)
	if items, err := findProjectRecords(app, "dupa_items", projectID, ""); err == nil {
		for _, item := range items {
			itemsByPayNo[item.GetString("pay_item_no")] = item.Id
		}
	}

	for _, b := range breakdowns {
		rec := core.NewRecord(col)
		rec.Set("project", projectID)
		rec.Set("dupa_item", itemsByPayNo[b.PayItemNo])
		rec.Set("pay_item_no", b.PayItemNo)
		rec.Set("direct_cost", b.DirectCost)
		rec.Set("ocm_cost", b.OCMCost)
		rec.Set("cp_cost", b.CPCost)
		rec.Set("vat_cost", b.VATCost)
		rec.Set("total_unit_cost", b.TotalUnitCost)
		rec.Set("total_amount", b.TotalAmount)
		rec.Set("breakdown", b)
		if err := app.Save(rec); err != nil {
			return err
		}
	}
	return nil
}

// estimateView builds the page data from the computed rows and summary.
func estimateView(projectID, projectName string, inputs []services.DUPAInput, breakdowns []services.CostBreakdown) templates.EstimateData {
	rows := services.BuildExportRows(inputs, breakdowns)
	summary := services.SummarizeEstimate(breakdowns)

	data := templates.EstimateData{
		ProjectID:   projectID,
		ProjectName: projectName,
		TotalDirect: services.FormatPHP(summary.DirectCost),
		TotalOCM:    services.FormatPHP(summary.OCMCost),
		TotalCP:     services.FormatPHP(summary.CPCost),
		TotalVAT:    services.FormatPHP(summary.VATCost),
		GrandTotal:  services.FormatPHP(summary.GrandTotal),
	}
	if summary.ItemCount > 0 {
		data.GrandTotalWords = services.AmountToWords(summary.GrandTotal)
	}

	for _, r := range rows {
		view := templates.EstimateRowView{
			Level:       r.Level,
			Index:       r.Index,
			Description: r.Description,
			Qty:         r.Qty,
			UOM:         r.UOM,
		}
		if r.Level == 1 {
			view.DirectCost = services.FormatPHP(r.DirectCost)
			view.TotalUnitCost = services.FormatPHP(r.TotalUnitCost)
			view.Amount = services.FormatPHP(r.Amount)
		}
		data.Rows = append(data.Rows, view)
	}

	for _, b := range breakdowns {
		for _, line := range b.MaterialLines {
			if line.RequiresCanvass {
				data.MissingPrices = append(data.MissingPrices,
					fmt.Sprintf("%s: %q has no canvass or CMPD price", b.PayItemNo, line.Description))
			}
		}
	}
	return data
}

func HandleEstimateView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("estimate: could not find project %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		inputs, breakdowns, err := computeEstimate(app, projectID)
		if err != nil {
			log.Printf("estimate: failed to compute estimate for %s: %v", projectID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		data := estimateView(projectID, project.GetString("name"), inputs, breakdowns)
		data.UOMOptions = services.UOMOptions
		if items, err := findProjectRecords(app, "dupa_items", projectID, "pay_item_no"); err == nil {
			for _, item := range items {
				data.Items = append(data.Items, templates.DUPAItemRow{
					ID:          item.Id,
					PayItemNo:   item.GetString("pay_item_no"),
					Description: item.GetString("description"),
					Unit:        item.GetString("unit"),
					Quantity:    item.GetFloat("quantity"),
				})
			}
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.EstimateContent(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.EstimatePage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
