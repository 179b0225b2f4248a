package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// HandleDUPACreate adds a new pay item to the project. The item starts with
// empty labor, equipment and materials lists which are filled in later.
func HandleDUPACreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing project ID")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		payItemNo := strings.TrimSpace(e.Request.FormValue("pay_item_no"))
		if payItemNo == "" {
			return ErrorToast(e, http.StatusBadRequest, "Pay item number is required")
		}
		description := strings.TrimSpace(e.Request.FormValue("description"))
		if description == "" {
			return ErrorToast(e, http.StatusBadRequest, "Description is required")
		}
		unit := e.Request.FormValue("unit")
		if !validUOM(unit) {
			return ErrorToast(e, http.StatusBadRequest, "Invalid unit of measure")
		}

		existing, _ := app.FindRecordsByFilter(
			"dupa_items",
			"project = {:pid} && pay_item_no = {:no}",
			"", 1, 0,
			map[string]any{"pid": projectID, "no": payItemNo},
		)
		if len(existing) > 0 {
			return ErrorToast(e, http.StatusBadRequest, "A pay item with this number already exists")
		}

		col, err := app.FindCollectionByNameOrId("dupa_items")
		if err != nil {
			log.Printf("dupa: could not find dupa_items collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("pay_item_no", payItemNo)
		record.Set("description", description)
		record.Set("unit", unit)
		record.Set("quantity", formFloat(e, "quantity"))
		record.Set("labor", []map[string]any{})
		record.Set("equipment", []map[string]any{})
		record.Set("materials", []map[string]any{})

		if err := app.Save(record); err != nil {
			log.Printf("dupa: could not save pay item: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", fmt.Sprintf("Pay item %s added", payItemNo))
		e.Response.Header().Set("HX-Redirect", fmt.Sprintf("/projects/%s/estimate", projectID))
		return e.String(http.StatusOK, "")
	}
}

func HandleDUPADelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		dupaID := e.Request.PathValue("dupaId")
		if projectID == "" || dupaID == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing pay item ID")
		}

		record, err := app.FindRecordById("dupa_items", dupaID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Pay item not found")
		}

		// Breakdowns referencing this item are stale once it is gone; they
		// get replaced on the next estimate run, but drop them now so the
		// totals never show a deleted item.
		breakdowns, _ := app.FindRecordsByFilter(
			"cost_breakdowns",
			"dupa_item = {:did}",
			"", 0, 0,
			map[string]any{"did": dupaID},
		)
		for _, b := range breakdowns {
			if err := app.Delete(b); err != nil {
				log.Printf("dupa: failed to delete breakdown %s: %v", b.Id, err)
			}
		}

		if err := app.Delete(record); err != nil {
			log.Printf("dupa: failed to delete pay item %s: %v", dupaID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to delete pay item")
		}

		SetToast(e, "success", "Pay item deleted")
		e.Response.Header().Set("HX-Redirect", fmt.Sprintf("/projects/%s/estimate", projectID))
		return e.String(http.StatusOK, "")
	}
}

func validUOM(unit string) bool {
	for _, u := range services.UOMOptions {
		if u == unit {
			return true
		}
	}
	return false
}
