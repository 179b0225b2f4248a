package services

// ExportRow represents a single row in the estimate export: either a part
// group header or one priced pay item.
type ExportRow struct {
	Level         int    // 0 = part header, 1 = pay item
	Index         string // part code ("C") or item number ("900(1)a")
	Description   string
	Qty           float64
	UOM           string
	DirectCost    float64 // per unit
	TotalUnitCost float64 // per unit, with markups and VAT
	Amount        float64
}

// ExportData holds all data needed for an estimate export.
type ExportData struct {
	Title       string
	Location    string
	CreatedDate string
	Rows        []ExportRow
	Summary     EstimateSummary
}

// BuildExportRows groups cost breakdowns by DPWH part and flattens them
// into export rows with the part headers in place. Descriptions and units
// are looked up from the paired inputs by pay item number.
func BuildExportRows(inputs []DUPAInput, breakdowns []CostBreakdown) []ExportRow {
	descriptions := make(map[string]DUPAInput, len(inputs))
	for _, in := range inputs {
		descriptions[in.PayItemNo] = in
	}

	byPart := make(map[string][]CostBreakdown)
	for _, b := range breakdowns {
		part := DPWHPart(b.PayItemNo)
		byPart[part] = append(byPart[part], b)
	}

	var rows []ExportRow
	for _, part := range []string{"A", "C", "D", "E", "F", "G"} {
		items := byPart[part]
		if len(items) == 0 {
			continue
		}
		rows = append(rows, ExportRow{Level: 0, Index: part, Description: "Part " + part})
		for _, b := range items {
			in := descriptions[b.PayItemNo]
			rows = append(rows, ExportRow{
				Level:         1,
				Index:         b.PayItemNo,
				Description:   in.Description,
				Qty:           b.Quantity,
				UOM:           in.Unit,
				DirectCost:    b.DirectCost,
				TotalUnitCost: b.TotalUnitCost,
				Amount:        b.TotalAmount,
			})
		}
	}
	return rows
}
