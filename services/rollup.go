package services

// LaborItem is one labor line of a DUPA (detailed unit price analysis).
type LaborItem struct {
	Description string
	Persons     float64
	Hours       float64
	HourlyRate  float64
}

// EquipmentItem is one equipment line of a DUPA.
type EquipmentItem struct {
	Description string
	Units       float64
	Hours       float64
	HourlyRate  float64
}

// Material price sources, in order of preference. An empty source means
// no canvass or CMPD price exists yet.
const (
	PriceSourceCanvass = "canvass"
	PriceSourceCMPD    = "cmpd"
	PriceSourceMissing = "missing"
)

// MaterialItem is one material line of a DUPA. IncludeHauling marks
// materials whose unit cost absorbs the project's hauling surcharge.
type MaterialItem struct {
	Description    string
	Unit           string
	Quantity       float64
	BasePrice      float64
	PriceSource    string
	IncludeHauling bool
}

// MaterialLine is a priced material line. A missing price does not abort
// the rollup: the line carries a zero amount and is flagged for canvass.
type MaterialLine struct {
	MaterialItem
	UnitCost        float64
	Amount          float64
	RequiresCanvass bool
}

// MarkupConfig carries the cascading DUPA percentages. Defaults follow
// the DPWH template; projects may override each one.
type MarkupConfig struct {
	OCMPercent        float64
	CPPercent         float64
	VATPercent        float64
	MinorToolsPercent float64
	MinorToolsEnabled bool
}

// DefaultMarkups returns the DPWH template percentages: OCM 15%, CP 10%,
// VAT 12%, minor tools 10% of labor.
func DefaultMarkups() MarkupConfig {
	return MarkupConfig{
		OCMPercent:        15,
		CPPercent:         10,
		VATPercent:        12,
		MinorToolsPercent: 10,
		MinorToolsEnabled: true,
	}
}

// DUPAInput bundles the resolved line items for one pay item. Rates are
// already looked up; the rollup performs no I/O and is deterministic.
type DUPAInput struct {
	PayItemNo             string
	Description           string
	Unit                  string
	Quantity              float64
	Labor                 []LaborItem
	Equipment             []EquipmentItem
	Materials             []MaterialItem
	Markups               MarkupConfig
	HaulingSurchargePerM3 float64
}

// CostBreakdown is the fully derived cost snapshot for one pay item. All
// monetary fields except TotalAmount are per unit of the pay item.
type CostBreakdown struct {
	PayItemNo          string
	Quantity           float64
	LaborCost          float64
	EquipmentCost      float64
	MinorToolsCost     float64
	MaterialCost       float64
	MaterialLines      []MaterialLine
	DirectCost         float64
	OCMCost            float64
	CPCost             float64
	SubtotalWithMarkup float64
	VATCost            float64
	TotalUnitCost      float64
	TotalAmount        float64
}

// ComputeCostBreakdown rolls one pay item's labor, equipment and material
// lines into a marked-up unit cost and total amount:
//
//	direct = labor + equipment(+minor tools) + material
//	subtotal = direct × (1 + ocm% + cp%)
//	total unit cost = subtotal × (1 + vat%)
//	total amount = total unit cost × quantity
//
// Re-running with identical inputs reproduces identical values.
func ComputeCostBreakdown(in DUPAInput) CostBreakdown {
	var laborCost float64
	for _, l := range in.Labor {
		laborCost += l.Persons * l.Hours * l.HourlyRate
	}

	var equipmentCost float64
	for _, eq := range in.Equipment {
		equipmentCost += eq.Units * eq.Hours * eq.HourlyRate
	}

	var minorTools float64
	if in.Markups.MinorToolsEnabled {
		minorTools = laborCost * in.Markups.MinorToolsPercent / 100
		equipmentCost += minorTools
	}

	var materialCost float64
	materialLines := make([]MaterialLine, 0, len(in.Materials))
	for _, m := range in.Materials {
		line := MaterialLine{MaterialItem: m}
		if m.PriceSource == "" || m.PriceSource == PriceSourceMissing {
			line.PriceSource = PriceSourceMissing
			line.RequiresCanvass = true
		} else {
			line.UnitCost = m.BasePrice
			if m.IncludeHauling && in.HaulingSurchargePerM3 > 0 {
				line.UnitCost += in.HaulingSurchargePerM3
			}
			line.Amount = m.Quantity * line.UnitCost
		}
		materialCost += line.Amount
		materialLines = append(materialLines, line)
	}

	directCost := laborCost + equipmentCost + materialCost
	ocmCost := directCost * in.Markups.OCMPercent / 100
	cpCost := directCost * in.Markups.CPPercent / 100
	subtotal := directCost + ocmCost + cpCost
	vatCost := subtotal * in.Markups.VATPercent / 100
	totalUnitCost := subtotal + vatCost

	return CostBreakdown{
		PayItemNo:          in.PayItemNo,
		Quantity:           in.Quantity,
		LaborCost:          laborCost,
		EquipmentCost:      equipmentCost,
		MinorToolsCost:     minorTools,
		MaterialCost:       materialCost,
		MaterialLines:      materialLines,
		DirectCost:         directCost,
		OCMCost:            ocmCost,
		CPCost:             cpCost,
		SubtotalWithMarkup: subtotal,
		VATCost:            vatCost,
		TotalUnitCost:      totalUnitCost,
		TotalAmount:        totalUnitCost * in.Quantity,
	}
}

// EstimateSummary aggregates the project-level totals over all pay items.
type EstimateSummary struct {
	DirectCost float64
	OCMCost    float64
	CPCost     float64
	VATCost    float64
	GrandTotal float64
	ItemCount  int
}

// SummarizeEstimate totals a set of cost breakdowns. Per-unit components
// are scaled by each item's quantity.
func SummarizeEstimate(breakdowns []CostBreakdown) EstimateSummary {
	var s EstimateSummary
	for _, b := range breakdowns {
		s.DirectCost += b.DirectCost * b.Quantity
		s.OCMCost += b.OCMCost * b.Quantity
		s.CPCost += b.CPCost * b.Quantity
		s.VATCost += b.VATCost * b.Quantity
		s.GrandTotal += b.TotalAmount
		s.ItemCount++
	}
	return s
}
