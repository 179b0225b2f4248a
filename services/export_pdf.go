package services

import (
	"fmt"
	"math"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF creates a PDF document from estimate export data using
// maroto/v2. It returns the raw PDF bytes or an error.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	// --- Header Section ---
	addHeader(m, data)

	// --- Table Header ---
	addTableHeader(m)

	// --- Table Body ---
	for _, r := range data.Rows {
		addTableRow(m, r)
	}

	// --- Summary Section ---
	addSummary(m, data)

	// --- Footer with generated date ---
	addFooter(m, data)

	// Generate PDF bytes
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addHeader adds the title, location, and date to the PDF.
func addHeader(m core.Maroto, data ExportData) {
	// Title row
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	// Location and date row
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Location: %s", data.Location), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addTableHeader adds the column header row for the estimate table.
func addTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("Item No.", headerText),
			).WithStyle(&headerCell),
			col.New(4).Add(
				text.New("Description", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Qty", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Unit", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Direct Cost", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Unit Cost", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Amount", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addTableRow adds a single data row, styled as a part header or pay item.
func addTableRow(m core.Maroto, r ExportRow) {
	var cellStyle *props.Cell
	var textSize float64 = 7
	var textStyle fontstyle.Type = fontstyle.Normal
	descPrefix := ""

	switch r.Level {
	case 0:
		// Part header: bold over light gray.
		textStyle = fontstyle.Bold
		textSize = 8
		bg := &props.Color{Red: 235, Green: 235, Blue: 235}
		cellStyle = &props.Cell{BackgroundColor: bg}
	case 1:
		// Pay item: indented, white background.
		descPrefix = "  "
	}

	baseText := props.Text{
		Size:  textSize,
		Style: textStyle,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	qtyStr := ""
	uomStr := ""
	directStr := ""
	unitCostStr := ""
	amountStr := ""
	if r.Level == 1 {
		qtyStr = formatQty(r.Qty)
		uomStr = r.UOM
		directStr = FormatPHP(r.DirectCost)
		unitCostStr = FormatPHP(r.TotalUnitCost)
		amountStr = FormatPHP(r.Amount)
	}

	// Build columns.
	colIndex := col.New(1).Add(text.New(r.Index, baseText))
	colDesc := col.New(4).Add(text.New(descPrefix+r.Description, leftText))
	colQty := col.New(1).Add(text.New(qtyStr, rightText))
	colUOM := col.New(1).Add(text.New(uomStr, baseText))
	colDirect := col.New(1).Add(text.New(directStr, rightText))
	colUnitCost := col.New(2).Add(text.New(unitCostStr, rightText))
	colAmount := col.New(2).Add(text.New(amountStr, rightText))

	// Apply background style if needed.
	if cellStyle != nil {
		colIndex = colIndex.WithStyle(cellStyle)
		colDesc = colDesc.WithStyle(cellStyle)
		colQty = colQty.WithStyle(cellStyle)
		colUOM = colUOM.WithStyle(cellStyle)
		colDirect = colDirect.WithStyle(cellStyle)
		colUnitCost = colUnitCost.WithStyle(cellStyle)
		colAmount = colAmount.WithStyle(cellStyle)
	}

	m.AddRows(
		row.New(7).Add(
			colIndex,
			colDesc,
			colQty,
			colUOM,
			colDirect,
			colUnitCost,
			colAmount,
		),
	)
}

// addSummary adds the markup cascade and grand total at the bottom.
func addSummary(m core.Maroto, data ExportData) {
	// Spacer before summary
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	lines := []struct {
		label string
		value float64
	}{
		{"Total Direct Cost", data.Summary.DirectCost},
		{"Overhead, Contingencies & Miscellaneous", data.Summary.OCMCost},
		{"Contractor's Profit", data.Summary.CPCost},
		{"Value Added Tax", data.Summary.VATCost},
		{"Grand Total", data.Summary.GrandTotal},
	}
	for _, line := range lines {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(line.label, labelStyle),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(FormatPHP(line.value), valueStyle),
				).WithStyle(summaryCell),
			),
		)
	}

	// Grand total in words for the signature block.
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(AmountToWords(data.Summary.GrandTotal), props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Align: align.Right,
				}),
			),
		),
	)
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}

// formatQty returns a string representation of the quantity value.
// Whole numbers are formatted without decimals; fractional values get 2 decimal places.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
