package services

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateExcel_BasicEstimate(t *testing.T) {
	data := ExportData{
		Title:       "Test Estimate",
		Location:    "Brgy. San Isidro, Tagum City",
		CreatedDate: "2026-08-29",
		Rows: []ExportRow{
			{Level: 0, Index: "D", Description: "Part D"},
			{Level: 1, Index: "900(1)c2", Description: "Structural Concrete", Qty: 12.5, UOM: "cu.m", DirectCost: 8260, TotalUnitCost: 11564, Amount: 144550},
		},
		Summary: EstimateSummary{
			DirectCost: 103250,
			OCMCost:    15487.5,
			CPCost:     10325,
			VATCost:    15487.5,
			GrandTotal: 144550,
			ItemCount:  1,
		},
	}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}

	// Verify it's a valid Excel file
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	// Check sheet name
	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Test Estimate" {
		t.Errorf("expected sheet name 'Test Estimate', got %v", sheets)
	}

	// Check title cell
	title, _ := f.GetCellValue(sheets[0], "A1")
	if title != "Test Estimate" {
		t.Errorf("expected title 'Test Estimate', got %q", title)
	}

	// Row 6 = part header, row 7 = indented pay item.
	partDesc, _ := f.GetCellValue(sheets[0], "B6")
	if partDesc != "Part D" {
		t.Errorf("part header desc = %q, want 'Part D'", partDesc)
	}
	itemDesc, _ := f.GetCellValue(sheets[0], "B7")
	if itemDesc != "  Structural Concrete" {
		t.Errorf("pay item desc = %q, want '  Structural Concrete'", itemDesc)
	}

	// Part headers carry no amounts.
	partAmount, _ := f.GetCellValue(sheets[0], "G6")
	if partAmount != "" {
		t.Errorf("part header amount = %q, want empty", partAmount)
	}
	itemAmount, _ := f.GetCellValue(sheets[0], "G7")
	if itemAmount != FormatPHP(144550) {
		t.Errorf("pay item amount = %q, want %q", itemAmount, FormatPHP(144550))
	}
}

func TestGenerateExcel_EmptyRows(t *testing.T) {
	data := ExportData{
		Title:       "Empty Estimate",
		CreatedDate: "2026-08-29",
		Rows:        []ExportRow{},
	}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}
}

func TestGenerateExcel_LongTitle(t *testing.T) {
	data := ExportData{
		Title:       "This is a very long title that exceeds thirty one characters",
		CreatedDate: "2026-08-29",
		Rows:        []ExportRow{},
	}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets[0]) > 31 {
		t.Errorf("sheet name exceeds 31 chars: %d", len(sheets[0]))
	}
}

func TestGenerateExcel_EmptyTitle(t *testing.T) {
	data := ExportData{
		Title:       "",
		CreatedDate: "2026-08-29",
		Rows:        []ExportRow{},
	}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheets[0] != "Estimate" {
		t.Errorf("expected default sheet name 'Estimate', got %q", sheets[0])
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"normal text", "Hello", "Hello"},
		{"starts with equals", "=SUM(A1:A10)", "'=SUM(A1:A10)"},
		{"starts with plus", "+1234", "'+1234"},
		{"starts with minus", "-100", "'-100"},
		{"starts with at", "@import", "'@import"},
		{"starts with tab", "\tdata", "'\tdata"},
		{"starts with pipe", "|command", "'|command"},
		{"starts with carriage return", "\rdata", "'\rdata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeExcelCell(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestThinBorders(t *testing.T) {
	borders := thinBorders()
	if len(borders) != 4 {
		t.Errorf("thinBorders() returned %d borders, want 4", len(borders))
	}

	sides := map[string]bool{"left": false, "top": false, "bottom": false, "right": false}
	for _, b := range borders {
		sides[b.Type] = true
		if b.Style != 1 {
			t.Errorf("border %s style = %d, want 1 (thin)", b.Type, b.Style)
		}
	}
	for side, found := range sides {
		if !found {
			t.Errorf("missing border side: %s", side)
		}
	}
}
