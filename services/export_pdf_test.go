package services

import (
	"testing"
)

func TestGeneratePDF_BasicEstimate(t *testing.T) {
	data := ExportData{
		Title:       "Test Estimate PDF",
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

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGeneratePDF_EmptyRows(t *testing.T) {
	data := ExportData{
		Title:       "Empty Estimate PDF",
		CreatedDate: "2026-08-29",
		Rows:        []ExportRow{},
	}

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}

func TestGeneratePDF_MultiplePartGroups(t *testing.T) {
	data := ExportData{
		Title:       "Multi Part PDF",
		CreatedDate: "2026-08-29",
		Rows: []ExportRow{
			{Level: 0, Index: "C", Description: "Part C"},
			{Level: 1, Index: "803(1)a", Description: "Structure Excavation", Qty: 20, UOM: "cu.m"},
			{Level: 0, Index: "D", Description: "Part D"},
			{Level: 1, Index: "902(1)a", Description: "Reinforcing Steel", Qty: 1500, UOM: "kg"},
		},
		Summary: EstimateSummary{GrandTotal: 250000, ItemCount: 2},
	}

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"whole number", 10, "10"},
		{"zero", 0, "0"},
		{"decimal", 10.5, "10.50"},
		{"small decimal", 0.25, "0.25"},
		{"large whole", 1000, "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatQty(tt.input)
			if got != tt.want {
				t.Errorf("formatQty(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
