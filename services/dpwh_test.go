package services

import "testing"

func TestDPWHPart(t *testing.T) {
	tests := []struct {
		payItemNo string
		expected  string
	}{
		{"800(1)", "C"},
		{"803(1)a", "C"},
		{"899(9)", "C"},
		{"900(1)c2", "D"},
		{"902(1)a", "D"},
		{"903(2)", "D"},
		{"1000(1)", "E"},
		{"1046(2)a1", "E"},
		{"1100(10)", "F"},
		{"1208(1)", "F"},
		{"1499(1)", "F"},
		{"1500(1)", "G"},
		{"1601(1)a", "G"},
		{"100(3)a1", "A"},
		{"105(1)a", "A"},
		{"404(1)a", "A"},
		{"SPL-1", "A"},
		{"", "A"},
	}

	for _, tt := range tests {
		t.Run(tt.payItemNo, func(t *testing.T) {
			if got := DPWHPart(tt.payItemNo); got != tt.expected {
				t.Errorf("DPWHPart(%q) = %q, want %q", tt.payItemNo, got, tt.expected)
			}
		})
	}
}

func TestLeadingNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"900(1)c2", 900},
		{"1046(2)a1", 1046},
		{"404", 404},
		{"SPL-1", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := leadingNumber(tt.input); got != tt.expected {
			t.Errorf("leadingNumber(%q) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}
