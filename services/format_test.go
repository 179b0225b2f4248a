package services

import "testing"

func TestFormatPHP(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"zero", 0, "₱0.00"},
		{"small amount", 123.45, "₱123.45"},
		{"exactly thousand", 1000, "₱1,000.00"},
		{"hundreds of thousands", 123456.78, "₱123,456.78"},
		{"millions", 1234567.89, "₱1,234,567.89"},
		{"rounding up", 99.999, "₱100.00"},
		{"negative", -5000.50, "-₱5,000.50"},
		{"single digit", 5, "₱5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPHP(tt.amount); got != tt.expected {
				t.Errorf("FormatPHP(%v) = %q, want %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"zero", 0, "Zero Pesos Only"},
		{"single digit", 5, "Five Pesos Only"},
		{"teens", 17, "Seventeen Pesos Only"},
		{"tens", 40, "Forty Pesos Only"},
		{"compound tens", 99, "Ninety Nine Pesos Only"},
		{"hundreds", 300, "Three Hundred Pesos Only"},
		{"hundred and remainder", 345, "Three Hundred and Forty Five Pesos Only"},
		{"thousands", 12000, "Twelve Thousand Pesos Only"},
		{
			"estimate-scale amount",
			913183,
			"Nine Hundred Thirteen Thousand One Hundred and Eighty Three Pesos Only",
		},
		{"millions", 2500000, "Two Million Five Hundred Thousand Pesos Only"},
		{"billions", 1000000000, "One Billion Pesos Only"},
		{"rounds to nearest peso", 99.6, "One Hundred Pesos Only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AmountToWords(tt.amount); got != tt.expected {
				t.Errorf("AmountToWords(%v) = %q, want %q", tt.amount, got, tt.expected)
			}
		})
	}
}
