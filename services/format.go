package services

import (
	"fmt"
	"math"
	"strings"
)

// FormatPHP formats a float64 amount into Philippine peso notation with
// thousands grouping (e.g. ₱1,234,567.89).
// The result always includes exactly 2 decimal places.
func FormatPHP(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	// Format with 2 decimal places.
	raw := fmt.Sprintf("%.2f", amount)

	// Split into integer and decimal parts.
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "₱" + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas into an integer string every three digits
// from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}
	return result
}

// AmountToWords converts a numeric amount to English words for estimate
// documents. Example: 913183.00 → "Nine Hundred Thirteen Thousand One
// Hundred and Eighty Three Pesos Only".
func AmountToWords(amount float64) string {
	if amount < 0 {
		return "Negative " + AmountToWords(-amount)
	}

	pesos := int64(math.Round(amount))
	if pesos == 0 {
		return "Zero Pesos Only"
	}

	return convertToWords(pesos) + " Pesos Only"
}

func convertToWords(n int64) string {
	var parts []string

	if n >= 1000000000 {
		parts = append(parts, convertUnder1000(n/1000000000)+" Billion")
		n %= 1000000000
	}
	if n >= 1000000 {
		parts = append(parts, convertUnder1000(n/1000000)+" Million")
		n %= 1000000
	}
	if n >= 1000 {
		parts = append(parts, convertUnder1000(n/1000)+" Thousand")
		n %= 1000
	}
	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+convertUnder100(n))
		} else {
			parts = append(parts, convertUnder100(n))
		}
	}

	return strings.Join(parts, " ")
}

func convertUnder1000(n int64) string {
	if n < 100 {
		return convertUnder100(n)
	}
	result := ones[n/100] + " Hundred"
	if n%100 != 0 {
		result += " " + convertUnder100(n%100)
	}
	return result
}

func convertUnder100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
