package services

import "strconv"

// partRange maps a span of leading pay-item numbers to a DPWH part code.
type partRange struct {
	min  int
	max  int
	part string
}

// dpwhPartRanges is the static prefix table shared by the engine and its
// callers for grouping BOQ lines. Item numbers outside every range fall
// into part A.
var dpwhPartRanges = []partRange{
	{800, 899, "C"},
	{900, 999, "D"},
	{1000, 1099, "E"},
	{1100, 1499, "F"},
}

// DPWHPart classifies a pay-item number (e.g. "900(1)a") by its leading
// numeric prefix. Numbers at or above 1500 map to part G; anything
// unclassifiable maps to part A.
func DPWHPart(payItemNo string) string {
	prefix := leadingNumber(payItemNo)
	for _, r := range dpwhPartRanges {
		if prefix >= r.min && prefix <= r.max {
			return r.part
		}
	}
	if prefix >= 1500 {
		return "G"
	}
	return "A"
}

// leadingNumber parses the run of digits at the start of an item number.
func leadingNumber(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
