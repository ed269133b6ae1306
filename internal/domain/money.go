package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// minorUnitsPerUnit is the number of minor currency units in one whole unit.
const minorUnitsPerUnit = 100

// ParseAmount converts a decimal string in major currency units ("499",
// "100.50") into integer minor units, exactly. At most two fraction digits
// are accepted and the value must be positive. Amounts never pass through
// floating point, so sums over them cannot drift.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("amount %q must be positive", s)
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}

	// ParseUint rejects sign prefixes, so stray "+"/"-" inside either part
	// ("1.-5", "+1.00") fails instead of parsing to a wrong value.
	units, err := strconv.ParseUint(whole, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	var cents uint64
	if frac != "" {
		if len(frac) > 2 {
			return 0, fmt.Errorf("amount %q has more than two fraction digits", s)
		}
		cents, err = strconv.ParseUint(frac, 10, 63)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		if len(frac) == 1 {
			cents *= 10
		}
	}

	if units > (1<<62)/minorUnitsPerUnit {
		return 0, fmt.Errorf("amount %q out of range", s)
	}

	minor := int64(units)*minorUnitsPerUnit + int64(cents)
	if minor <= 0 {
		return 0, fmt.Errorf("amount %q must be positive", s)
	}
	return minor, nil
}

// RoundToUnit converts minor units to whole currency units, rounding half
// away from zero. Applied once, at the end of an exact integer summation.
func RoundToUnit(minor int64) int64 {
	if minor >= 0 {
		return (minor + minorUnitsPerUnit/2) / minorUnitsPerUnit
	}
	return (minor - minorUnitsPerUnit/2) / minorUnitsPerUnit
}
