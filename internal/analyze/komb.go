package analyze

import (
	"strings"

	"github.com/hhojgaard/altiplan/internal/schedule"
)

// DefaultKombCodes is the shift-code set used when the combination analysis
// runs without explicit codes.
var DefaultKombCodes = []string{"100", "290"}

// KombResult reports the dates on which every code of the set co-occurs.
type KombResult struct {
	Codes []string
	// Dates qualifying, in window order.
	Dates []schedule.Date
}

// Komb finds the dates where every code in the set appears as a whole
// whitespace-separated token among that date's lines. An empty set means
// DefaultKombCodes; a non-empty set replaces the default entirely.
func Komb(lines []schedule.Line, codes []string) KombResult {
	if len(codes) == 0 {
		codes = DefaultKombCodes
	}
	wanted := make(map[string]bool, len(codes))
	for _, c := range codes {
		wanted[c] = true
	}

	type dayMatch struct {
		date  schedule.Date
		found map[string]bool
	}
	byDay := make(map[string]*dayMatch)
	var order []string

	for _, ln := range lines {
		key := ln.Date.String()
		dm, ok := byDay[key]
		if !ok {
			dm = &dayMatch{date: ln.Date, found: make(map[string]bool)}
			byDay[key] = dm
			order = append(order, key)
		}
		for _, tok := range strings.Fields(ln.Text) {
			if wanted[tok] {
				dm.found[tok] = true
			}
		}
	}

	result := KombResult{Codes: codes}
	for _, key := range order {
		if dm := byDay[key]; len(dm.found) == len(wanted) {
			result.Dates = append(result.Dates, dm.date)
		}
	}
	return result
}
