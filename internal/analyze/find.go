package analyze

import "github.com/hhojgaard/altiplan/internal/schedule"

// TermStats holds the per-term results of an exact-match search.
type TermStats struct {
	Term                  string
	Total                 int
	TotalWeekendOrHoliday int
	// Dates are the distinct dates carrying the term, in window order.
	Dates                []schedule.Date
	WeekendOrHolidayDays int
}

// FindTerms counts exact, case-sensitive matches of each term across the
// lines. Results come back in term order; an empty term set yields nothing.
func FindTerms(lines []schedule.Line, terms []string) []TermStats {
	if len(terms) == 0 {
		return nil
	}

	index := make(map[string]int, len(terms))
	stats := make([]TermStats, len(terms))
	seen := make([]map[string]bool, len(terms))
	seenWOH := make([]map[string]bool, len(terms))
	for i, term := range terms {
		index[term] = i
		stats[i].Term = term
		seen[i] = make(map[string]bool)
		seenWOH[i] = make(map[string]bool)
	}

	for _, ln := range lines {
		i, ok := index[ln.Text]
		if !ok {
			continue
		}
		stats[i].Total++

		key := ln.Date.String()
		if !seen[i][key] {
			seen[i][key] = true
			stats[i].Dates = append(stats[i].Dates, ln.Date)
		}
		if ln.Weekend || ln.Holiday {
			stats[i].TotalWeekendOrHoliday++
			if !seenWOH[i][key] {
				seenWOH[i][key] = true
				stats[i].WeekendOrHolidayDays++
			}
		}
	}
	return stats
}
