package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hhojgaard/altiplan/internal/analyze"
)

// writeSummary prints the frequency table, highest count first.
func writeSummary(w io.Writer, entries []analyze.Entry) {
	fmt.Fprintln(w, "\n=== Summary (line frequency) ===")
	for _, e := range entries {
		fmt.Fprintln(w, e.Count, e.Text)
	}
}

// writeFindReport prints the per-term exact-match statistics.
func writeFindReport(w io.Writer, stats []analyze.TermStats) {
	fmt.Fprintln(w, "\n=== Find (exact match) ===")
	for _, st := range stats {
		fmt.Fprintf(w, "\nTerm: %s\n", st.Term)
		fmt.Fprintf(w, "  Total occurrences: %d\n", st.Total)
		fmt.Fprintf(w, "  Occurrences on weekend/holiday: %d\n", st.TotalWeekendOrHoliday)
		fmt.Fprintf(w, "  Distinct dates: %d\n", len(st.Dates))
		fmt.Fprintf(w, "  Distinct weekend/holiday dates: %d\n", st.WeekendOrHolidayDays)
	}
}

// writeKombReport prints the combination day count and the qualifying dates.
func writeKombReport(w io.Writer, result analyze.KombResult) {
	fmt.Fprintf(w, "\n=== Komb (%s) ===\n", strings.Join(result.Codes, "|"))
	fmt.Fprintf(w, "Days where all codes co-occur: %d\n", len(result.Dates))
	for _, d := range result.Dates {
		fmt.Fprintf(w, "  %s\n", d)
	}
}

// writeExpanded streams the expanded rows as an indented JSON array.
func writeExpanded(w io.Writer, rows []analyze.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("writing expanded output: %w", err)
	}
	return nil
}
