package analyze

import (
	"encoding/json"

	"github.com/hhojgaard/altiplan/internal/schedule"
)

// Row is one expanded line in export order. It marshals as the JSON tuple
// [date, text, weekend, holiday, markup] for downstream tooling.
type Row schedule.Line

func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Date, r.Text, r.Weekend, r.Holiday, r.Markup})
}

// Export flattens the lines into export rows, preserving chronological and
// intra-day order.
func Export(lines []schedule.Line) []Row {
	rows := make([]Row, len(lines))
	for i, ln := range lines {
		rows[i] = Row(ln)
	}
	return rows
}
