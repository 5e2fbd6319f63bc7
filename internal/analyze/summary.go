package analyze

import (
	"sort"

	"github.com/hhojgaard/altiplan/internal/expand"
	"github.com/hhojgaard/altiplan/internal/schedule"
)

// Entry is one row of the summary frequency table.
type Entry struct {
	Text  string
	Count int
}

// Options controls which lines enter the summary.
type Options struct {
	// IncludeTime keeps time lines (excluded by default).
	IncludeTime bool
	// NoFilter keeps operator-led and bare three-digit lines.
	NoFilter bool
}

// Summarize counts exact line texts across the window and orders the table
// by descending count, ties in first-seen order.
func Summarize(lines []schedule.Line, opts Options) []Entry {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for _, ln := range lines {
		if !opts.IncludeTime && expand.IsTimeLine(ln.Text) {
			continue
		}
		if !opts.NoFilter && expand.IsNoise(ln.Text) {
			continue
		}
		if _, ok := counts[ln.Text]; !ok {
			firstSeen[ln.Text] = len(firstSeen)
		}
		counts[ln.Text]++
	}

	entries := make([]Entry, 0, len(counts))
	for text, n := range counts {
		entries = append(entries, Entry{Text: text, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Text] < firstSeen[entries[j].Text]
	})
	return entries
}
