package analyze

import (
	"testing"
	"time"

	"github.com/hhojgaard/altiplan/internal/schedule"
)

func lineOn(day int, text string) schedule.Line {
	return schedule.Line{Date: schedule.NewDate(2025, time.January, day), Text: text}
}

func TestSummarizeOrdering(t *testing.T) {
	lines := []schedule.Line{
		lineOn(1, "bf"),
		lineOn(1, "VITA dagtid"),
		lineOn(2, "VITA dagtid"),
		lineOn(3, "O-an"),
		lineOn(3, "bf"),
		lineOn(4, "BTY-sen"),
	}

	got := Summarize(lines, Options{})
	want := []Entry{
		{"bf", 2},
		{"VITA dagtid", 2},
		{"O-an", 1},
		{"BTY-sen", 1},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %+v, expected %+v", i, got[i], want[i])
		}
	}
}

func TestSummarizeDefaultFilters(t *testing.T) {
	lines := []schedule.Line{
		lineOn(1, "VITA dagtid"),
		lineOn(1, "08:00 - 16:00"), // time line
		lineOn(1, "290"),           // bare code
		lineOn(1, "- 700"),         // operator-led
	}

	got := Summarize(lines, Options{})
	if len(got) != 1 || got[0].Text != "VITA dagtid" {
		t.Fatalf("expected only the label to survive the default filters, got %+v", got)
	}
}

// A pure "290" line and an "08:00-16:00" line on the same day both appear
// with count 1 when both filters are disabled.
func TestSummarizeNoFilterIncludeTime(t *testing.T) {
	lines := []schedule.Line{
		lineOn(10, "290"),
		lineOn(10, "08:00-16:00"),
	}

	got := Summarize(lines, Options{IncludeTime: true, NoFilter: true})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %+v", got)
	}
	for _, e := range got {
		if e.Count != 1 {
			t.Errorf("entry %q: count %d, expected 1", e.Text, e.Count)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil, Options{}); len(got) != 0 {
		t.Errorf("expected empty summary, got %+v", got)
	}
}
