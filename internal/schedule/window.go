package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidWindow marks a date window whose start falls after its end.
var ErrInvalidWindow = errors.New("invalid date window")

// Window is an inclusive date range. Start <= End always holds for windows
// built through NewWindow.
type Window struct {
	Start Date
	End   Date
}

// NewWindow builds a window, rejecting Start > End.
func NewWindow(start, end Date) (Window, error) {
	if start.After(end) {
		return Window{}, fmt.Errorf("%w: start %s is after end %s", ErrInvalidWindow, start, end)
	}
	return Window{Start: start, End: end}, nil
}

// YearWindow is the full span of one calendar year, the default window when
// the caller gives no bounds.
func YearWindow(year int) Window {
	return Window{
		Start: NewDate(year, time.January, 1),
		End:   NewDate(year, time.December, 31),
	}
}

// Contains reports whether d lies within the window, both ends inclusive.
func (w Window) Contains(d Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// FilterDays returns the day records inside the window, preserving order.
// Filtering an already-filtered collection with the same window is a no-op.
func FilterDays(days []DayRecord, w Window) []DayRecord {
	out := make([]DayRecord, 0, len(days))
	for _, d := range days {
		if w.Contains(d.Date) {
			out = append(out, d)
		}
	}
	return out
}

// FilterLines returns the lines inside the window, preserving order.
func FilterLines(lines []Line, w Window) []Line {
	out := make([]Line, 0, len(lines))
	for _, ln := range lines {
		if w.Contains(ln.Date) {
			out = append(out, ln)
		}
	}
	return out
}
