package expand

import (
	"reflect"
	"testing"
	"time"

	"github.com/hhojgaard/altiplan/internal/schedule"
)

func day(markup string) schedule.DayRecord {
	return schedule.DayRecord{
		Date:    schedule.NewDate(2025, time.January, 15),
		Markup:  markup,
		Weekend: false,
		Holiday: true,
	}
}

func texts(lines []schedule.Line) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = ln.Text
	}
	return out
}

func TestSimpleExpand(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []string
	}{
		{
			name:   "two break markers yield three fragments",
			markup: "BTY-an<br/>07:45 - 15:30<br/>100",
			want:   []string{"BTY-an", "07:45 - 15:30", "100"},
		},
		{
			name:   "break tag variants",
			markup: "a<br>b</br>c<BR/>d",
			want:   []string{"a", "b", "c", "d"},
		},
		{
			name:   "literal newlines",
			markup: "a\r\nb\nc\rd",
			want:   []string{"a", "b", "c", "d"},
		},
		{
			name:   "empty fragments dropped",
			markup: "a<br/><br/>   <br/>b",
			want:   []string{"a", "b"},
		},
		{
			name:   "whitespace trimmed",
			markup: "  a  <br/>\tb\t",
			want:   []string{"a", "b"},
		},
		{
			name:   "zero-width runes stripped",
			markup: "VITA​ dagtid<br/>10‍0",
			want:   []string{"VITA dagtid", "100"},
		},
		{
			name:   "no structural interpretation",
			markup: "<b>bf - 700</b>",
			want:   []string{"<b>bf - 700</b>"},
		},
		{
			name:   "empty markup",
			markup: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(Simple{}.Expand(day(tt.markup)))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestStructuralExpand(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []string
	}{
		{
			name:   "break markers",
			markup: "bf<br/>700",
			want:   []string{"bf", "700"},
		},
		{
			name:   "block boundaries in source order",
			markup: "<div>first<br>second</div><p>third</p>fourth",
			want:   []string{"first", "second", "third", "fourth"},
		},
		{
			name:   "entities decoded",
			markup: "l&oslash;n &amp; ferie",
			want:   []string{"løn & ferie"},
		},
		{
			name:   "unclosed break variant",
			markup: "a</br>b",
			want:   []string{"a", "b"},
		},
		{
			name:   "inline tags do not split",
			markup: "<span>VITA </span>nat",
			want:   []string{"VITA nat"},
		},
		{
			name:   "label before time range",
			markup: "VITA dagtid 07:45 - 15:30 100",
			want:   []string{"VITA dagtid", "07:45 - 15:30 100"},
		},
		{
			name:   "double shift on one line",
			markup: "07:45 - 15:30 100 15:30 - 22:00 100",
			want:   []string{"07:45 - 15:30 100", "15:30 - 22:00 100"},
		},
		{
			name:   "dash pair",
			markup: "bf -   700",
			want:   []string{"bf", "- 700"},
		},
		{
			name:   "hyphenated code kept whole",
			markup: "BTY-sen 07:00 - 15:00",
			want:   []string{"BTY-sen", "07:00 - 15:00"},
		},
		{
			name:   "dash pair not split on time lines",
			markup: "07:45 - 15:30",
			want:   []string{"07:45 - 15:30"},
		},
		{
			name:   "empty markup",
			markup: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(Structural{}.Expand(day(tt.markup)))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestExpandInheritsDayFields(t *testing.T) {
	d := day("a<br/>b")

	for _, exp := range []Expander{Simple{}, Structural{}} {
		lines := exp.Expand(d)
		if len(lines) != 2 {
			t.Fatalf("%T: expected 2 lines, got %d", exp, len(lines))
		}
		for _, ln := range lines {
			if !ln.Date.Equal(d.Date) || ln.Weekend != d.Weekend || ln.Holiday != d.Holiday {
				t.Errorf("%T: line %q lost the day's date or flags", exp, ln.Text)
			}
			if ln.Markup != d.Markup {
				t.Errorf("%T: line %q lost the source markup", exp, ln.Text)
			}
		}
	}
}

func TestNewSelectsMode(t *testing.T) {
	if _, ok := New(true).(Simple); !ok {
		t.Error("New(true) should return the simple expander")
	}
	if _, ok := New(false).(Structural); !ok {
		t.Error("New(false) should return the structural expander")
	}
}
