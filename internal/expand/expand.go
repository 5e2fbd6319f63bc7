package expand

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hhojgaard/altiplan/internal/schedule"
)

// Expander turns a day record into its ordered content lines. The mode is
// chosen once per run; lines always come out in source order with the day's
// date and flags copied onto each one.
type Expander interface {
	Expand(day schedule.DayRecord) []schedule.Line
}

// New returns the expander for the requested mode.
func New(simple bool) Expander {
	if simple {
		return Simple{}
	}
	return Structural{}
}

var brRe = regexp.MustCompile(`(?i)<br\s*/?>`)

// Simple splits markup on <br/> variants and literal newlines only, with no
// interpretation of other markup.
type Simple struct{}

func (Simple) Expand(day schedule.DayRecord) []schedule.Line {
	var out []schedule.Line
	for _, text := range splitBreaks(day.Markup) {
		out = append(out, schedule.NewLine(day, text))
	}
	return out
}

// splitBreaks yields the non-empty trimmed fragments between break markers
// and newlines, in source order.
func splitBreaks(markup string) []string {
	// The portal emits </br> as often as <br/>.
	s := strings.ReplaceAll(markup, "</br>", "<br/>")

	var lines []string
	for _, part := range brRe.Split(s, -1) {
		part = strings.ReplaceAll(part, "\r\n", "\n")
		part = strings.ReplaceAll(part, "\r", "\n")
		for _, sub := range strings.Split(part, "\n") {
			sub = strings.TrimSpace(stripInvisible(sub))
			if sub != "" {
				lines = append(lines, sub)
			}
		}
	}
	return lines
}

// Structural parses the markup as an HTML fragment tree, flushes text lines
// at <br> and block boundaries, and applies the shift-line rules to each
// resulting line. It tolerates irregular nesting but never reorders content.
type Structural struct{}

func (Structural) Expand(day schedule.DayRecord) []schedule.Line {
	var out []schedule.Line
	for _, raw := range extractLines(day.Markup) {
		for _, text := range splitShiftLine(raw) {
			out = append(out, schedule.NewLine(day, text))
		}
	}
	return out
}

// blockBoundary elements terminate the current text line on entry and exit.
var blockBoundary = map[atom.Atom]bool{
	atom.P:   true,
	atom.Div: true,
	atom.Li:  true,
	atom.Tr:  true,
}

// extractLines walks the markup tree and collects visible text, one line per
// break or block boundary. Entities are decoded by the parser.
func extractLines(markup string) []string {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		// Irrecoverably broken markup falls back to plain break splitting.
		return splitBreaks(markup)
	}

	var lines []string
	var buf strings.Builder
	flush := func() {
		text := strings.ReplaceAll(buf.String(), "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
		for _, sub := range strings.Split(text, "\n") {
			sub = strings.TrimSpace(stripInvisible(sub))
			if sub != "" {
				lines = append(lines, sub)
			}
		}
		buf.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.DataAtom == atom.Br {
				flush()
				return
			}
			if blockBoundary[n.DataAtom] {
				flush()
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockBoundary[n.DataAtom] {
			flush()
		}
	}

	for _, n := range nodes {
		walk(n)
	}
	flush()
	return lines
}

// stripInvisible removes Unicode format runes (zero-width spaces and
// friends) that the portal scatters through cell text.
func stripInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, s)
}
