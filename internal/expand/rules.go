package expand

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	timeRangeRe = regexp.MustCompile(`\b\d{1,2}:\d{2}\s*-\s*\d{1,2}:\d{2}\b`)
	dashSplitRe = regexp.MustCompile(`\s-\s+`)
)

// splitShiftLine applies the line rules to one raw text line: a line with a
// time range splits into label tokens followed by one fragment per shift,
// anything else splits a " - " pair into its two halves.
func splitShiftLine(line string) []string {
	if loc := timeRangeRe.FindStringIndex(line); loc != nil {
		var out []string
		if prefix := strings.TrimSpace(line[:loc[0]]); prefix != "" {
			out = append(out, splitLabels(prefix)...)
		}
		out = append(out, splitShifts(strings.TrimSpace(line[loc[0]:]))...)
		return out
	}
	return splitDashPair(line)
}

// splitLabels breaks the text before the first time range into label tokens.
// Hyphenated codes (O-an, BTY-sen) stay whole; an all-uppercase token
// absorbs one following plain word, so "VITA dagtid" stays one label.
func splitLabels(prefix string) []string {
	toks := strings.Fields(prefix)
	var out []string
	for i := 0; i < len(toks); i++ {
		t := toks[i]

		if strings.Contains(t, "-") {
			out = append(out, t)
			continue
		}

		if isUpperLabel(t) && i+1 < len(toks) {
			nxt := toks[i+1]
			if !isAllUpper(nxt) && !timeRangeRe.MatchString(nxt) &&
				!containsDigit(nxt) && !strings.Contains(nxt, "-") {
				out = append(out, t+" "+nxt)
				i++
				continue
			}
		}

		out = append(out, t)
	}
	return out
}

// splitShifts segments text that starts with a time range into one fragment
// per shift: each range plus its trailing text up to the next range. Covers
// lines like "07:45 - 15:30 100 15:30 - 22:00 100".
func splitShifts(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	locs := timeRangeRe.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return []string{s}
	}

	var out []string
	for i, loc := range locs {
		end := len(s)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if frag := strings.TrimSpace(s[loc[0]:end]); frag != "" {
			out = append(out, frag)
		}
	}
	return out
}

// splitDashPair splits "bf -   700" into "bf" and "- 700". Only a dash with
// whitespace on both sides separates, and never on a line that carries a
// time range.
func splitDashPair(line string) []string {
	s := strings.TrimSpace(line)
	if s == "" {
		return nil
	}
	if timeRangeRe.MatchString(s) {
		return []string{s}
	}
	parts := dashSplitRe.Split(s, 2)
	if len(parts) < 2 {
		return []string{s}
	}

	var out []string
	if left := strings.TrimSpace(parts[0]); left != "" {
		out = append(out, left)
	}
	if right := strings.TrimRight(parts[1], " \t"); right != "" {
		out = append(out, "- "+right)
	}
	if len(out) == 0 {
		return []string{s}
	}
	return out
}

// isUpperLabel reports whether t looks like an uppercase unit label such as
// VITA: at least two runes, letters only uppercase.
func isUpperLabel(t string) bool {
	if len([]rune(t)) < 2 {
		return false
	}
	return isAllUpper(t)
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
