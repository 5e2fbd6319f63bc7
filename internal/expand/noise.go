package expand

import (
	"regexp"
	"strings"
)

var (
	threeDigitsRe = regexp.MustCompile(`^\d{3}$`)
	timeLineRe    = regexp.MustCompile(`^\s*\d{1,2}:\d{2}\s*-\s*\d{1,2}:\d{2}\b`)
)

// IsNoise reports whether a line is non-informative for the summary: it
// starts with an arithmetic operator character, or it is a bare three-digit
// code after trimming. Empty lines count as noise.
func IsNoise(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return true
	}
	switch t[0] {
	case '/', '-', '*', '%', '+':
		return true
	}
	return threeDigitsRe.MatchString(t)
}

// IsTimeLine reports whether a line starts with an HH:MM - HH:MM shift
// range. Time lines are excluded from the summary by default.
func IsTimeLine(text string) bool {
	return timeLineRe.MatchString(text)
}
