package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// monthTokens maps Danish and English month names and abbreviations, with
// and without a trailing dot, to month numbers.
var monthTokens = map[string]int{
	// English
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,

	// Danish
	"maj": 5, "okt": 10,
	"januar": 1, "februar": 2, "marts": 3, "juni": 6, "juli": 7,
	"oktober": 10,
}

var (
	dayMonthRe  = regexp.MustCompile(`(\d{1,2})\.\s*([\p{L}.]+)`)
	monthJunkRe = regexp.MustCompile(`[^a-zæøå.]`)
)

// parseDayMonth finds a "DD. Mon" date inside a calendar cell label. Labels
// can carry extra text such as "2. pinsedag", so the latest occurrence with
// a recognizable month token wins.
func parseDayMonth(text string) (day, month int, err error) {
	t := stripFormat(strings.Join(strings.Fields(text), " "))
	matches := dayMonthRe.FindAllStringSubmatch(t, -1)
	if len(matches) == 0 {
		return 0, 0, fmt.Errorf("no day/month label in %q", text)
	}

	for i := len(matches) - 1; i >= 0; i-- {
		d, convErr := strconv.Atoi(matches[i][1])
		if convErr != nil {
			continue
		}
		tok := monthJunkRe.ReplaceAllString(strings.ToLower(stripFormat(matches[i][2])), "")
		bare := strings.TrimRight(tok, ".")

		for _, candidate := range []string{tok, bare, prefix(bare, 3)} {
			if m, ok := monthTokens[candidate]; ok {
				return d, m, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("no valid month token in %q", text)
}

// prevYearMonth steps one month back.
func prevYearMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// stripFormat removes Unicode format runes the portal embeds in labels.
func stripFormat(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, s)
}
