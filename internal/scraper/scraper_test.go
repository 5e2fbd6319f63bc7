package scraper

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hhojgaard/altiplan/internal/schedule"
)

// monthPage builds a minimal personal-page month view. Each cell is
// "day. monthToken|classes|timeHTML".
func monthPage(dataDate string, cells ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div id="pp-bottom-bar" data-date="` + dataDate + `"></div>`)
	b.WriteString(`<div id="grid-container-calendar-31">`)
	for _, cell := range cells {
		parts := strings.SplitN(cell, "|", 3)
		label, classes, timeHTML := parts[0], parts[1], parts[2]
		b.WriteString(`<div class="grid-item-calendar-month ` + classes + `">`)
		b.WriteString(`<p class="grid-item-date ` + classes + `">` + label + `</p>`)
		b.WriteString(`<p class="grid-item-time">` + timeHTML + `</p>`)
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func newTestScraper(t *testing.T, baseURL string) *Scraper {
	t.Helper()
	s, err := New(Options{BaseURL: baseURL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestParseMonth(t *testing.T) {
	page := monthPage("20250301",
		"28. feb|last-month-item|",
		"1. mar||VITA dagtid 07:45 - 15:30<br>100",
		"2. mar|__holiday|Fri",
		"3. mar||",
		"1. apr|next-month-item|",
	)

	s := newTestScraper(t, "https://portal.test")
	days, year, month, err := s.parseMonth(page, 0, 0)
	if err != nil {
		t.Fatalf("parseMonth failed: %v", err)
	}
	if year != 2025 || month != 3 {
		t.Errorf("anchor = %d/%d, expected 2025/3", year, month)
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 this-month days, got %d: %+v", len(days), days)
	}

	first := days[0]
	if first.Date.String() != "2025-03-01" {
		t.Errorf("first date = %s, expected 2025-03-01", first.Date)
	}
	if !first.Weekend {
		t.Error("2025-03-01 is a Saturday and should be flagged weekend")
	}
	if !strings.Contains(first.Markup, "<br/>") {
		t.Errorf("break tags should be normalized in markup, got %q", first.Markup)
	}

	if !days[1].Holiday {
		t.Error("__holiday class should flag the day as holiday")
	}
	if days[2].Markup != "" {
		t.Errorf("empty cell should keep empty markup, got %q", days[2].Markup)
	}
}

func TestParseMonthYearWrap(t *testing.T) {
	// A December anchor showing January cells belongs to the next year.
	page := monthPage("20241201", "1. jan||")

	s := newTestScraper(t, "https://portal.test")
	days, _, _, err := s.parseMonth(page, 0, 0)
	if err != nil {
		t.Fatalf("parseMonth failed: %v", err)
	}
	if days[0].Date.String() != "2025-01-01" {
		t.Errorf("got %s, expected 2025-01-01", days[0].Date)
	}
}

func TestParseMonthAnchorFallback(t *testing.T) {
	page := strings.Replace(
		monthPage("X", "1. mar||"),
		` data-date="X"`, "", 1,
	)

	s := newTestScraper(t, "https://portal.test")
	if _, _, _, err := s.parseMonth(page, 0, 0); err == nil {
		t.Error("expected error without data-date and without fallback")
	}

	days, _, _, err := s.parseMonth(page, 2025, 3)
	if err != nil {
		t.Fatalf("parseMonth with fallback failed: %v", err)
	}
	if days[0].Date.String() != "2025-03-01" {
		t.Errorf("got %s, expected 2025-03-01", days[0].Date)
	}
}

// portalHandler fakes the login and month-view choreography.
type portalHandler struct {
	pages     []string // month views, newest first
	current   int
	loggedIn  bool
	loginForm map[string]string
}

func (p *portalHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.Contains(r.URL.Path, "admin-ajax"):
		r.ParseForm()
		switch r.PostFormValue("action") {
		case "submitButton":
			p.loggedIn = true
			p.loginForm = map[string]string{
				"Afd":        r.PostFormValue("Afd"),
				"Brugernavn": r.PostFormValue("Brugernavn"),
			}
		case "show_previous_month_hi":
			p.current++
		}
		fmt.Fprint(w, "ok")
	case strings.Contains(r.URL.Path, "personlig"):
		if !p.loggedIn || p.current >= len(p.pages) {
			fmt.Fprint(w, "<html><body>login</body></html>")
			return
		}
		fmt.Fprint(w, p.pages[p.current])
	default:
		fmt.Fprint(w, "<html></html>")
	}
}

func TestFetchTwoMonths(t *testing.T) {
	handler := &portalHandler{
		pages: []string{
			monthPage("20250301",
				"1. mar||VITA dagtid 07:45 - 15:30<br/>100",
				"2. mar||",
			),
			monthPage("20250201",
				"1. feb||bf - 700",
				"2. feb||290",
			),
		},
	}
	server := httptest.NewServer(handler)
	defer server.Close()

	s := newTestScraper(t, server.URL)
	days, err := s.Fetch(Credentials{Department: "od207", Username: "u", Password: "p"}, 2)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if handler.loginForm["Afd"] != "od207" || handler.loginForm["Brugernavn"] != "u" {
		t.Errorf("login form not submitted as expected: %v", handler.loginForm)
	}

	want := []string{"2025-02-01", "2025-02-02", "2025-03-01", "2025-03-02"}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(days))
	}
	for i, date := range want {
		if days[i].Date.String() != date {
			t.Errorf("day %d: got %s, expected %s (chronological order)", i, days[i].Date, date)
		}
	}
}

func TestFetchAuthFailure(t *testing.T) {
	// The portal answers every page but never shows a calendar grid, which
	// is what a rejected login looks like.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>forkert login</body></html>")
	}))
	defer server.Close()

	s := newTestScraper(t, server.URL)
	_, err := s.Fetch(Credentials{Department: "x", Username: "y", Password: "z"}, 1)
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestFetchNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	s := newTestScraper(t, server.URL)
	_, err := s.Fetch(Credentials{Department: "x", Username: "y", Password: "z"}, 1)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestFetchRetriesTransientFailure(t *testing.T) {
	var failures int
	handler := &portalHandler{
		pages: []string{monthPage("20250301", "1. mar||")},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Fail the very first request once; the retry must recover.
		if failures == 0 {
			failures++
			http.Error(w, "hiccup", http.StatusBadGateway)
			return
		}
		handler.ServeHTTP(w, r)
	}))
	defer server.Close()

	s := newTestScraper(t, server.URL)
	days, err := s.Fetch(Credentials{Department: "x", Username: "y", Password: "z"}, 1)
	if err != nil {
		t.Fatalf("Fetch should survive one transient failure: %v", err)
	}
	if len(days) != 1 {
		t.Errorf("expected 1 day, got %d", len(days))
	}
}

func TestFetchDuplicateDatesDropped(t *testing.T) {
	page := monthPage("20250301", "1. mar||first", "1. mar||second")
	handler := &portalHandler{pages: []string{page}}
	server := httptest.NewServer(handler)
	defer server.Close()

	s := newTestScraper(t, server.URL)
	days, err := s.Fetch(Credentials{Department: "x", Username: "y", Password: "z"}, 1)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(days) != 1 || days[0].Markup != "first" {
		t.Errorf("duplicate dates should keep the first record: %+v", days)
	}
}

func TestHolidayOracleInjection(t *testing.T) {
	page := monthPage("20250301", "3. mar||")
	handler := &portalHandler{pages: []string{page}}
	server := httptest.NewServer(handler)
	defer server.Close()

	everyDay := func(schedule.Date) bool { return true }
	s, err := New(Options{BaseURL: server.URL, Holidays: everyDay})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	days, err := s.Fetch(Credentials{Department: "x", Username: "y", Password: "z"}, 1)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !days[0].Holiday {
		t.Error("injected holiday oracle should flag the day")
	}
}
