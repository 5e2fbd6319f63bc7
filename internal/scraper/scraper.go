package scraper

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"github.com/hhojgaard/altiplan/internal/logger"
	"github.com/hhojgaard/altiplan/internal/schedule"
)

const (
	DefaultBaseURL = "https://login.altiplan.dk"
	UserAgent      = "altiplan-cli/1.0 (github.com/hhojgaard/altiplan)"
	Timeout        = 30 * time.Second

	landingPath  = "/webmodul/"
	personalPath = "/webmodul/personlig/"
	ajaxPath     = "/webmodul/wordpress/wp-admin/admin-ajax.php"
	logoutPath   = "/webmodul/log-af/"

	// Transient failures are retried at most this many times per request.
	maxRetries = 3
)

const (
	calendarSelector = "#grid-container-calendar-31, .grid-container-calendar-31"
	dayCellSelector  = "div.grid-item-calendar-month"
	dateSelector     = "p.grid-item-date"
	timeSelector     = `p.grid-item-time, p[class*="grid-item-time"]`
)

var dataDateRe = regexp.MustCompile(`^\d{8}$`)

// Credentials identify one portal user.
type Credentials struct {
	Department string
	Username   string
	Password   string
}

// Options configures a Scraper.
type Options struct {
	// BaseURL overrides the portal address; tests point it at a local
	// server.
	BaseURL string
	// Insecure disables TLS certificate verification. Explicit opt-out
	// only.
	Insecure bool
	// Holidays tags fetched days; nil means the Danish national set.
	Holidays schedule.HolidayFunc
}

// Scraper holds one authenticated portal session.
type Scraper struct {
	client   *http.Client
	base     *url.URL
	holidays schedule.HolidayFunc
}

// New creates a Scraper. The session cookie jar lives for the Scraper's
// lifetime; one Fetch call is one login.
func New(opts Options) (*Scraper, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	client := &http.Client{
		Timeout: Timeout,
		Jar:     jar,
	}
	if opts.Insecure {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	holidays := opts.Holidays
	if holidays == nil {
		holidays = schedule.DanishHolidays()
	}

	return &Scraper{client: client, base: base, holidays: holidays}, nil
}

// Fetch logs in and collects one DayRecord per calendar day for the given
// number of consecutive months ending at the portal's current month. The
// result is sorted ascending by date with duplicate days dropped.
// Authentication failure is terminal; nothing is persisted here.
func (s *Scraper) Fetch(creds Credentials, months int) ([]schedule.DayRecord, error) {
	if months <= 0 {
		return nil, fmt.Errorf("months must be positive, got %d", months)
	}

	if err := s.login(creds); err != nil {
		return nil, err
	}
	defer s.logout()

	var (
		days        []schedule.DayRecord
		seen        = make(map[string]bool)
		anchorYear  int
		anchorMonth int
	)

	for i := 0; i < months; i++ {
		// Force month view every iteration; the portal occasionally
		// falls back to week view between requests.
		if _, err := s.postAjax(url.Values{"action": {"alter_from_week_to_month"}}, personalPath); err != nil {
			return nil, err
		}
		page, err := s.get(personalPath)
		if err != nil {
			return nil, err
		}

		monthDays, year, month, err := s.parseMonth(page, anchorYear, anchorMonth)
		if err != nil {
			if i == 0 {
				// The landing page without a calendar grid is what a
				// rejected login looks like.
				return nil, fmt.Errorf("%w: %v", ErrAuth, err)
			}
			return nil, fmt.Errorf("month view %d of %d: %w", i+1, months, err)
		}
		anchorYear, anchorMonth = year, month

		for _, d := range monthDays {
			key := d.Date.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			days = append(days, d)
		}
		logger.Debug("month view parsed", logger.Fields{
			"iteration": i + 1,
			"days":      len(monthDays),
			"anchor":    fmt.Sprintf("%04d-%02d", anchorYear, anchorMonth),
		})

		if _, err := s.postAjax(url.Values{"action": {"show_previous_month_hi"}}, personalPath); err != nil {
			return nil, err
		}
		anchorYear, anchorMonth = prevYearMonth(anchorYear, anchorMonth)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days, nil
}

// login establishes the session: landing page for cookies, then the login
// form against the ajax endpoint, then the personal page.
func (s *Scraper) login(creds Credentials) error {
	if _, err := s.get(landingPath); err != nil {
		return err
	}

	form := url.Values{
		"action":       {"submitButton"},
		"Afd":          {creds.Department},
		"Brugernavn":   {creds.Username},
		"Password":     {creds.Password},
		"rememberUser": {"false"},
		"debug":        {"false"},
	}
	if _, err := s.postAjax(form, landingPath); err != nil {
		return err
	}

	if _, err := s.get(personalPath); err != nil {
		return err
	}
	logger.Debug("session established", logger.Fields{"afdeling": creds.Department})
	return nil
}

// logout is best-effort; a failed logout never fails the fetch.
func (s *Scraper) logout() {
	req, err := http.NewRequest(http.MethodGet, s.endpoint(logoutPath), nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", UserAgent)
	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn("logout failed", logger.Fields{"error": err.Error()})
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// parseMonth extracts this-month day records from a personal-page month
// view. fallbackYear/Month anchor the view when the page carries no
// data-date attribute; zero means no fallback is available yet.
func (s *Scraper) parseMonth(page string, fallbackYear, fallbackMonth int) ([]schedule.DayRecord, int, int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(normalizeBreaks(page)))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("parsing month page: %w", err)
	}

	anchorYear, anchorMonth := fallbackYear, fallbackMonth
	if dd, ok := doc.Find("#pp-bottom-bar").Attr("data-date"); ok && dataDateRe.MatchString(dd) {
		anchorYear, _ = strconv.Atoi(dd[:4])
		anchorMonth, _ = strconv.Atoi(dd[4:6])
	}
	if anchorYear == 0 {
		return nil, 0, 0, errors.New("month page carries no data-date anchor")
	}

	grid := doc.Find(calendarSelector).First()
	if grid.Length() == 0 {
		return nil, 0, 0, errors.New("calendar grid not found")
	}

	cells := grid.Find(dayCellSelector).FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return !sel.HasClass("last-month-item") && !sel.HasClass("next-month-item")
	})
	if cells.Length() == 0 {
		return nil, 0, 0, errors.New("no current-month cells in calendar grid")
	}

	firstLabel := cells.First().Find(dateSelector).First()
	if firstLabel.Length() == 0 {
		return nil, 0, 0, errors.New("first calendar cell has no date label")
	}
	_, month, err := parseDayMonth(firstLabel.Text())
	if err != nil {
		return nil, 0, 0, err
	}
	// A December anchor showing January cells belongs to the next year.
	year := anchorYear
	if month < anchorMonth {
		year++
	}

	var (
		days     []schedule.DayRecord
		parseErr error
	)
	cells.EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		label := cell.Find(dateSelector).First()
		if label.Length() == 0 {
			return true
		}
		day, mon, err := parseDayMonth(label.Text())
		if err != nil {
			parseErr = err
			return false
		}
		date := schedule.NewDate(year, time.Month(mon), day)

		markup := ""
		if tp := cell.Find(timeSelector).First(); tp.Length() > 0 {
			if inner, err := tp.Html(); err == nil {
				markup = inner
			}
		}

		days = append(days, schedule.DayRecord{
			Date:    date,
			Markup:  markup,
			Weekend: date.IsWeekend(),
			Holiday: label.HasClass("__holiday") || s.holidays(date),
		})
		return true
	})
	if parseErr != nil {
		return nil, 0, 0, parseErr
	}
	return days, anchorYear, anchorMonth, nil
}

var (
	openBrRe  = regexp.MustCompile(`(?i)<\s*br\s*>`)
	closeBrRe = regexp.MustCompile(`(?i)</\s*br\s*>`)
)

// normalizeBreaks unifies the portal's break-tag spelling. It mixes <br>,
// </br> and literal \r\n inside day cells.
func normalizeBreaks(page string) string {
	page = closeBrRe.ReplaceAllString(page, "<br/>")
	page = openBrRe.ReplaceAllString(page, "<br/>")
	return strings.ReplaceAll(page, "\r\n", "<br/>")
}

func (s *Scraper) endpoint(path string) string {
	u := *s.base
	u.Path = path
	return u.String()
}

func (s *Scraper) get(path string) (string, error) {
	return s.do(http.MethodGet, path, "", "")
}

func (s *Scraper) postAjax(form url.Values, refererPath string) (string, error) {
	return s.do(http.MethodPost, ajaxPath, refererPath, form.Encode())
}

// do issues one request with bounded exponential-backoff retry. Transport
// errors and 5xx responses are retried; other non-200 statuses are
// permanent. 401/403 surface as ErrAuth, everything else terminal as
// ErrNetwork.
func (s *Scraper) do(method, path, refererPath, body string) (string, error) {
	endpoint := s.endpoint(path)

	var out string
	attempt := 0
	operation := func() error {
		attempt++
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req, err := http.NewRequest(method, endpoint, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", UserAgent)
		req.Header.Set("Accept", "*/*")
		if method == http.MethodPost {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
			req.Header.Set("Origin", s.base.String())
			req.Header.Set("Referer", s.endpoint(refererPath))
			req.Header.Set("X-Requested-With", "XMLHttpRequest")
			req.Header.Set("Sec-Fetch-Site", "same-origin")
		}

		resp, err := s.client.Do(req)
		if err != nil {
			logger.Debug("request failed, retrying", logger.Fields{
				"endpoint": endpoint,
				"attempt":  attempt,
				"error":    err.Error(),
			})
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return backoff.Permanent(fmt.Errorf("%w: status %d from %s", ErrAuth, resp.StatusCode, endpoint))
		case resp.StatusCode >= 500:
			return fmt.Errorf("status %d from %s", resp.StatusCode, endpoint)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("status %d from %s", resp.StatusCode, endpoint))
		}
		out = string(data)
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries)
	if err := backoff.Retry(operation, policy); err != nil {
		if errors.Is(err, ErrAuth) {
			return "", err
		}
		return "", fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, endpoint, err)
	}
	return out, nil
}
