package cli

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hhojgaard/altiplan/internal/schedule"
)

// ErrArgument marks invalid, missing or conflicting command-line options.
var ErrArgument = errors.New("invalid arguments")

var kombCodeRe = regexp.MustCompile(`^\d{3}$`)

// Config is the full option set for one run. It is populated from flags and
// validated in one step before any network or file work starts.
type Config struct {
	// Login (online fetch).
	Department string
	Username   string
	Password   string
	Months     int
	Insecure   bool

	// Persistence.
	SaveFile  string
	InputFile string

	// Parsing and filtering.
	SimpleParsing bool
	StartDate     string
	EndDate       string

	// Analyzers.
	FindTerms    []string
	Komb         bool
	KombCodes    []string
	Summary      bool
	NoFilter     bool
	IncludeTime  bool
	ExpandOutput bool

	Verbose bool

	window schedule.Window
}

// Validate checks flag consistency and resolves the date window against the
// current year. It is the single gate: every argument failure is caught here
// before the engine runs.
func (c *Config) Validate(now time.Time) error {
	if c.ExpandOutput && len(c.FindTerms) > 0 {
		return fmt.Errorf("%w: --expand-output cannot be combined with --find", ErrArgument)
	}
	if c.ExpandOutput && c.Komb {
		return fmt.Errorf("%w: --expand-output cannot be combined with --komb", ErrArgument)
	}

	if c.InputFile == "" {
		if c.Months <= 0 {
			return fmt.Errorf("%w: --months must be a positive integer, got %d", ErrArgument, c.Months)
		}
		var missing []string
		if c.Department == "" {
			missing = append(missing, "--afdeling")
		}
		if c.Username == "" {
			missing = append(missing, "--brugernavn")
		}
		if c.Password == "" {
			missing = append(missing, "--password")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: missing login arguments: %s (or use --inputfile to skip login)",
				ErrArgument, strings.Join(missing, ", "))
		}
	}

	for _, code := range c.KombCodes {
		if !kombCodeRe.MatchString(code) {
			return fmt.Errorf("%w: --komb codes must be three digits, got %q", ErrArgument, code)
		}
	}

	// The window defaults to the current year's full span; a single given
	// bound keeps the year default for the other end.
	def := schedule.YearWindow(now.Year())
	start, end := def.Start, def.End
	if c.StartDate != "" {
		d, err := schedule.ParseDate(c.StartDate)
		if err != nil {
			return fmt.Errorf("%w: --startdate: %v", ErrArgument, err)
		}
		start = d
	}
	if c.EndDate != "" {
		d, err := schedule.ParseDate(c.EndDate)
		if err != nil {
			return fmt.Errorf("%w: --enddate: %v", ErrArgument, err)
		}
		end = d
	}
	w, err := schedule.NewWindow(start, end)
	if err != nil {
		return err
	}
	c.window = w
	return nil
}

// Window returns the date window resolved by Validate.
func (c *Config) Window() schedule.Window { return c.window }

// parseKombCodes splits a |-delimited code list, dropping empty tokens.
func parseKombCodes(value string) []string {
	var codes []string
	for _, tok := range strings.Split(value, "|") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			codes = append(codes, tok)
		}
	}
	return codes
}
