package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hhojgaard/altiplan/internal/analyze"
	"github.com/hhojgaard/altiplan/internal/expand"
	"github.com/hhojgaard/altiplan/internal/logger"
	"github.com/hhojgaard/altiplan/internal/schedule"
	"github.com/hhojgaard/altiplan/internal/scraper"
	"github.com/hhojgaard/altiplan/internal/storage"
)

const (
	ExitSuccess = 0
	// ExitFailure covers authentication and network failures.
	ExitFailure = 1
	// ExitUsage covers argument, window, schema and file errors.
	ExitUsage = 2
)

// Banner prints on every run except the pure-JSON expanded export.
const Banner = "altiplan v1.0 — personlig vagtplan-statistik"

var (
	flagAfdeling    string
	flagBrugernavn  string
	flagPassword    string
	flagMonths      int
	flagSavefile    string
	flagInputfile   string
	flagFind        []string
	flagKomb        string
	flagNoSummary   bool
	flagNoFilter    bool
	flagIncludeTime bool
	flagSimple      bool
	flagStartdate   string
	flagEnddate     string
	flagExpand      bool
	flagInsecure    bool
	flagVerbose     bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "altiplan",
		Short: "Scrape the Altiplan calendar and run offline schedule statistics",
		Long: `Scrapes the personal work-schedule calendar from the Altiplan portal,
stores the raw per-day markup as JSON and analyzes it offline:
summary frequency statistics, exact-term search and shift-code
combination day counts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	f := cmd.Flags()
	f.StringVar(&flagAfdeling, "afdeling", "", "Department code (e.g. od207); required for login")
	f.StringVar(&flagBrugernavn, "brugernavn", "", "Username; required for login")
	f.StringVar(&flagPassword, "password", "", "Password; required for login")
	f.IntVar(&flagMonths, "months", 1, "Number of months to fetch online (login only)")
	f.StringVar(&flagSavefile, "savefile", "", "Save raw calendar records as JSON to this path")
	f.StringVar(&flagInputfile, "inputfile", "", "Load raw calendar records from this JSON file and skip login")
	f.StringArrayVar(&flagFind, "find", nil, `Exact-match search term; repeatable (e.g. --find "VITA dagtid")`)
	f.StringVar(&flagKomb, "komb", "", "Count days where all |-separated 3-digit codes co-occur; --komb=CODES, bare --komb means 100|290")
	f.Lookup("komb").NoOptDefVal = "100|290"
	f.BoolVar(&flagNoSummary, "no-summary", false, "Suppress the summary frequency table (shown by default)")
	f.BoolVar(&flagNoFilter, "no-filter", false, "Keep operator-led and bare 3-digit lines in the summary")
	f.BoolVar(&flagIncludeTime, "include-time", false, "Include time lines in the summary (excluded by default)")
	f.BoolVar(&flagSimple, "simple-parsing", false, "Split day markup on line breaks only, without markup-tree parsing")
	f.StringVar(&flagStartdate, "startdate", "", "Inclusive window start, YYYY-MM-DD (default: start of current year)")
	f.StringVar(&flagEnddate, "enddate", "", "Inclusive window end, YYYY-MM-DD (default: end of current year)")
	f.BoolVar(&flagExpand, "expand-output", false, "Print expanded lines as a JSON array on stdout instead of summary/find")
	f.BoolVar(&flagInsecure, "insecure", false, "Disable TLS certificate verification during login (discouraged)")
	f.BoolVar(&flagVerbose, "verbose", false, "Enable debug logging on stderr")

	return cmd
}

// configFromCommand collects the flag values into a Config.
func configFromCommand(cmd *cobra.Command) *Config {
	kombGiven := cmd.Flags().Changed("komb")
	return &Config{
		Department:    flagAfdeling,
		Username:      flagBrugernavn,
		Password:      flagPassword,
		Months:        flagMonths,
		Insecure:      flagInsecure,
		SaveFile:      flagSavefile,
		InputFile:     flagInputfile,
		SimpleParsing: flagSimple,
		StartDate:     flagStartdate,
		EndDate:       flagEnddate,
		FindTerms:     flagFind,
		Komb:          kombGiven,
		KombCodes:     parseKombCodes(flagKomb),
		Summary:       !flagNoSummary && !flagExpand,
		NoFilter:      flagNoFilter,
		IncludeTime:   flagIncludeTime,
		ExpandOutput:  flagExpand,
		Verbose:       flagVerbose,
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := configFromCommand(cmd)
	if cfg.Verbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}
	if err := cfg.Validate(time.Now()); err != nil {
		return err
	}
	return run(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// run drives the sequential pipeline: acquire days, save, window filter,
// expand, analyze, output.
func run(cfg *Config, stdout, stderr io.Writer) error {
	if !cfg.ExpandOutput {
		fmt.Fprintln(stdout, Banner)
	}

	days, err := acquireDays(cfg)
	if err != nil {
		return err
	}
	logger.Debug("day records acquired", logger.Fields{"count": len(days)})

	if cfg.SaveFile != "" {
		if err := storage.Save(cfg.SaveFile, days); err != nil {
			return fmt.Errorf("saving raw records: %w", err)
		}
		notice := stdout
		if cfg.ExpandOutput {
			// Keep stdout pure JSON for the export.
			notice = stderr
		}
		fmt.Fprintf(notice, "Saved %d raw day records to %s\n", len(days), cfg.SaveFile)
	}

	days = schedule.FilterDays(days, cfg.Window())

	expander := expand.New(cfg.SimpleParsing)
	var lines []schedule.Line
	for _, d := range days {
		lines = append(lines, expander.Expand(d)...)
	}
	logger.Debug("lines expanded", logger.Fields{
		"days":  len(days),
		"lines": len(lines),
	})

	if len(cfg.FindTerms) > 0 {
		writeFindReport(stdout, analyze.FindTerms(lines, cfg.FindTerms))
	}
	if cfg.Komb {
		writeKombReport(stdout, analyze.Komb(lines, cfg.KombCodes))
	}
	if cfg.Summary {
		writeSummary(stdout, analyze.Summarize(lines, analyze.Options{
			IncludeTime: cfg.IncludeTime,
			NoFilter:    cfg.NoFilter,
		}))
	}
	if cfg.ExpandOutput {
		return writeExpanded(stdout, analyze.Export(lines))
	}
	return nil
}

// acquireDays loads the raw records from disk or fetches them online.
func acquireDays(cfg *Config) ([]schedule.DayRecord, error) {
	if cfg.InputFile != "" {
		logger.Debug("loading raw records", logger.Fields{"path": cfg.InputFile})
		return storage.Load(cfg.InputFile)
	}

	sc, err := scraper.New(scraper.Options{Insecure: cfg.Insecure})
	if err != nil {
		return nil, err
	}
	logger.Debug("fetching raw records", logger.Fields{
		"afdeling": cfg.Department,
		"months":   cfg.Months,
	})
	creds := scraper.Credentials{
		Department: cfg.Department,
		Username:   cfg.Username,
		Password:   cfg.Password,
	}
	return sc.Fetch(creds, cfg.Months)
}

// Execute runs the CLI and maps failures to exit codes.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, scraper.ErrAuth) || errors.Is(err, scraper.ErrNetwork) {
		return ExitFailure
	}
	return ExitUsage
}
