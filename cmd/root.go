package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/roster-cli/internal/config"
	"github.com/sells-group/roster-cli/internal/fetcher"
	"github.com/sells-group/roster-cli/internal/pipeline"
	"github.com/sells-group/roster-cli/internal/roster"
)

var cfg *config.Config

var (
	flagChambers []string
	flagOutputs  map[string]string
	flagStrict   bool
	flagTimeout  int
)

var rootCmd = &cobra.Command{
	Use:   "roster-cli",
	Short: "Scrape California legislature rosters to JSON",
	Long:  "Fetches the State Senate and State Assembly member rosters, splits each office block into mailing address and phone, and writes one JSON file per chamber.",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return applyFlags(cmd, cfg)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate(); err != nil {
			return err
		}

		runID := uuid.NewString()
		restore := zap.ReplaceGlobals(zap.L().With(zap.String("run_id", runID)))
		defer restore()

		extractors, err := roster.NewExtractors(roster.DefaultRegistry(), cfg.Chambers, newFetcher(cfg.Fetch), cfg.Output.Strict)
		if err != nil {
			return err
		}

		zap.L().Info("starting scrape",
			zap.Int("chambers", len(extractors)),
			zap.Bool("strict", cfg.Output.Strict),
		)

		summaries, err := pipeline.Run(ctx, extractors, pipeline.Options{})
		if err != nil {
			return err
		}

		formatSummaries(cmd.OutOrStdout(), summaries)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&flagChambers, "chambers", nil, "chambers to scrape, by name (default: all configured)")
	rootCmd.PersistentFlags().StringToStringVar(&flagOutputs, "output", nil, "override a chamber's output file, as name=path (repeatable)")
	rootCmd.Flags().BoolVar(&flagStrict, "strict", false, "fail on the first office block that cannot be split into address and phone")
	rootCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "per-request timeout in seconds (default: fetch.timeout_secs)")
}

// applyFlags narrows the configured chambers and applies flag overrides.
func applyFlags(cmd *cobra.Command, c *config.Config) error {
	if len(flagChambers) > 0 {
		selected := make([]config.ChamberConfig, 0, len(flagChambers))
		for _, name := range flagChambers {
			ch, ok := c.Chamber(name)
			if !ok {
				return eris.Errorf("unknown chamber %q", name)
			}
			selected = append(selected, ch)
		}
		c.Chambers = selected
	}

	for name, path := range flagOutputs {
		found := false
		for i := range c.Chambers {
			if c.Chambers[i].Name == name {
				c.Chambers[i].Output = path
				found = true
			}
		}
		if !found {
			return eris.Errorf("--output names chamber %q, which is not selected", name)
		}
	}

	if f := cmd.Flags().Lookup("strict"); f != nil && f.Changed {
		c.Output.Strict = flagStrict
	}
	if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
		c.Fetch.TimeoutSecs = flagTimeout
	}
	return nil
}

func newFetcher(fc config.FetchConfig) *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:         fc.UserAgent,
		Timeout:           time.Duration(fc.TimeoutSecs) * time.Second,
		MaxBodyBytes:      fc.MaxBodyBytes,
		RequestsPerSecond: fc.RequestsPerSecond,
	})
}

// formatSummaries prints one line per written roster.
func formatSummaries(w io.Writer, summaries []pipeline.Summary) {
	fmt.Fprintf(w, "%-10s %7s %8s %6s  %s\n", "CHAMBER", "MEMBERS", "OFFICES", "ISSUES", "OUTPUT")
	for _, s := range summaries {
		out := s.Output
		if s.IssuesPath != "" {
			out += " (issues: " + s.IssuesPath + ")"
		}
		fmt.Fprintf(w, "%-10s %7d %8d %6d  %s\n", s.Chamber, s.Members, s.DistrictOffices, s.Issues, out)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
