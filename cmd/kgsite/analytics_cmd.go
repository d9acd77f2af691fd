package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"kgsite/internal"
	"kgsite/internal/analytics"
	"kgsite/internal/di"
)

// defaultMaxRange bounds --range when no config is loaded.
const defaultMaxRange = 365

var analyticsOpts struct {
	seed       uint32
	profile    string
	rangeDays  int
	format     string
	charts     bool
	regenerate bool
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Generate mock analytics series",
}

var analyticsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print the series for a seed or a profile's persisted seed",
	Example: `  kgsite analytics generate --seed 12345 --range 7 --format reels
  kgsite analytics generate --profile demo --charts`,
	RunE: runAnalyticsGenerate,
}

var analyticsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Show or regenerate a profile's persisted seed",
	RunE:  runAnalyticsSeed,
}

func init() {
	f := analyticsGenerateCmd.Flags()
	f.Uint32Var(&analyticsOpts.seed, "seed", 0, "explicit seed, skips storage")
	f.StringVar(&analyticsOpts.profile, "profile", "", "profile whose persisted seed is used")
	f.IntVar(&analyticsOpts.rangeDays, "range", 30, "number of days")
	f.StringVar(&analyticsOpts.format, "format", string(analytics.FormatAll), "all, reels, posts or stories")
	f.BoolVar(&analyticsOpts.charts, "charts", false, "print chart datasets and summary text instead of the raw series")
	analyticsGenerateCmd.MarkFlagsMutuallyExclusive("seed", "profile")

	analyticsSeedCmd.Flags().StringVar(&analyticsOpts.profile, "profile", "", "profile id")
	analyticsSeedCmd.Flags().BoolVar(&analyticsOpts.regenerate, "regenerate", false, "replace the stored seed")

	analyticsCmd.AddCommand(analyticsGenerateCmd, analyticsSeedCmd)
}

func runAnalyticsGenerate(cmd *cobra.Command, _ []string) error {
	req := analytics.Request{
		Seed:      analyticsOpts.seed,
		RangeDays: analyticsOpts.rangeDays,
		Format:    analytics.ParseFormat(analyticsOpts.format),
	}

	if cmd.Flags().Changed("seed") {
		if err := checkRange(req.RangeDays, defaultMaxRange); err != nil {
			return err
		}
	} else {
		err := withToolkit(func(tk *internal.Toolkit) error {
			maxRange := defaultMaxRange
			if tk.Conf.Analytics.MaxRange > 0 {
				maxRange = tk.Conf.Analytics.MaxRange
			}
			if err := checkRange(req.RangeDays, maxRange); err != nil {
				return err
			}
			req.Seed = tk.Seeds.Load(analyticsOpts.profile)
			return nil
		})
		if err != nil {
			return err
		}
	}

	series := analytics.Generate(req, time.Now())
	if !analyticsOpts.charts {
		return printJSON(cmd.OutOrStdout(), series)
	}
	return printJSON(cmd.OutOrStdout(), map[string]any{
		"request": series.Request,
		"charts":  series.Charts(),
		"summary": series.Summary.Text(language.Spanish),
	})
}

func runAnalyticsSeed(cmd *cobra.Command, _ []string) error {
	return withToolkit(func(tk *internal.Toolkit) error {
		var seed uint32
		if analyticsOpts.regenerate {
			seed = tk.Seeds.Regenerate(analyticsOpts.profile)
		} else {
			seed = tk.Seeds.Load(analyticsOpts.profile)
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s=%d\n", tk.Seeds.Key(analyticsOpts.profile), seed)
		return err
	})
}

func checkRange(days, maxRange int) error {
	if days < 1 || days > maxRange {
		return fmt.Errorf("range must be between 1 and %d", maxRange)
	}
	return nil
}

// withToolkit opens the configured storage for fn and flushes it after.
func withToolkit(fn func(tk *internal.Toolkit) error) error {
	tk, cleanup, err := di.InitToolkit(&flags)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := fn(tk); err != nil {
		return err
	}
	return tk.Close()
}
