package main

import (
	"fmt"
	"os"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/keilerkonzept/condemned-dash/internal/config"
	"github.com/keilerkonzept/condemned-dash/internal/geo"
	"github.com/keilerkonzept/condemned-dash/internal/logging"
)

var (
	// Global flags
	configPath string
	logPath    string
	verbose    bool
	overrides  = config.Config{}
	statsFlag  bool
	altScreen  bool

	// Resolved after flag parsing
	cfg        = config.DefaultConfig()
	logger     = zap.NewNop()
	logCleanup = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "dash",
	Short: "Cross-filter dashboard over capital sentencing records",
	Long: `dash loads a CSV of capital sentencing records and shows linked views:
cases by gender, by race, by state and by year, plus the busiest counties.

Selecting a gender or race filters the other views; the year slider moves a
four-year window. Run without a subcommand to start the dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := resolveConfig(cmd.Flags())
		if err != nil {
			return err
		}
		cfg = resolved

		logger, logCleanup, err = logging.Setup(logPath, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debug("config resolved",
			zap.String("records", cfg.Data.Records),
			zap.Int("initialYear", cfg.Filter.InitialYear),
			zap.Int("resetYear", cfg.Filter.ResetYear))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logCleanup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

var preprocessOut string

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Write per-state, per-period case counts as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadInputs(cfg.Data, logger)
		if err != nil {
			return err
		}
		table, stats := geo.Aggregate(data.store.Records(), data.resolver)
		logger.Info("aggregated",
			zap.Int("counted", stats.Counted),
			zap.Int("unresolved", stats.Unresolved),
			zap.Int("outOfPeriods", stats.OutOfPeriods))

		if preprocessOut == "" {
			return table.WriteCSV(cmd.OutOrStdout())
		}
		f, err := os.Create(preprocessOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", preprocessOut, err)
		}
		if err := table.WriteCSV(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

var (
	summaryGenders []string
	summaryRaces   []string
	summaryYear    int
	summaryJSON    bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the gender, race and state aggregates for a filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadInputs(cfg.Data, logger)
		if err != nil {
			return err
		}
		s := buildSummary(data, summaryFilter{
			genders:   summaryGenders,
			races:     summaryRaces,
			year:      summaryYear,
			resetYear: cfg.Filter.ResetYear,
		})
		return writeSummary(cmd.OutOrStdout(), s, summaryJSON)
	},
}

var configOut string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration, or save it with --out",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configOut != "" {
			return cfg.SaveToFile(configOut)
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	defaults := config.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file")
	flags.StringVar(&logPath, "log", "", "Write a debug log to this file (default: no logging)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&overrides.Data.Records, "records", "", "Records CSV (default: stdin when piped)")
	flags.StringVar(&overrides.Data.Counties, "counties", "", "County to state CSV (StateCode,CountyName)")
	flags.StringVar(&overrides.Data.Presidents, "presidents", "", "Presidents CSV (Years,President,Party)")
	flags.StringVar(&overrides.Data.Counts, "counts", "", "Precomputed state counts CSV from preprocess (region,year,pop_density)")
	flags.IntVar(&overrides.Filter.InitialYear, "initial-year", defaults.Filter.InitialYear, "Slider year on load")
	flags.IntVar(&overrides.Filter.ResetYear, "reset-year", defaults.Filter.ResetYear, "Slider year after reset")
	flags.IntVar(&overrides.Filter.Step, "year-step", defaults.Filter.Step, "Years per slider key press")
	flags.IntVar(&overrides.View.Split, "view-split", defaults.View.Split, "Split the view at this % of the total screen width [20,80]")
	flags.IntVar(&overrides.View.TopCounties, "top", defaults.View.TopCounties, "Number of counties in the leaderboard")
	flags.IntVar(&overrides.Stats.Window, "stats-window", defaults.Stats.Window, "Number of recent samples kept per view")
	flags.BoolVar(&statsFlag, "stats", defaults.Stats.Enabled, "Show refresh performance stats")
	flags.BoolVar(&altScreen, "alt-screen", defaults.View.AltScreen, "Use the terminal alternate screen buffer (recommended inside IDE terminals)")

	preprocessCmd.Flags().StringVarP(&preprocessOut, "out", "o", "", "Output file (default: stdout)")

	summaryCmd.Flags().StringSliceVar(&summaryGenders, "gender", nil, "Restrict to these genders (repeatable)")
	summaryCmd.Flags().StringSliceVar(&summaryRaces, "race", nil, "Restrict to these races (repeatable)")
	summaryCmd.Flags().IntVar(&summaryYear, "year", 0, "Start of the four-year window for gender and race (default: all years; the state table then shows the period of the reset year)")
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "Print JSON instead of tables")

	configCmd.Flags().StringVarP(&configOut, "out", "o", "", "Save to this file instead of printing")

	rootCmd.AddCommand(preprocessCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers the config file over the defaults and explicitly set
// flags over the file.
func resolveConfig(flags *pflag.FlagSet) (*config.Config, error) {
	c := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		c = loaded
	}

	changed := config.Config{}
	if flags.Changed("records") {
		changed.Data.Records = overrides.Data.Records
	}
	if flags.Changed("counties") {
		changed.Data.Counties = overrides.Data.Counties
	}
	if flags.Changed("presidents") {
		changed.Data.Presidents = overrides.Data.Presidents
	}
	if flags.Changed("counts") {
		changed.Data.Counts = overrides.Data.Counts
	}
	if flags.Changed("initial-year") {
		changed.Filter.InitialYear = overrides.Filter.InitialYear
	}
	if flags.Changed("reset-year") {
		changed.Filter.ResetYear = overrides.Filter.ResetYear
	}
	if flags.Changed("year-step") {
		changed.Filter.Step = overrides.Filter.Step
	}
	if flags.Changed("view-split") {
		changed.View.Split = overrides.View.Split
	}
	if flags.Changed("top") {
		changed.View.TopCounties = overrides.View.TopCounties
	}
	if flags.Changed("stats-window") {
		changed.Stats.Window = overrides.Stats.Window
	}
	c.Merge(&changed)
	if flags.Changed("stats") {
		c.Stats.Enabled = statsFlag
	}
	if flags.Changed("alt-screen") {
		c.View.AltScreen = altScreen
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.Normalize()
	return c, nil
}

func runDashboard() error {
	m := newModel(cfg, logger)
	opts := []tui.ProgramOption{tui.WithInputTTY()}
	if cfg.View.AltScreen {
		opts = append(opts, tui.WithAltScreen())
	}
	if _, err := tui.NewProgram(m, opts...).Run(); err != nil {
		return err
	}
	return nil
}
