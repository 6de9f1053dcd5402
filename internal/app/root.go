// Package app contains the Cobra command tree for wrapstats.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/muripo/wrapstats/internal/config"
	"github.com/muripo/wrapstats/internal/logging"
	"github.com/muripo/wrapstats/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagVerbose bool
	flagQuiet   bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "wrapstats",
	Short: "Generate the yearly wrapped statistics report",
	Long: `wrapstats reads the project registry, measures every finished project
with cloc, scores highlights, and writes one JSON report with totals,
distributions and rankings for the wrapped slideshow.

Running 'wrapstats' with no subcommand is the same as 'wrapstats generate'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGenerate,
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ./wrapstats.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	addGenerateFlags(rootCmd)
}

// setup loads configuration and prepares logging and terminal styling for a
// command.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("loading config: %w", err)
	}

	output.Configure(cfg.Terminal.Color && !flagNoColor, os.Stdout)

	log, logErr := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		File:       cfg.Log.File,
		Verbose:    flagVerbose,
		Quiet:      flagQuiet,
		NoColor:    flagNoColor || !cfg.Terminal.Color || !output.IsTerminal(os.Stderr),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if logErr != nil {
		log.Warn().Err(logErr).Msg("logging to console only")
	}
	return cfg, log, nil
}
