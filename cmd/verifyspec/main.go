// Package main provides the verifyspec binary entry point.
// Verifyspec loads trees of YAML metric specifications, resolves their
// inheritance chains, and checks measurements against the resolved
// thresholds.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lsst/verify-sub000/config"
)

const (
	Version = "0.1.0"
	appName = "verifyspec"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// appOptions carries the persistent flags shared by all subcommands.
// Flag values override the layered file configuration.
type appOptions struct {
	configPath string
	specsDir   string
	metricsDir string
	logLevel   string
}

func rootCmd() *cobra.Command {
	opts := &appOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Metric specification resolution and checking",
		Long: `Verifyspec works on trees of YAML specification documents.

Each package directory holds specification files whose documents may
inherit from other specifications or from partial documents via base
references. Verifyspec resolves those chains and evaluates measurements
against the resolved thresholds.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.specsDir, "specs", "", "Specification directory root")
	cmd.PersistentFlags().StringVar(&opts.metricsDir, "metrics", "", "Metric definition directory")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		listCmd(opts),
		resolveCmd(opts),
		checkCmd(opts),
		reportCmd(opts),
		watchCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}

// load produces the effective configuration and a logger at the
// configured level, with flags taking precedence over config files.
func (o *appOptions) load() (*config.Config, *slog.Logger, error) {
	bootLogger := newLogger("info")

	var cfg *config.Config
	var err error
	if o.configPath != "" {
		cfg, err = config.LoadFromFile(o.configPath)
	} else {
		cfg, err = config.NewLoader(bootLogger).Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	cfg.Merge(&config.Config{
		Specs:   config.SpecsConfig{Dir: o.specsDir},
		Metrics: config.MetricsConfig{Dir: o.metricsDir},
		Log:     config.LogConfig{Level: o.logLevel},
	})
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
