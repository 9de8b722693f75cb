package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/studyloom-cli/internal/config"
	"github.com/KaramelBytes/studyloom-cli/internal/logger"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string

	// Loaded configuration
	cfg *cfgpkg.Global
	// appLog writes diagnostics to stderr; stdout carries results only.
	appLog = logger.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "studyloom",
	Short: "StudyLoom CLI: exploratory analysis of tumor treatment studies",
	Long: `StudyLoom joins mouse metadata with per-timepoint tumor measurements, excludes
mice with duplicated timepoints, summarizes tumor volume by drug regimen, flags
final-volume outliers and relates mouse weight to tumor volume.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.studyloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text|json (overrides config)")
}

func loadConfig() {
	level, format := "warn", "text"
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
	} else {
		cfg = c
		level, format = c.LogLevel, c.LogFormat
	}
	if debug {
		level = "debug"
	}
	if logFormat != "" {
		format = logFormat
	}
	appLog = logger.New(level, format, os.Stderr)
	slog.SetDefault(appLog)
}

// settings returns the loaded configuration, loading it on demand.
func settings() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}
