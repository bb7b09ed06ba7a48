package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-timeline-view/internal/application/view"
	"github.com/penwyp/go-timeline-view/internal/core/transform"
	"github.com/penwyp/go-timeline-view/internal/data/parser"
	"github.com/penwyp/go-timeline-view/internal/util"
)

var (
	// Logging related
	debug     bool
	logLevel  string
	logFile   string
	logFormat string

	// Input
	configFile    string
	eventFiles    []string
	eventDir      string
	supplementary []string

	// Time axis
	timezone string
	epoch    string

	rootCmd = &cobra.Command{
		Use:   "go-timeline-view [command]",
		Short: "Pan, zoom and collapse long timelines of events",
		Long: `go-timeline-view lays out events on a time axis, collapsing long quiet
periods into fixed-width gaps so sparse timelines stay readable.

Event files are JSON (an array or {"events": [...]}), JSONL (one event per
line) or YAML. Each event has an id and either time_start/time_end in days or
start_at/end_at timestamps relative to --epoch.

Examples:
  go-timeline-view render -f plan.json                       # Layout tables for the default viewport
  go-timeline-view render -f plan.json --fit -o chart        # Draw the whole timeline as text
  go-timeline-view render -f plan.yaml --zoom 4 --start 120  # Explicit viewport
  go-timeline-view segments --dir ./events -o json           # Segment list for every file in a directory
  go-timeline-view view -f plan.jsonl --epoch 2024-01-01     # Interactive viewer`,
		SilenceUsage: true,
	}
)

const (
	defaultViewLogFile = "~/.go-timeline-view/logs/view.log"
)

func init() {
	// Input data configuration
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"YAML config file supplying defaults for all flags")
	rootCmd.PersistentFlags().StringSliceVarP(&eventFiles, "file", "f", nil,
		"Event file (.json, .jsonl, .yaml, .yml); repeatable")
	rootCmd.PersistentFlags().StringVar(&eventDir, "dir", "",
		"Directory scanned recursively for event files")
	rootCmd.PersistentFlags().StringSliceVar(&supplementary, "supplementary", nil,
		"Event file whose events only fill in ids missing from the main files")

	// Time axis
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone for labels and dates (e.g., Asia/Shanghai, UTC)")
	rootCmd.PersistentFlags().StringVar(&epoch, "epoch", "",
		"Date (YYYY-MM-DD) or RFC3339 time at axis value 0; enables timestamps and date labels")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"Log format (text, json)")
}

func Execute() error {
	return rootCmd.Execute()
}

// buildConfig starts from the config file, if any, and lets flags override
// it. Without a config file every flag applies, defaults included.
func buildConfig(cmd *cobra.Command) (*view.Config, error) {
	cfg := &view.Config{}
	if configFile != "" {
		loaded, err := view.LoadConfigFile(expandPath(configFile))
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	override := func(name string) bool { return flagApplies(cmd, name) }

	if override("file") {
		cfg.Files = append([]string(nil), eventFiles...)
	}
	if override("dir") {
		cfg.Dir = eventDir
	}
	if override("supplementary") {
		cfg.SupplementaryFiles = append([]string(nil), supplementary...)
	}
	if override("timezone") {
		cfg.Timezone = timezone
	}
	if override("epoch") {
		cfg.Epoch = epoch
	}
	if override("log-level") {
		cfg.LogLevel = logLevel
	}
	if override("log-file") {
		cfg.LogFile = logFile
	}
	if override("log-format") {
		cfg.LogFormat = logFormat
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	// Paths in the config file are relative to the working directory
	for i, f := range cfg.Files {
		cfg.Files[i] = expandPath(f)
	}
	for i, f := range cfg.SupplementaryFiles {
		cfg.SupplementaryFiles[i] = expandPath(f)
	}
	if cfg.Dir != "" {
		cfg.Dir = expandPath(cfg.Dir)
	}
	return cfg, nil
}

// flagApplies reports whether the named flag should override the config.
func flagApplies(cmd *cobra.Command, name string) bool {
	return configFile == "" || cmd.Flags().Changed(name)
}

// initRuntime validates cfg, then sets up logging and the time axis.
// console adds stderr logging in debug mode; the interactive viewer owns the
// terminal and never logs there.
func initRuntime(cfg *view.Config, console bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logCfg := util.LoggerConfig{
		Level:   cfg.LogLevel,
		Format:  util.LogFormat(cfg.LogFormat),
		Console: console && debug,
	}
	if cfg.LogFile != "" {
		logCfg.File = expandPath(cfg.LogFile)
		if err := ensureDir(filepath.Dir(logCfg.File)); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	if err := util.InitLogger(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return err
	}
	if cfg.Epoch != "" {
		tp := util.GetTimeProvider()
		at, err := tp.ParseEpoch(cfg.Epoch)
		if err != nil {
			return err
		}
		tp.SetEpoch(at)
	}
	return nil
}

// timeAxis returns the label formatter and timestamp converter for cfg.
// Without an epoch, axis values are plain day numbers and timestamps in
// event files are rejected.
func timeAxis(cfg *view.Config) (transform.LabelFormatter, parser.DayConverter) {
	if cfg.Epoch == "" {
		return transform.DayLabels{}, nil
	}
	tp := util.GetTimeProvider()
	return tp, tp
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
