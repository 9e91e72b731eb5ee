package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/lotkit/internal/config"
	"github.com/joshuapare/lotkit/internal/logger"
	"github.com/joshuapare/lotkit/lot"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	cfgFile string

	// cfg is resolved from flags, environment and cfgFile before each command runs.
	cfg = config.Config{
		Floors:        config.DefaultFloors,
		SpotsPerFloor: config.DefaultSpotsPerFloor,
		LogLevel:      "info",
	}
)

var rootCmd = &cobra.Command{
	Use:   "lotctl",
	Short: "Drive a concurrent parking-lot allocator",
	Long: `lotctl builds an in-memory parking lot of fixed floors and spots and lets you
park and remove vehicles interactively, or fire concurrent batches of requests
at it and report how they were resolved.

Bikes and cars take one spot; trucks take two adjacent spots on one floor.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, config.KeyVerbose, "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	// Lot shape
	rootCmd.PersistentFlags().Int(config.KeyFloors, config.DefaultFloors, "Number of floors")
	rootCmd.PersistentFlags().Int(config.KeySpotsPerFloor, config.DefaultSpotsPerFloor, "Spots on each floor")
	rootCmd.PersistentFlags().
		IntSlice(config.KeyFloorSizes, nil, "Spots per floor, in order (overrides --floors/--spots)")

	// Logging
	rootCmd.PersistentFlags().String(config.KeyLogDir, "", "Write JSON logs to this directory")
	rootCmd.PersistentFlags().String(config.KeyLogLevel, "info", "Log level (debug, info, warn, error)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves cfg and initializes logging.
func loadConfig(cmd *cobra.Command) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	c, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = c
	return logger.Init(cfg.LoggerOptions())
}

// newLot builds a lot from the resolved configuration.
func newLot(opts lot.Options) (*lot.Lot, error) {
	l, err := lot.New(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build lot: %w", err)
	}
	printVerbose("Lot: %d floor(s), %d spot(s)\n", l.Floors(), l.Capacity())
	return l, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
