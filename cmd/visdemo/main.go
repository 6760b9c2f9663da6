// Package main provides visdemo, a command line driver for the visibility
// tracker.
//
// Usage:
//
//	visdemo simulate [--config file] [--steps n] [--step rows]
//	visdemo watch [--config file] [--duration d] [--terminal=false]
//	visdemo version
//
// simulate scrolls a page description through a fixed viewport and prints
// every visibility change. watch does the same on a frame loop, sized to the
// terminal, reloading the page when the configuration file changes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/grindlemire/go-visibility/internal/config"
	"github.com/grindlemire/go-visibility/internal/debug"
)

const version = "0.1.0"

// cli holds the global flags and the logger shared by every command.
type cli struct {
	verbose    bool
	configPath string
	debugLog   string

	logger *zap.Logger
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "visdemo",
		Short: "Drive a visibility tracker over a page description",
		Long: `visdemo observes the regions of a page and reports when they
enter or leave the viewport, or cross one of their thresholds.

The page is read from --config, .visibility.yaml in the working directory,
or $XDG_CONFIG_HOME/visibility/config.yaml, in that order. Without a file a
default stack of cards is used.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.debugLog != "" {
				if err := debug.Init(c.debugLog); err != nil {
					return fmt.Errorf("failed to open debug log: %w", err)
				}
			}
			if c.logger != nil {
				return nil
			}
			cfg := zap.NewProductionConfig()
			if c.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			c.logger, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
			debug.Close()
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Page description file")
	root.PersistentFlags().StringVar(&c.debugLog, "debug-log", "", "Write tracker pass records as JSON to this file")

	root.AddCommand(newSimulateCmd(c), newWatchCmd(c), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "visdemo version %s\n", version)
		},
	}
}

// loadConfig resolves and loads the page description.
func (c *cli) loadConfig() (*config.File, string, error) {
	f, path, err := config.Load(c.configPath)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		c.logger.Debug("no configuration file found, using defaults", zap.String("xdg_dir", config.Dir()))
	} else {
		c.logger.Debug("loaded configuration", zap.String("path", path))
	}
	return f, path, nil
}

// trackerLogger returns the logger passed to trackers: the debug log when one
// was requested, otherwise a child of the command logger.
func (c *cli) trackerLogger() *zap.Logger {
	if c.debugLog != "" {
		return debug.Logger()
	}
	return c.logger.Named("tracker")
}

func main() {
	if err := newRootCmd(&cli{}).Execute(); err != nil {
		os.Exit(1)
	}
}
