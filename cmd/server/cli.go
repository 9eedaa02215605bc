package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/dayplan-api/internal/config"
	"github.com/phrazzld/dayplan-api/internal/platform/logger"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// cli holds the command line state shared by every subcommand.
type cli struct {
	root       *cobra.Command
	configPath string
	noColor    bool
	cfg        *config.Config
	// now is the clock handed to the scheduler.
	now func() time.Time
}

// newCLI builds the dayplan command tree.
func newCLI() *cli {
	c := &cli{now: time.Now}

	c.root = &cobra.Command{
		Use:   "dayplan",
		Short: "Three-slot daily planner API",
		Long: `dayplan places tasks into the morning, midday and evening slots of
each user's calendar. Work tasks go on weekdays and personal tasks on
weekends unless a task is fixed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c.noColor {
				disableColor()
			}
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.LoadFile(c.configPath)
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			c.cfg = cfg
			return nil
		},
	}

	c.root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to a YAML config file (default ./config.yaml)")
	c.root.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "Disable colored output")

	c.root.AddCommand(c.versionCmd())
	c.root.AddCommand(c.serveCmd())
	c.root.AddCommand(c.migrateCmd())
	c.root.AddCommand(c.skeletonCmd())
	c.root.AddCommand(c.daysCmd())

	return c
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dayplan %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ExecuteContext runs the command tree.
func (c *cli) ExecuteContext(ctx context.Context) error {
	return c.root.ExecuteContext(ctx)
}

// commandLogger builds the logger of a one-shot command. It writes to w so
// the command's own output stays clean.
func (c *cli) commandLogger(w io.Writer) (*slog.Logger, error) {
	return logger.New(w, c.cfg.Server.LogLevel, c.cfg.Server.LogFormat)
}

// openApp wires an application for a one-shot command.
func (c *cli) openApp(cmd *cobra.Command) (*application, error) {
	log, err := c.commandLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("setting up logger: %w", err)
	}
	return newApplication(cmd.Context(), c.cfg, log, c.now)
}
