package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"studynotes/config"
	"studynotes/document"
	"studynotes/logging"
)

// commandContext carries state shared by every subcommand.
type commandContext struct {
	envFiles []string
	cfg      *config.Config
	logger   *slog.Logger
}

func (c *commandContext) load() error {
	cfg, err := config.Load(c.envFiles...)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	c.cfg, c.logger = cfg, logger
	return nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "studynotes",
		Short:         "Turn YouTube transcripts into study-note PDFs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return ctx.load()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), ctx.cfg, ctx.logger)
		},
	}
	rootCmd.PersistentFlags().StringSliceVar(&ctx.envFiles, "env-file", nil, "Env file(s) to load before reading the environment (default .env)")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newSweepCommand(ctx))
	return rootCmd
}

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), ctx.cfg, ctx.logger)
		},
	}
}

func newSweepCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Remove stale rendered PDFs left behind by a crashed server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newStore(cmd.Context(), ctx.cfg)
			if err != nil {
				return err
			}
			sweeper, ok := store.(document.Sweeper)
			if !ok {
				return fmt.Errorf("artifact store %q cannot be swept", ctx.cfg.ArtifactStore)
			}
			if olderThan <= 0 {
				olderThan = ctx.cfg.ArtifactMaxAge
			}
			if floor := ctx.cfg.MinArtifactAge(); olderThan < floor {
				return fmt.Errorf("--older-than must be at least %s so live downloads are not removed, got %s", floor, olderThan)
			}
			n, err := sweeper.Sweep(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d stale artifact(s)\n", n)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Minimum artifact age to remove (default ARTIFACT_MAX_AGE)")
	return cmd
}
