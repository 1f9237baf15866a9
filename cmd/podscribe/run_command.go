package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"podscribe/internal/batch"
	"podscribe/internal/catalog"
	"podscribe/internal/logging"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		timestamps   bool
		skipExisting bool
		outputDir    string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Extract every transcript in the Apple Podcasts cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *loaded
			if cmd.Flags().Changed("timestamps") {
				cfg.Output.Timestamps = timestamps
			}
			if cmd.Flags().Changed("skip-existing") {
				cfg.Output.SkipExisting = skipExisting
			}
			if outputDir != "" {
				cfg.Paths.OutputDir = outputDir
			}
			if verbose {
				cfg.Logging.Level = "debug"
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			if _, err := os.Stat(cfg.Paths.DatabasePath); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("library database not found at %s; make sure the Podcasts app has been used on this machine", cfg.Paths.DatabasePath)
				}
				return fmt.Errorf("inspect library database: %w", err)
			}

			logger, err := logging.NewFromConfig(&cfg)
			if err != nil {
				return err
			}

			store, err := catalog.Open(cfg.Paths.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			runner := batch.NewRunner(&cfg, catalog.NewResolver(store, logger), logger)
			stats, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Processed %d of %d transcripts (%d skipped, %d failed)\n",
				stats.Processed, stats.Found, stats.Skipped, stats.Failed,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&timestamps, "timestamps", false, "Prefix paragraphs with [HH:MM:SS] offsets")
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", true, "Leave already-written transcripts untouched")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for transcript files (default from config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log per-document detail")
	return cmd
}
