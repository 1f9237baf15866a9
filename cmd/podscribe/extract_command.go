package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"podscribe/internal/ttml"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var timestamps bool

	cmd := &cobra.Command{
		Use:   "extract <input.ttml> <output.txt>",
		Short: "Extract a single TTML file to plain text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			includeTimestamps := cfg.Output.Timestamps
			if cmd.Flags().Changed("timestamps") {
				includeTimestamps = timestamps
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			if err := ttml.ExtractToFile(data, args[1], includeTimestamps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Transcript saved to %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&timestamps, "timestamps", false, "Prefix paragraphs with [HH:MM:SS] offsets")
	return cmd
}
