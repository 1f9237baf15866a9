package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"podscribe/internal/appleapi"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "fetch <episode-id>",
		Short: "Download an episode's TTML transcript from the Apple Podcasts catalog",
		Long: `Download an episode's TTML transcript from the Apple Podcasts catalog.

The episode id is the store track id shown by "podscribe episodes". Requests
are authenticated with the credentials in the [api] config section.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			episodeID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid episode id %q", args[0])
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			client := appleapi.NewClient(cfg)
			path, err := client.FetchTranscript(cmd.Context(), episodeID, outputFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Transcript saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output filename (default: the catalog's TTML filename)")
	return cmd
}
