package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"podscribe/internal/catalog"
)

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "episodes <store-collection-id>",
		Short: "List a subscribed show's episodes from the Podcasts library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collectionID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid store collection id %q", args[0])
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.Open(cfg.Paths.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			episodes, err := store.EpisodesForShow(cmd.Context(), collectionID)
			if err != nil {
				return err
			}
			if len(episodes) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No episodes found for show %d\n", collectionID)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), episodesTable(episodes))
			return nil
		},
	}
}
