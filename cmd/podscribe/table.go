package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"podscribe/internal/catalog"
	"podscribe/internal/timecode"
)

// episodesTable renders the listing for one show, newest first as returned by
// the store. The transcript column marks episodes with a cached TTML id.
func episodesTable(episodes []catalog.ShowEpisode) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Episode ID", "Published", "Duration", "Title", "Transcript"})

	for _, ep := range episodes {
		transcript := ""
		if ep.TranscriptID != "" {
			transcript = "yes"
		}
		tw.AppendRow(table.Row{
			strconv.FormatInt(ep.StoreTrackID, 10),
			ep.PubDate.Format("2006-01-02"),
			timecode.FormatSeconds(ep.Duration),
			ep.Title,
			transcript,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
