package catalog

import "time"

// appleEpochOffset converts Core Data timestamps (seconds since 2001-01-01)
// to Unix time.
const appleEpochOffset = 978307200

// Episode is the metadata record resolved for one transcript identifier.
// Fields may be partially populated; callers must check the titles before
// building names from them.
type Episode struct {
	EpisodeTitle string
	PodcastTitle string
	Author       string
	Category     string
	PubDate      time.Time
	Duration     float64
}

// HasTitles reports whether both titles needed for metadata-derived naming
// are present.
func (e *Episode) HasTitles() bool {
	return e != nil && e.PodcastTitle != "" && e.EpisodeTitle != ""
}

// ShowEpisode is one row of a per-show episode listing.
type ShowEpisode struct {
	StoreTrackID int64
	Title        string
	PubDate      time.Time
	Duration     float64
	TranscriptID string
	UUID         string
}

func appleTime(seconds float64) time.Time {
	return time.Unix(int64(seconds)+appleEpochOffset, 0).UTC()
}
