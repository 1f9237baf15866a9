package testsupport

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// PodcastRow seeds one ZMTPODCAST record.
type PodcastRow struct {
	PK                int64
	UUID              string
	Title             string
	Author            string
	Category          string
	StoreCollectionID int64
}

// EpisodeRow seeds one ZMTEPISODE record.
type EpisodeRow struct {
	UUID         string
	Title        string
	PubDate      float64
	Duration     float64
	PodcastPK    int64
	PodcastUUID  string
	TranscriptID string
	StoreTrackID int64
}

const librarySchema = `
CREATE TABLE ZMTPODCAST (
    Z_PK INTEGER PRIMARY KEY,
    ZUUID TEXT,
    ZTITLE TEXT,
    ZAUTHOR TEXT,
    ZCATEGORY TEXT,
    ZSTORECOLLECTIONID INTEGER
);
CREATE TABLE ZMTEPISODE (
    Z_PK INTEGER PRIMARY KEY AUTOINCREMENT,
    ZUUID TEXT,
    ZTITLE TEXT,
    ZPUBDATE REAL,
    ZDURATION REAL,
    ZPODCAST INTEGER,
    ZPODCASTUUID TEXT,
    ZTRANSCRIPTIDENTIFIER TEXT,
    ZSTORETRACKID INTEGER
);`

// SeedLibrary creates a minimal Apple Podcasts library database at path with
// the given rows.
func SeedLibrary(t testing.TB, path string, podcasts []PodcastRow, episodes []EpisodeRow) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(librarySchema); err != nil {
		t.Fatalf("create fixture schema: %v", err)
	}
	for _, p := range podcasts {
		_, err := db.Exec(
			`INSERT INTO ZMTPODCAST (Z_PK, ZUUID, ZTITLE, ZAUTHOR, ZCATEGORY, ZSTORECOLLECTIONID)
             VALUES (?, ?, ?, ?, ?, ?)`,
			p.PK, p.UUID, p.Title, p.Author, p.Category, p.StoreCollectionID,
		)
		if err != nil {
			t.Fatalf("seed podcast %q: %v", p.Title, err)
		}
	}
	for _, e := range episodes {
		_, err := db.Exec(
			`INSERT INTO ZMTEPISODE (ZUUID, ZTITLE, ZPUBDATE, ZDURATION, ZPODCAST, ZPODCASTUUID, ZTRANSCRIPTIDENTIFIER, ZSTORETRACKID)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.UUID, e.Title, e.PubDate, e.Duration, e.PodcastPK, e.PodcastUUID, e.TranscriptID, e.StoreTrackID,
		)
		if err != nil {
			t.Fatalf("seed episode %q: %v", e.Title, err)
		}
	}
}
