package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store manages read-only access to the Apple Podcasts library database.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the library database at path in read-only mode. The
// Podcasts app owns the file; nothing here may ever write to it.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open library database: %w", err)
	}

	// One connection for the whole run; concurrent access to the shared
	// database is avoided on purpose.
	db.SetMaxOpenConns(1)

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// EpisodeByTranscriptID looks up the episode whose stored transcript
// identifier equals id, joined with its parent podcast. Returns (nil, nil)
// when no episode matches.
func (s *Store) EpisodeByTranscriptID(ctx context.Context, id string) (*Episode, error) {
	const query = `
        SELECT
            e.ZTITLE,
            e.ZPUBDATE,
            e.ZDURATION,
            p.ZTITLE,
            p.ZAUTHOR,
            p.ZCATEGORY
        FROM ZMTEPISODE e
        JOIN ZMTPODCAST p ON e.ZPODCASTUUID = p.ZUUID
        WHERE e.ZTRANSCRIPTIDENTIFIER = ?`

	var (
		episodeTitle sql.NullString
		pubDate      sql.NullFloat64
		duration     sql.NullFloat64
		podcastTitle sql.NullString
		author       sql.NullString
		category     sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&episodeTitle, &pubDate, &duration, &podcastTitle, &author, &category,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query episode for %s: %w", id, err)
	}

	ep := &Episode{
		EpisodeTitle: episodeTitle.String,
		PodcastTitle: podcastTitle.String,
		Author:       author.String,
		Category:     category.String,
		Duration:     duration.Float64,
	}
	if pubDate.Valid {
		ep.PubDate = appleTime(pubDate.Float64)
	}
	return ep, nil
}

// EpisodesForShow lists every episode of the podcast with the given store
// collection id, newest first.
func (s *Store) EpisodesForShow(ctx context.Context, storeCollectionID int64) ([]ShowEpisode, error) {
	const query = `
        SELECT
            e.ZSTORETRACKID,
            e.ZTITLE,
            e.ZPUBDATE,
            e.ZDURATION,
            e.ZTRANSCRIPTIDENTIFIER,
            e.ZUUID
        FROM ZMTEPISODE e
        JOIN ZMTPODCAST p ON e.ZPODCAST = p.Z_PK
        WHERE p.ZSTORECOLLECTIONID = ?
        ORDER BY e.ZPUBDATE DESC`

	rows, err := s.db.QueryContext(ctx, query, storeCollectionID)
	if err != nil {
		return nil, fmt.Errorf("query episodes for show %d: %w", storeCollectionID, err)
	}
	defer rows.Close()

	var episodes []ShowEpisode
	for rows.Next() {
		var (
			trackID      sql.NullInt64
			title        sql.NullString
			pubDate      sql.NullFloat64
			duration     sql.NullFloat64
			transcriptID sql.NullString
			uuid         sql.NullString
		)
		if err := rows.Scan(&trackID, &title, &pubDate, &duration, &transcriptID, &uuid); err != nil {
			return nil, fmt.Errorf("scan episode row: %w", err)
		}
		ep := ShowEpisode{
			StoreTrackID: trackID.Int64,
			Title:        title.String,
			Duration:     duration.Float64,
			TranscriptID: transcriptID.String,
			UUID:         uuid.String,
		}
		if pubDate.Valid {
			ep.PubDate = appleTime(pubDate.Float64)
		}
		episodes = append(episodes, ep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episode rows: %w", err)
	}
	return episodes, nil
}
