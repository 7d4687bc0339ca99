// Package store persists edited lyrics drafts in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	dbutil "github.com/llehouerou/lrcsync/internal/db"
)

// Record is the stored lyrics of one track.
type Record struct {
	Path      string
	LRC       string // generated LRC, empty if never saved
	Text      string // plain lyrics fallback
	UpdatedAt time.Time
}

// Store is a draft store backed by a SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; keep a single connection so ":memory:"
	// databases are shared too.
	db.SetMaxOpenConns(1)

	if err := initSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the record for path, or nil when nothing is stored.
func (s *Store) Get(ctx context.Context, path string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT lrc, lyrics_text, updated_at FROM track_lyrics WHERE path = ?
	`, path)

	var lrc, text sql.NullString
	var updated sql.NullInt64
	err := row.Scan(&lrc, &text, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // an unknown track is not an error
	}
	if err != nil {
		return nil, err
	}

	return &Record{
		Path:      path,
		LRC:       dbutil.NullStringValue(lrc),
		Text:      dbutil.NullStringValue(text),
		UpdatedAt: time.Unix(dbutil.NullInt64Value(updated), 0),
	}, nil
}

// SaveLRC stores the generated LRC for path, keeping any plain text.
func (s *Store) SaveLRC(ctx context.Context, path, lrc string) error {
	return dbutil.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO track_lyrics (path, lrc, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				lrc = excluded.lrc,
				updated_at = excluded.updated_at
		`, path, dbutil.NullString(lrc), s.now().Unix())
		return err
	})
}

// SavePlain stores the plain lyrics fallback for path, keeping any LRC.
func (s *Store) SavePlain(ctx context.Context, path, text string) error {
	return dbutil.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO track_lyrics (path, lyrics_text, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				lyrics_text = excluded.lyrics_text,
				updated_at = excluded.updated_at
		`, path, dbutil.NullString(text), s.now().Unix())
		return err
	})
}

// Delete forgets everything stored for path.
func (s *Store) Delete(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM track_lyrics WHERE path = ?`, path)
	return err
}

// List returns all records, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, lrc, lyrics_text, updated_at FROM track_lyrics
		ORDER BY updated_at DESC, path
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var lrc, text sql.NullString
		var updated int64
		if err := rows.Scan(&r.Path, &lrc, &text, &updated); err != nil {
			return nil, err
		}
		r.LRC = dbutil.NullStringValue(lrc)
		r.Text = dbutil.NullStringValue(text)
		r.UpdatedAt = time.Unix(updated, 0)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Draft implements lyrics.DraftStore.
func (s *Store) Draft(ctx context.Context, path string) (lrc, plain string, err error) {
	r, err := s.Get(ctx, path)
	if err != nil || r == nil {
		return "", "", err
	}
	return r.LRC, r.Text, nil
}

// SaveDraft implements lyrics.DraftStore.
func (s *Store) SaveDraft(ctx context.Context, path, lrc string) error {
	return s.SaveLRC(ctx, path, lrc)
}
