package store

import (
	"context"
	"database/sql"

	dbutil "github.com/llehouerou/lrcsync/internal/db"
)

const currentSchemaVersion = 1

func initSchema(ctx context.Context, db *sql.DB) error {
	return dbutil.WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS track_lyrics (
				path TEXT PRIMARY KEY,
				lrc TEXT,
				lyrics_text TEXT,
				updated_at INTEGER NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_track_lyrics_updated_at ON track_lyrics(updated_at);
		`)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
		return err
	})
}
