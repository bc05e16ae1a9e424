package sqlite

import (
	"database/sql"
	"fmt"

	"youtube-whisper/internal/app/model"
)

type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens the history database at dbFilePath.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	db, err := Open(dbFilePath)
	if err != nil {
		return nil, err
	}
	return &SQLiteDB{db: db}, nil
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) Insert(run model.Run) error {
	insertSQL := `INSERT INTO runs (id, url, title, media_path, audio_path, transcript_path, audio_duration,
		transcript, model, language, has_error, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := sdb.db.Exec(insertSQL,
		run.ID, run.URL, run.Title, run.MediaPath, run.AudioPath, run.TranscriptPath, run.AudioDuration,
		run.Transcript, run.Model, run.Language, run.HasError, run.ErrorMessage, run.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

func (sdb *SQLiteDB) GetAll() ([]model.Run, error) {
	sqlStr := `
		SELECT id, url, title, media_path, audio_path, transcript_path, audio_duration,
		       transcript, model, language, has_error, error_message, created_at
		FROM runs
		ORDER BY created_at DESC, rowid DESC;`
	rows, err := sdb.db.Query(sqlStr)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	runs := make([]model.Run, 0)
	for rows.Next() {
		var r model.Run
		err = rows.Scan(&r.ID, &r.URL, &r.Title, &r.MediaPath, &r.AudioPath, &r.TranscriptPath, &r.AudioDuration,
			&r.Transcript, &r.Model, &r.Language, &r.HasError, &r.ErrorMessage, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return runs, nil
}

func (sdb *SQLiteDB) CountSucceeded(url string) (int, error) {
	var count int
	err := sdb.db.QueryRow(`SELECT COUNT(*) FROM runs WHERE url = ? AND has_error = 0`, url).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("query failed: %w", err)
	}
	return count, nil
}
