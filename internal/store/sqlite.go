package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS files (
	file_id     TEXT PRIMARY KEY,
	filename    TEXT NOT NULL,
	file_path   TEXT NOT NULL,
	upload_date TEXT NOT NULL,
	file_type   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_files_upload_date ON files(upload_date);
`

// SQLiteStore keeps file records in a local SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	log *slog.Logger
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// schema. ":memory:" opens a private in-memory database.
func OpenSQLite(path string, log *slog.Logger) (*SQLiteStore, error) {
	memory := path == ":memory:"
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if memory {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: exec schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	log.Info("opened file store", "backend", "sqlite", "path", path)
	return &SQLiteStore{db: db, log: log}, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, f File) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files (file_id, filename, file_path, upload_date, file_type)
		VALUES (?, ?, ?, ?, ?)
	`, f.FileID, f.Filename, f.FilePath, f.UploadDate, f.FileType)
	if err != nil {
		return fmt.Errorf("insert file %s: %w", f.FileID, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, fileID string) (*File, error) {
	var f File
	err := s.db.QueryRowContext(ctx, `
		SELECT file_id, filename, file_path, upload_date, file_type
		FROM files WHERE file_id = ?
	`, fileID).Scan(&f.FileID, &f.Filename, &f.FilePath, &f.UploadDate, &f.FileType)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", fileID, err)
	}
	return &f, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]File, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_id, filename, file_path, upload_date, file_type
		FROM files ORDER BY upload_date, file_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	files := []File{}
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.FileID, &f.Filename, &f.FilePath, &f.UploadDate, &f.FileType); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, fileID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM files WHERE file_id = ?`, fileID)
	if err != nil {
		return false, fmt.Errorf("delete file %s: %w", fileID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete file %s: %w", fileID, err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
