// Package store persists metadata about uploaded files.
package store

import (
	"context"
	"time"
)

// File is the metadata record kept for each uploaded document.
type File struct {
	FileID     string `json:"file_id"`
	Filename   string `json:"filename"`
	FilePath   string `json:"file_path"`   // Relative to the working directory
	UploadDate string `json:"upload_date"` // RFC 3339
	FileType   string `json:"file_type"`   // Lowercase extension, e.g. ".docx"
}

// Store is a record store for File metadata.
type Store interface {
	Insert(ctx context.Context, f File) error
	// Get returns nil, nil when no record exists.
	Get(ctx context.Context, fileID string) (*File, error)
	// List returns every record, oldest upload first.
	List(ctx context.Context) ([]File, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, fileID string) (bool, error)
	Close() error
}

// TimeLayout is RFC 3339 with fixed microseconds, so stored dates sort as strings.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// FormatTime renders an upload timestamp the way records store it.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
