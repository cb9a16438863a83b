// Package upload places uploaded documents on disk.
package upload

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrTooLarge is returned by Save when the upload exceeds its size limit.
var ErrTooLarge = errors.New("file exceeds max size")

// Dir stores uploads as <root>/<file_id>_<filename>.
type Dir struct {
	root string
}

// NewDir creates root if needed.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) Root() string {
	return d.root
}

// RelPath is the stored path for an upload, relative to the working directory
// when root is relative.
func (d *Dir) RelPath(fileID, filename string) string {
	return filepath.Join(d.root, fileID+"_"+filename)
}

// Save writes at most limit bytes from r to the upload's path. A larger body
// leaves nothing behind and returns ErrTooLarge.
func (d *Dir) Save(fileID, filename string, r io.Reader, limit int64) (string, int64, error) {
	rel := d.RelPath(fileID, filename)
	f, err := os.OpenFile(rel, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("create upload: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, limit+1))
	if err == nil && n > limit {
		err = ErrTooLarge
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		os.Remove(rel)
		if errors.Is(err, ErrTooLarge) {
			return "", 0, err
		}
		return "", 0, fmt.Errorf("write upload: %w", err)
	}
	return rel, n, nil
}

// Abs resolves a stored path against the working directory.
func (d *Dir) Abs(rel string) (string, error) {
	return filepath.Abs(rel)
}

// Exists reports whether a stored path is present on disk.
func (d *Dir) Exists(rel string) bool {
	_, err := os.Stat(rel)
	return err == nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (d *Dir) Remove(rel string) error {
	if err := os.Remove(rel); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// SanitizeFilename strips directory components and traversal sequences.
func SanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
