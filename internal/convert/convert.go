// Package convert is the boundary between callers and document extraction:
// it validates the source path, runs parsing and structure building, and
// turns every fault into an *Error.
package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/wordjson/internal/doctree"
	"github.com/dgallion1/wordjson/internal/parser"
	"github.com/dgallion1/wordjson/internal/structure"
)

// Converter turns document files into doctree Documents.
type Converter struct {
	log   *slog.Logger
	cache *Cache
}

// NewConverter creates a converter. cache may be nil.
func NewConverter(log *slog.Logger, cache *Cache) *Converter {
	return &Converter{log: log, cache: cache}
}

// Convert validates path and extracts its structure. The returned error is
// always an *Error; panics raised while extracting are recovered into one.
func (c *Converter) Convert(path string) (doc *doctree.Document, err error) {
	log := c.log.With("path", path)

	if _, statErr := os.Stat(path); statErr != nil {
		log.Error("file not found", "error", statErr)
		return nil, &Error{Kind: KindNotFound, Path: path}
	}

	p, perr := parser.ForFile(path)
	if perr != nil {
		log.Error("unsupported document type")
		return nil, &Error{Kind: KindInvalidType, Path: path}
	}

	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &Error{Kind: KindExtraction, Path: path, Err: fmt.Errorf("extract %s: %v", filepath.Base(path), r)}
			log.Error("extraction panicked", "panic", r)
		}
	}()

	data, rerr := os.ReadFile(path)
	if rerr != nil {
		log.Error("read failed", "error", rerr)
		return nil, &Error{Kind: KindExtraction, Path: path, Err: rerr}
	}

	// The parser depends on the extension, so identical bytes under another
	// extension are a different conversion.
	key := strings.ToLower(filepath.Ext(path)) + ":" + ContentHashHex(data)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			log.Debug("conversion cache hit", "cache_key", key)
			return cached, nil
		}
	}

	src, perr := p.Parse(bytes.NewReader(data), filepath.Base(path))
	if perr != nil {
		log.Error("parse failed", "error", perr)
		return nil, &Error{Kind: KindExtraction, Path: path, Err: perr}
	}

	doc, stats := structure.BuildWithStats(src.Paragraphs, src.Tables)
	log.Info("document converted",
		"sections", len(doc.Sections),
		"paragraphs", stats.Paragraphs,
		"dropped_lines", stats.DroppedLines,
		"tables", stats.Tables,
		"dropped_tables", stats.DroppedTables,
	)

	if c.cache != nil {
		c.cache.Put(key, doc)
	}
	return doc, nil
}

// ConvertToFile converts path and writes the JSON result to outPath. On a
// conversion error nothing is written.
func (c *Converter) ConvertToFile(path, outPath string) (*doctree.Document, error) {
	doc, err := c.Convert(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return doc, fmt.Errorf("create output: %w", err)
	}
	if err := WriteJSON(f, doc); err != nil {
		f.Close()
		return doc, fmt.Errorf("write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return doc, fmt.Errorf("close output: %w", err)
	}
	c.log.Info("JSON data saved", "output", outPath)
	return doc, nil
}

// Result folds a Convert return into the value callers serialize: the
// document on success, otherwise an ErrorResult.
func Result(doc *doctree.Document, err error) any {
	if err != nil {
		return ErrorResult{Error: err.Error()}
	}
	return doc
}

// WriteJSON writes v indented by two spaces without HTML escaping.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
