package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// FileStorage is the contract for the PDF store. Papers reference files by
// stored name only; backends decide where the bytes live.
type FileStorage interface {
	// Save stores the content under the given stored name.
	Save(ctx context.Context, name string, r io.Reader) error
	// Open returns the content and its size. Size is -1 when unknown.
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
	// Delete removes the stored file. Deleting a missing file is not an error.
	Delete(ctx context.Context, name string) error
}

// AllowedPDF reports whether the uploaded filename carries a .pdf extension.
func AllowedPDF(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// StoredName sanitizes the client filename and prefixes it with a timestamp
// so concurrent uploads of the same file cannot collide.
func StoredName(filename string) string {
	return time.Now().Format("20060102_150405") + "_" + sanitize(filename)
}

// sanitize strips path components and keeps only characters that are safe
// in a filename on every backend.
func sanitize(filename string) string {
	base := filepath.Base(filepath.ToSlash(filename))
	var b strings.Builder
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), "._")
	if name == "" {
		name = "file.pdf"
	}
	return name
}
