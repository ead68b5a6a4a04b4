// Package pdfx converts PDF bytes into plain text. It is the
// text-extraction collaborator consumed by the heuristic bill parser;
// callers that want to substitute a different engine (or a fake in
// tests) implement TextExtractor.
package pdfx

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// TextExtractor converts a document's raw bytes into plain text.
// Implementations return an error when the document is corrupt or
// contains no extractable text.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// Extractor is the default TextExtractor, backed by ledongthuc/pdf.
type Extractor struct{}

// New creates a new Extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractText extracts the plain text of every page in data.
func (e *Extractor) ExtractText(data []byte) (text string, err error) {
	// The underlying reader panics on some malformed files; surface
	// those as ordinary errors so callers only ever see the error path.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = errorRegistry.NewWithCause(ErrUnreadable, fmt.Errorf("reader panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errorRegistry.NewWithCause(ErrUnreadable, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", errorRegistry.NewWithCause(ErrUnreadable, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", errorRegistry.NewWithCause(ErrUnreadable, err)
	}

	text = buf.String()
	if strings.TrimSpace(text) == "" {
		return "", errorRegistry.New(ErrNoText)
	}

	return sanitizeUTF8(text), nil
}

// sanitizeUTF8 replaces invalid byte sequences with the Unicode
// replacement character so downstream regex scanning never fails.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		sb.WriteRune(r)
	}
	return sb.String()
}
