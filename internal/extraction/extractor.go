// Package extraction turns uploaded resume files into plain text.
package extraction

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxUploadBytes is the upload size ceiling applied when the caller does
// not supply one.
const MaxUploadBytes = 10 << 20

var (
	// ErrUnsupportedFormat is returned for anything but a PDF upload.
	ErrUnsupportedFormat = errors.New("unsupported file format: only pdf is accepted")
	// ErrEmptyDocument is returned when a PDF parses but yields no text,
	// e.g. a scanned image without a text layer.
	ErrEmptyDocument = errors.New("document contains no extractable text")
	// ErrTooLarge is returned when the upload exceeds the size limit.
	ErrTooLarge = errors.New("file exceeds the upload size limit")
)

// Accepts reports whether the filename looks like a supported upload.
func Accepts(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// ExtractText parses the uploaded file and returns normalized plain text.
// maxBytes caps the accepted upload size; zero or negative falls back to
// MaxUploadBytes.
func ExtractText(filename string, data []byte, maxBytes int64) (string, error) {
	if !Accepts(filename) {
		return "", ErrUnsupportedFormat
	}
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	if int64(len(data)) > maxBytes {
		return "", ErrTooLarge
	}
	return extractPDF(data)
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	rs, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	text := normalizeWhitespace(buf.String())
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

var (
	horizontalWS = regexp.MustCompile(`[ \t\r\f\v]+`)
	edgeSpace    = regexp.MustCompile(` *\n *`)
	newlineRuns  = regexp.MustCompile(`\n{3,}`)
)

// normalizeWhitespace collapses horizontal whitespace runs and caps newline
// runs at two, keeping blank lines intact as section boundaries.
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = horizontalWS.ReplaceAllString(s, " ")
	s = edgeSpace.ReplaceAllString(s, "\n")
	s = newlineRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
