// Package extract converts an uploaded payload into plain text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeText = "text/plain"
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrNoText               = errors.New("document contains no extractable text")
)

// Extract returns the plain text of the payload according to its declared
// media type. Extraction failures are user-visible and abort the current
// analysis attempt only; nothing is persisted or retried.
func Extract(payload []byte, mediaType string) (string, error) {
	switch mediaType {
	case MediaTypePDF:
		return fromPDF(payload)
	case MediaTypeText:
		if !utf8.Valid(payload) {
			return "", errors.New("text payload is not valid UTF-8")
		}
		text := strings.TrimSpace(string(payload))
		if text == "" {
			return "", ErrNoText
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

// fromPDF extracts text in page order.
func fromPDF(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", ErrNoText
	}
	reader, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return "", fmt.Errorf("read pdf failed: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text failed: %w", err)
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text failed: %w", err)
	}
	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
