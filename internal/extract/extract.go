// Package extract turns uploaded bytes into the canonical text that
// enrichment runs over. Extractors are looked up by declared MIME type.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePPT  = "application/vnd.ms-powerpoint"
	MimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeText = "text/plain"
)

var ErrNoExtractor = errors.New("no text extractor for type")

type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

type ExtractorFunc func(ctx context.Context, data []byte) (string, error)

func (f ExtractorFunc) Extract(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Extractor{}
)

func Register(mimeType string, e Extractor) {
	key := normalize(mimeType)
	if key == "" || e == nil {
		return
	}
	registryMu.Lock()
	registry[key] = e
	registryMu.Unlock()
}

// Text runs the extractor registered for mimeType. The result is trimmed;
// an empty string with a nil error means the file held no text.
func Text(ctx context.Context, mimeType string, data []byte) (string, error) {
	registryMu.RLock()
	e := registry[normalize(mimeType)]
	registryMu.RUnlock()
	if e == nil {
		return "", fmt.Errorf("%w: %s", ErrNoExtractor, mimeType)
	}
	out, err := e.Extract(ctx, data)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Placeholder stands in for text that could not be extracted so downstream
// stages always receive some input.
func Placeholder(mimeType string) string {
	return fmt.Sprintf("Extracted text from %s file (placeholder implementation)", mimeType)
}

func normalize(mimeType string) string {
	if idx := strings.IndexByte(mimeType, ';'); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

func init() {
	Register(MimeText, ExtractorFunc(extractPlain))
	Register(MimePDF, ExtractorFunc(extractPDF))
	Register(MimeDOCX, ExtractorFunc(extractDOCX))
	Register(MimePPTX, ExtractorFunc(extractPPTX))
}
