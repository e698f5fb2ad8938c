package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LoadLocalFile extracts the text of one local file and wraps it as a
// Document named after its base name.
func LoadLocalFile(path string) (Document, error) {
	text, err := ExtractText(path)
	if err != nil {
		return Document{}, err
	}
	return Document{
		Name:       filepath.Base(path),
		Origin:     OriginLocal,
		ImportedAt: time.Now(),
		Text:       text,
	}, nil
}

// ExtractText detects file type and returns text via direct extraction or OCR.
func ExtractText(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".md":
		b, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case ".pdf":
		// try the text layer first
		text, err := ExtractTextFromPDF(path)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		// scanned PDF, fall back to OCR
		return ExtractTextWithOCR(path)
	case ".png", ".jpg", ".jpeg":
		return ExtractTextWithOCR(path)
	default:
		return "", errors.New("unsupported file type")
	}
}
