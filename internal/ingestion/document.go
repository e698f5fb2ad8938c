// Package ingestion loads raw text from local files, web pages, and Google
// Drive for the knowledge-base build phase.
package ingestion

import "time"

// Origin of a loaded document.
const (
	OriginLocal  = "local"
	OriginURL    = "url"
	OriginGDrive = "gdrive"
)

// Document is one loaded source, ready for chunking. Name is the source
// identifier that ends up in answer citations.
type Document struct {
	Name       string
	Origin     string
	ImportedAt time.Time
	Text       string
}
