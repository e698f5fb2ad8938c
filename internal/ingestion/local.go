package ingestion

import (
	"io/fs"
	"log"
	"path/filepath"
	"strings"
)

var allowedExt = []string{".pdf", ".txt", ".md", ".png", ".jpg", ".jpeg"}

// LoadLocalFiles walks root and returns the paths of all indexable files.
func LoadLocalFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, a := range allowedExt {
			if ext == a {
				out = append(out, path)
				break
			}
		}
		return nil
	})
	return out, err
}

// LoadLocalDocuments extracts every indexable file under root as Documents.
// Files that fail extraction are skipped with a log line.
func LoadLocalDocuments(root string) ([]Document, error) {
	paths, err := LoadLocalFiles(root)
	if err != nil {
		return nil, err
	}
	var docs []Document
	for _, p := range paths {
		doc, err := LoadLocalFile(p)
		if err != nil {
			log.Printf("skip file %s: %v", filepath.Base(p), err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
