package ingestion

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// ExtractTextWithOCR runs OCR on images or scanned PDFs. PDF pages are
// rendered to PNGs with pdftoppm (poppler) first.
func ExtractTextWithOCR(path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		return runTesseract(path)
	}

	tmpPrefix := filepath.Join(os.TempDir(), "mixrag_pdfimg")
	cmd := exec.Command("pdftoppm", "-png", path, tmpPrefix)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftoppm convert failed: %w", err)
	}
	pages, err := filepath.Glob(tmpPrefix + "-*.png")
	if err != nil {
		return "", err
	}

	var combined strings.Builder
	for _, page := range pages {
		text, err := runTesseract(page)
		if err != nil {
			continue
		}
		combined.WriteString(text)
		combined.WriteString("\n")
		os.Remove(page)
	}
	return strings.TrimSpace(combined.String()), nil
}

func runTesseract(imgPath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetImage(imgPath); err != nil {
		return "", err
	}
	text, err := client.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
