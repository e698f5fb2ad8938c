package ingestion

import (
	"bytes"
	"io"
	"os/exec"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ExtractTextFromPDF pulls the PDF's text layer; returns an empty string
// when the document has none (a scanned PDF).
func ExtractTextFromPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	b, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(&buf, b); err != nil {
		return "", err
	}
	text := strings.TrimSpace(buf.String())
	if text == "" {
		// try pdftotext CLI if available
		out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
		if err == nil {
			return string(out), nil
		}
	}
	return text, nil
}
