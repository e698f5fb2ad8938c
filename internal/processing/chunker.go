package processing

import (
	"regexp"
	"strings"
)

const (
	maxChunkSize = 1000
	chunkOverlap = 200
)

var paraSplit = regexp.MustCompile(`\n{2,}`)

// ChunkText splits text into paragraph chunks, further splitting very long
// paragraphs into ~1000-char windows with overlap. A chunk's position in the
// returned slice is its index within the source document.
func ChunkText(text string) []string {
	paras := paraSplit.Split(text, -1)
	var out []string
	for _, p := range paras {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, splitLong(p, maxChunkSize, chunkOverlap)...)
	}
	return out
}

func splitLong(s string, max, overlap int) []string {
	if len(s) <= max {
		return []string{s}
	}
	var res []string
	for i := 0; i < len(s); i += max - overlap {
		end := i + max
		if end > len(s) {
			end = len(s)
		}
		res = append(res, strings.TrimSpace(s[i:end]))
		if end == len(s) {
			break
		}
	}
	return res
}
