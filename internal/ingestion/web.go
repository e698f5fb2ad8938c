package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const userAgent = "mixrag-agent/1.0"

// FetchURL downloads a web page and strips it down to its visible text.
func FetchURL(ctx context.Context, url string) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Document{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	text, err := htmlToText(resp.Body)
	if err != nil {
		return Document{}, fmt.Errorf("parsing %s: %w", url, err)
	}
	if strings.TrimSpace(text) == "" {
		return Document{}, fmt.Errorf("no text content in %s", url)
	}

	return Document{
		Name:       url,
		Origin:     OriginURL,
		ImportedAt: time.Now(),
		Text:       text,
	}, nil
}

// htmlToText walks the token stream and keeps text outside script/style.
func htmlToText(r io.Reader) (string, error) {
	tz := html.NewTokenizer(r)
	var (
		b    strings.Builder
		skip int
	)
	for {
		switch tz.Next() {
		case html.ErrorToken:
			if errors.Is(tz.Err(), io.EOF) {
				return b.String(), nil
			}
			return b.String(), tz.Err()
		case html.StartTagToken:
			name, _ := tz.TagName()
			switch string(name) {
			case "script", "style", "noscript":
				skip++
			case "p", "br", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteString("\n")
			}
		case html.EndTagToken:
			name, _ := tz.TagName()
			switch string(name) {
			case "script", "style", "noscript":
				if skip > 0 {
					skip--
				}
			case "p", "div", "li":
				b.WriteString("\n")
			}
		case html.TextToken:
			if skip == 0 {
				if t := strings.TrimSpace(string(tz.Text())); t != "" {
					b.WriteString(t)
					b.WriteString(" ")
				}
			}
		}
	}
}
