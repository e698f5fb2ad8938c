package ingestion

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Drive MIME types we can turn into text.
const (
	mimeGoogleDoc = "application/vnd.google-apps.document"
	mimePDF       = "application/pdf"
	mimeText      = "text/plain"
)

// LoadDriveFolder downloads the indexable files of one Google Drive folder.
// credentialsPath points at a service-account JSON key with read access.
// Files that cannot be converted are skipped with a log line, not an error.
func LoadDriveFolder(ctx context.Context, credentialsPath, folderID string) ([]Document, error) {
	key, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading drive credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, key, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parsing drive credentials: %w", err)
	}
	svc, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}

	query := fmt.Sprintf("'%s' in parents and trashed = false", folderID)
	var docs []Document
	pageToken := ""
	for {
		call := svc.Files.List().Q(query).Fields("nextPageToken, files(id, name, mimeType)").PageSize(100)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		page, err := call.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("listing drive folder %s: %w", folderID, err)
		}

		for _, f := range page.Files {
			text, err := driveFileText(ctx, svc, f)
			if err != nil {
				log.Printf("skip drive file %s (%s): %v", f.Name, f.MimeType, err)
				continue
			}
			docs = append(docs, Document{
				Name:       f.Name,
				Origin:     OriginGDrive,
				ImportedAt: time.Now(),
				Text:       text,
			})
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}
	return docs, nil
}

func driveFileText(ctx context.Context, svc *drive.Service, f *drive.File) (string, error) {
	switch f.MimeType {
	case mimeGoogleDoc:
		resp, err := svc.Files.Export(f.Id, mimeText).Context(ctx).Download()
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		return string(b), err
	case mimeText:
		resp, err := svc.Files.Get(f.Id).Context(ctx).Download()
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		return string(b), err
	case mimePDF:
		// download to a temp file and reuse the local PDF path
		resp, err := svc.Files.Get(f.Id).Context(ctx).Download()
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		tmp, err := os.CreateTemp("", "mixrag_gdrive_*.pdf")
		if err != nil {
			return "", err
		}
		defer os.Remove(tmp.Name())
		if _, err := io.Copy(tmp, resp.Body); err != nil {
			tmp.Close()
			return "", err
		}
		tmp.Close()
		return ExtractText(tmp.Name())
	default:
		if strings.HasPrefix(f.MimeType, "text/") {
			resp, err := svc.Files.Get(f.Id).Context(ctx).Download()
			if err != nil {
				return "", err
			}
			defer resp.Body.Close()
			b, err := io.ReadAll(resp.Body)
			return string(b), err
		}
		return "", fmt.Errorf("unsupported mime type")
	}
}
