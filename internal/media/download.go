package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PizzaHomicide/hookline/internal/log"
	"github.com/PizzaHomicide/hookline/internal/version"
	"github.com/dustin/go-humanize"
)

// TokenSource supplies the bearer token for authenticated downloads
type TokenSource interface {
	Token() string
}

// Downloader saves speeches to disk.  It talks to the media endpoint directly and never touches a playback session.
type Downloader struct {
	urls   *URLs
	tokens TokenSource
	client *http.Client
}

// Result describes a finished download
type Result struct {
	Path  string
	Bytes int64
}

func (r Result) String() string {
	return fmt.Sprintf("%s (%s)", r.Path, humanize.Bytes(uint64(r.Bytes)))
}

func NewDownloader(urls *URLs, tokens TokenSource, timeout time.Duration) *Downloader {
	return &Downloader{
		urls:   urls,
		tokens: tokens,
		client: &http.Client{Timeout: timeout},
	}
}

// Download fetches the speech into dir.  The file name comes from the Content-Disposition header when present.
func (d *Downloader) Download(ctx context.Context, speechID, dir string) (Result, error) {
	if speechID == "" {
		return Result{}, fmt.Errorf("speech id is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.urls.Download(speechID), nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	if d.tokens != nil {
		if token := d.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("download failed: server returned %s", resp.Status)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create download directory: %w", err)
	}

	name := fileName(resp.Header.Get("Content-Disposition"), speechID)
	tmp, err := os.CreateTemp(dir, ".hookline-*.part")
	if err != nil {
		return Result{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		// No-op once the rename succeeded
		_ = os.Remove(tmp.Name())
	}()

	n, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to write download: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return Result{}, fmt.Errorf("failed to move download into place: %w", err)
	}

	log.Info("Downloaded speech", "id", speechID, "path", path, "size", humanize.Bytes(uint64(n)))
	return Result{Path: path, Bytes: n}, nil
}

// fileName picks the attachment name from a Content-Disposition header, defaulting to <speechID>.mp3
func fileName(disposition, speechID string) string {
	fallback := speechID + ".mp3"
	if disposition == "" {
		return fallback
	}

	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		log.Debug("Unparseable Content-Disposition", "header", disposition, "error", err)
		return fallback
	}

	name := filepath.Base(strings.TrimSpace(params["filename"]))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return fallback
	}
	return name
}
