package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestURLs(t *testing.T) {
	urls, err := NewURLs("https://media.example.com/")
	require.NoError(t, err)

	assert.Equal(t, "https://media.example.com/speeches/s1", urls.Speech("s1"))
	assert.Equal(t, "https://media.example.com/samples/v1", urls.Sample("v1"))
	assert.Equal(t, "https://media.example.com/speeches/s1?download", urls.Download("s1"))
}

func TestURLsKeepBasePath(t *testing.T) {
	urls, err := NewURLs("http://localhost:8080/media")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/media/samples/v2", urls.Sample("v2"))
}

func TestNewURLsRejectsRelative(t *testing.T) {
	_, err := NewURLs("media.example.com")
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "s1.mp3", fileName("", "s1"))
	assert.Equal(t, "hook.mp3", fileName(`attachment; filename="hook.mp3"`, "s1"))
	assert.Equal(t, "passwd", fileName(`attachment; filename="../../etc/passwd"`, "s1"))
	assert.Equal(t, "s1.mp3", fileName(`attachment; filename=""`, "s1"))
	assert.Equal(t, "s1.mp3", fileName(`;;;`, "s1"))
}

func TestDownload(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Disposition", `attachment; filename="voiceover.mp3"`)
		_, _ = w.Write([]byte("ID3 audio bytes"))
	}))
	defer server.Close()

	urls, err := NewURLs(server.URL)
	require.NoError(t, err)

	dir := t.TempDir()
	d := NewDownloader(urls, staticToken("secret"), 5*time.Second)
	result, err := d.Download(context.Background(), "s1", dir)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "download", gotQuery)
	assert.Equal(t, filepath.Join(dir, "voiceover.mp3"), result.Path)
	assert.Equal(t, int64(15), result.Bytes)

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Equal(t, "ID3 audio bytes", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should not be left behind")
}

func TestDownloadFallbackNameAndErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/speeches/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("abc"))
	}))
	defer server.Close()

	urls, err := NewURLs(server.URL)
	require.NoError(t, err)
	dir := t.TempDir()
	d := NewDownloader(urls, nil, 5*time.Second)

	result, err := d.Download(context.Background(), "s2", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "s2.mp3"), result.Path)

	_, err = d.Download(context.Background(), "missing", dir)
	assert.Error(t, err)

	_, err = d.Download(context.Background(), "", dir)
	assert.Error(t, err)
}
