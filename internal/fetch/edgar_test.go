package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edgarcli/internal/config"
)

func testFetchConfig() config.FetchConfig {
	return config.FetchConfig{
		UserAgent:         "edgarcli test@example.com",
		FallbackUserAgent: "fallback test@example.com",
		Timeout:           5 * time.Second,
		RequestsPerSecond: 100,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchFiling(t *testing.T) {
	t.Run("success carries identifying user agent", func(t *testing.T) {
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Write([]byte("<ownershipDocument/>"))
		}))
		defer srv.Close()

		client := NewClient(testFetchConfig(), testLogger())
		body, err := client.FetchFiling(context.Background(), srv.URL+"/doc.xml")
		require.NoError(t, err)
		assert.Equal(t, "<ownershipDocument/>", body)
		assert.Equal(t, "edgarcli test@example.com", gotUA)
	})

	t.Run("forbidden retries with fallback user agent", func(t *testing.T) {
		var agents []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agents = append(agents, r.Header.Get("User-Agent"))
			if len(agents) == 1 {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.Write([]byte("ok"))
		}))
		defer srv.Close()

		client := NewClient(testFetchConfig(), testLogger())
		body, err := client.FetchFiling(context.Background(), srv.URL+"/doc.xml")
		require.NoError(t, err)
		assert.Equal(t, "ok", body)
		require.Len(t, agents, 2)
		assert.Equal(t, "edgarcli test@example.com", agents[0])
		assert.Equal(t, "fallback test@example.com", agents[1])
	})

	t.Run("xsl rendered path falls back to raw document", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/Archives/xslF345X05/doc.xml" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte("raw document"))
		}))
		defer srv.Close()

		client := NewClient(testFetchConfig(), testLogger())
		body, err := client.FetchFiling(context.Background(), srv.URL+"/Archives/xslF345X05/doc.xml")
		require.NoError(t, err)
		assert.Equal(t, "raw document", body)
	})

	t.Run("persistent failure surfaces status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := NewClient(testFetchConfig(), testLogger())
		_, err := client.FetchFiling(context.Background(), srv.URL+"/doc.xml")
		assert.ErrorContains(t, err, "unexpected status 503")
	})

	t.Run("download stores the document for the batch run", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<ownershipDocument/>"))
		}))
		defer srv.Close()

		destDir := filepath.Join(t.TempDir(), "filings")
		client := NewClient(testFetchConfig(), testLogger())
		dest, err := client.Download(context.Background(), srv.URL+"/Archives/edgar/data/0000320193/form4.xml?x=1", destDir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(destDir, "form4.xml"), dest)

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "<ownershipDocument/>", string(data))
	})

	t.Run("download rejects URL without a document name", func(t *testing.T) {
		client := NewClient(testFetchConfig(), testLogger())
		_, err := client.Download(context.Background(), "https://www.sec.gov/", t.TempDir())
		assert.ErrorContains(t, err, "no document name")
	})

	t.Run("cancelled context stops the request", func(t *testing.T) {
		client := NewClient(testFetchConfig(), testLogger())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.FetchFiling(ctx, "http://127.0.0.1:0/doc.xml")
		assert.Error(t, err)
	})
}
