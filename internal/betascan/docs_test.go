package betascan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelwatch/bedrock-catalog/internal/fetcher"
)

func TestFetchSnapshot_SavesRawAndReturnsDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<td>Claude &amp; Friends</td>"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "page.html")
	doc, err := FetchSnapshot(context.Background(), fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}), srv.URL, path)
	require.NoError(t, err)
	assert.Contains(t, doc, "Claude & Friends")

	// The saved snapshot keeps the raw entities; decoding happens on load.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<td>Claude &amp; Friends</td>", string(raw))
}

func TestFetchSnapshot_DownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "page.html")
	_, err := FetchSnapshot(context.Background(), fetcher.NewHTTPFetcher(fetcher.HTTPOptions{}), srv.URL, path)
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}
