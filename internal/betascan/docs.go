package betascan

import (
	"context"
	"html"
	"os"

	"github.com/rotisserie/eris"

	"github.com/modelwatch/bedrock-catalog/internal/fetcher"
)

// LoadSnapshot reads a saved documentation page and decodes its HTML
// entities into the plaintext form the classifier searches. The markup
// itself is left in place; only entities are decoded, so display names
// containing characters like & still match.
func LoadSnapshot(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "betascan: read documentation snapshot %s", path)
	}
	return html.UnescapeString(string(raw)), nil
}

// FetchSnapshot downloads the documentation page, saves it to path, and
// returns the entity-decoded text.
func FetchSnapshot(ctx context.Context, f *fetcher.HTTPFetcher, url string, path string) (string, error) {
	if _, err := f.DownloadToFile(ctx, url, path); err != nil {
		return "", eris.Wrapf(err, "betascan: fetch documentation from %s", url)
	}
	return LoadSnapshot(path)
}
