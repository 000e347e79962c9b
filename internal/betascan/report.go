package betascan

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

// Markers delimiting the generated table in the README.
const (
	beginMarker = "<!-- BEGIN BETA_MODELS_TABLE -->"
	endMarker   = "<!-- END BETA_MODELS_TABLE -->"
)

// ErrMarkersMissing indicates the README has no table markers. Callers treat
// this as reportable but non-fatal: the README write is skipped, nothing else.
var ErrMarkersMissing = eris.New("betascan: readme markers not found")

// ErrReadmeMissing indicates the README file does not exist. Handled like
// missing markers: the README write is skipped, the run carries on.
var ErrReadmeMissing = eris.New("betascan: readme not found")

// MarkdownTable renders models as a markdown table. Rows keep the order they
// are given (Classify already sorts by provider then name).
func MarkdownTable(models []Model) string {
	rows := []string{
		"| Model Name | Model ID | Provider |",
		"|---|---|---|",
	}
	for _, m := range models {
		rows = append(rows, fmt.Sprintf("| %s | %s | %s |", m.Name, m.ID, m.Provider))
	}
	return strings.Join(rows, "\n")
}

// UpdateReadme replaces everything between the table markers in the README
// with a freshly generated table. Returns ErrReadmeMissing if the README does
// not exist and ErrMarkersMissing if either marker is absent.
func UpdateReadme(path string, models []Model) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrReadmeMissing
		}
		return eris.Wrapf(err, "betascan: read readme %s", path)
	}

	text := string(content)
	if !strings.Contains(text, beginMarker) || !strings.Contains(text, endMarker) {
		return ErrMarkersMissing
	}

	pattern := regexp.MustCompile(
		`(?s)` + regexp.QuoteMeta(beginMarker) + `.*?` + regexp.QuoteMeta(endMarker),
	)
	replacement := beginMarker + "\n" + MarkdownTable(models) + "\n" + endMarker
	updated := pattern.ReplaceAllLiteralString(text, replacement)

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return eris.Wrapf(err, "betascan: write readme %s", path)
	}
	return nil
}
