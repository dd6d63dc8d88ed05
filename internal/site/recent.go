package site

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/sitefix/internal/logfields"
)

// Metadata holds optional display fields for a logged URL.
type Metadata struct {
	Title       string `json:"title,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
}

// enrichmentIndex mirrors the on-disk enrichment file layout.
type enrichmentIndex struct {
	Items map[string]Metadata `json:"items"`
}

// ReadRecent returns up to limit most-recently-appended URLs from the tabular
// log, oldest first (callers reverse for newest-first display). The first row
// is a header and skipped. Rows whose first column is not an http(s) URL are
// ignored. A missing log file yields an empty result, not an error.
//
// A URL appearing in multiple rows stays duplicated: the feed is a view of the
// log, not a set.
func ReadRecent(logPath string, limit int) ([]string, error) {
	f, err := os.Open(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var urls []string
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			continue
		}
		if len(row) == 0 {
			continue
		}
		u := strings.TrimSpace(row[0])
		if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
			urls = append(urls, u)
		}
	}

	// Keep the most recent window.
	if limit >= 0 && len(urls) > limit {
		urls = urls[len(urls)-limit:]
	}
	return urls, nil
}

// LoadEnrichment reads the URL -> metadata index. Degradation is deliberate:
// a missing file, malformed JSON, or absent "items" key all return an empty
// map so a bad enrichment file never fails the build. Malformed content is
// surfaced as a warning rather than swallowed.
func LoadEnrichment(path string) map[string]Metadata {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Enrichment index unreadable, continuing without metadata",
				logfields.Path(path), logfields.Error(err))
		}
		return map[string]Metadata{}
	}

	var idx enrichmentIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		slog.Warn("Enrichment index malformed, continuing without metadata",
			logfields.Path(path), logfields.Error(err))
		return map[string]Metadata{}
	}
	if idx.Items == nil {
		return map[string]Metadata{}
	}
	return idx.Items
}
