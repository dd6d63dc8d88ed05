// Package site derives canonical page data from a built output tree: the
// sitemap URL list, the recent-items window, and per-page display metadata.
package site

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitefix/internal/sets"
)

// probeArtifacts are top-level files included in the sitemap whenever present,
// regardless of extension.
var probeArtifacts = []string{
	"all.html",
	"about.html",
	"rss.xml",
	"sitemap.xml",
	"robots.txt",
	"backlink-feed.xml",
}

// NormalizeBaseURL trims surrounding whitespace and any trailing slashes so
// canonical URLs can be formed by plain concatenation.
func NormalizeBaseURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return u
	}
	return strings.TrimRight(u, "/")
}

// Collect walks the output tree and returns the deduplicated, lexicographically
// sorted list of canonical page URLs. An output tree without HTML files yields
// an empty (or probe-only) list, not an error.
func Collect(outDir, baseURL string) ([]string, error) {
	pages := sets.New[string]()

	if _, err := os.Stat(filepath.Join(outDir, "index.html")); err == nil {
		pages.Add(baseURL + "/")
	}

	err := filepath.WalkDir(outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".html") {
			return nil
		}
		rel, err := filepath.Rel(outDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "index.html" {
			// Already covered by the trailing-slash root URL.
			return nil
		}
		pages.Add(baseURL + "/" + rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, name := range probeArtifacts {
		if _, err := os.Stat(filepath.Join(outDir, name)); err == nil {
			pages.Add(baseURL + "/" + name)
		}
	}

	return sets.SortedStrings(pages), nil
}
