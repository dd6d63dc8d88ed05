package render

import (
	"encoding/xml"
	"path/filepath"
	"time"

	ferrors "git.home.luguber.info/inful/sitefix/internal/errors"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// Sitemap renders a sitemap document with one entry per URL. Every entry
// carries the same lastmod: the run's UTC calendar date. This is build-time
// generation, not per-page modification tracking.
func Sitemap(urls []string, now time.Time) ([]byte, error) {
	lastmod := now.UTC().Format("2006-01-02")

	set := urlSet{Xmlns: sitemapNamespace, URLs: make([]urlEntry, 0, len(urls))}
	for _, loc := range urls {
		set.URLs = append(set.URLs, urlEntry{Loc: loc, LastMod: lastmod})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, ferrors.Wrap(err, ferrors.CategoryRender, ferrors.SeverityFatal, "marshal sitemap")
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// WriteSitemap renders sitemap.xml into the output root.
func WriteSitemap(outDir string, urls []string, now time.Time) error {
	data, err := Sitemap(urls, now)
	if err != nil {
		return err
	}
	return WriteFile(filepath.Join(outDir, "sitemap.xml"), data)
}
