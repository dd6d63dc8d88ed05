package render

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)

func TestRobots(t *testing.T) {
	got := Robots("https://hub.example")
	require.Equal(t, "User-agent: *\nAllow: /\nSitemap: https://hub.example/sitemap.xml\n", got)
}

func TestSitemap_EntriesAndSharedLastmod(t *testing.T) {
	urls := []string{"https://hub.example/", "https://hub.example/about.html"}

	data, err := Sitemap(urls, testNow)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(string(data), xml.Header))
	require.Contains(t, string(data), `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)

	var parsed struct {
		URLs []struct {
			Loc     string `xml:"loc"`
			LastMod string `xml:"lastmod"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(data, &parsed))
	require.Len(t, parsed.URLs, 2)
	require.Equal(t, "https://hub.example/", parsed.URLs[0].Loc)
	require.Equal(t, "https://hub.example/about.html", parsed.URLs[1].Loc)
	for _, u := range parsed.URLs {
		require.Equal(t, "2026-08-30", u.LastMod)
	}
}

func TestSitemap_EmptyListIsValidDocument(t *testing.T) {
	data, err := Sitemap(nil, testNow)
	require.NoError(t, err)

	var parsed struct {
		URLs []struct{} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(data, &parsed))
	require.Empty(t, parsed.URLs)
}

func TestSitemap_Idempotent(t *testing.T) {
	urls := []string{"https://hub.example/"}
	a, err := Sitemap(urls, testNow)
	require.NoError(t, err)
	b, err := Sitemap(urls, testNow)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestFeed_ItemOrderAndSharedTimestamp(t *testing.T) {
	ch := Channel{Title: "Discovery Hub", Link: "https://hub.example/", Description: "Recently added links"}
	items := []Item{
		{Title: "C", Link: "https://x/c", Description: "https://x/c"},
		{Title: "B title", Link: "https://x/b", Description: "B sum"},
		{Title: "A", Link: "https://x/a", Description: "https://x/a"},
	}

	data, err := Feed(ch, items, testNow)
	require.NoError(t, err)

	var parsed struct {
		Version string `xml:"version,attr"`
		Channel struct {
			Title         string `xml:"title"`
			Link          string `xml:"link"`
			LastBuildDate string `xml:"lastBuildDate"`
			Items         []struct {
				Title   string `xml:"title"`
				Link    string `xml:"link"`
				GUID    string `xml:"guid"`
				PubDate string `xml:"pubDate"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	require.NoError(t, xml.Unmarshal(data, &parsed))

	require.Equal(t, "2.0", parsed.Version)
	require.Equal(t, "https://hub.example/", parsed.Channel.Link)
	require.Equal(t, "Sun, 30 Aug 2026 14:30:00 +0000", parsed.Channel.LastBuildDate)

	require.Len(t, parsed.Channel.Items, 3)
	require.Equal(t, "C", parsed.Channel.Items[0].Title)
	require.Equal(t, "B title", parsed.Channel.Items[1].Title)
	for _, it := range parsed.Channel.Items {
		require.Equal(t, it.Link, it.GUID)
		require.Equal(t, parsed.Channel.LastBuildDate, it.PubDate)
	}
}

func TestWriteFile_CreatesParents(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "deep", "nested", "robots.txt")
	require.NoError(t, WriteFile(path, []byte("x\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "x\n", string(data))
}

func TestWriteRobots_OverwritesPrior(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "robots.txt"), []byte("stale"), 0o644))
	require.NoError(t, WriteRobots(root, "https://hub.example"))

	data, err := os.ReadFile(filepath.Join(root, "robots.txt"))
	require.NoError(t, err)
	require.Equal(t, Robots("https://hub.example"), string(data))
}
