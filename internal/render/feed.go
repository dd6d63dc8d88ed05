package render

import (
	"encoding/xml"
	"path/filepath"
	"time"

	ferrors "git.home.luguber.info/inful/sitefix/internal/errors"
)

// Channel describes the fixed feed header.
type Channel struct {
	Title       string
	Link        string
	Description string
}

// Item is one feed entry, metadata already resolved by the caller.
// Link doubles as the guid.
type Item struct {
	Title       string
	Link        string
	Description string
}

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Feed renders an RSS 2.0 document. Items are emitted in the given order
// (callers pass newest first). Every item shares the run timestamp as
// pubDate: generation time is stamped, per-item history is not tracked.
func Feed(ch Channel, items []Item, now time.Time) ([]byte, error) {
	stamp := now.UTC().Format(time.RFC1123Z)

	doc := rssDoc{
		Version: "2.0",
		Channel: rssChannel{
			Title:         ch.Title,
			Link:          ch.Link,
			Description:   ch.Description,
			LastBuildDate: stamp,
			Items:         make([]rssItem, 0, len(items)),
		},
	}
	for _, it := range items {
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:       it.Title,
			Link:        it.Link,
			GUID:        it.Link,
			Description: it.Description,
			PubDate:     stamp,
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, ferrors.Wrap(err, ferrors.CategoryRender, ferrors.SeverityFatal, "marshal feed")
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// WriteFeed renders rss.xml into the output root.
func WriteFeed(outDir string, ch Channel, items []Item, now time.Time) error {
	data, err := Feed(ch, items, now)
	if err != nil {
		return err
	}
	return WriteFile(filepath.Join(outDir, "rss.xml"), data)
}
