package site

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// PageMeta holds display metadata extracted from a rendered HTML page.
type PageMeta struct {
	Title       string
	Description string
}

// LocalPagePath maps a canonical URL back to its file in the output tree.
// Returns false for off-site URLs, URLs that escape the tree, or URLs whose
// file does not exist. The bare base URL (with or without trailing slash)
// maps to the root index.html.
func LocalPagePath(outDir, baseURL, pageURL string) (string, bool) {
	if pageURL != baseURL && !strings.HasPrefix(pageURL, baseURL+"/") {
		return "", false
	}
	rel := strings.TrimPrefix(strings.TrimPrefix(pageURL, baseURL), "/")
	if i := strings.IndexAny(rel, "?#"); i >= 0 {
		rel = rel[:i]
	}
	if rel == "" {
		rel = "index.html"
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return "", false
		}
	}
	path := filepath.Join(outDir, filepath.FromSlash(rel))
	if fi, err := os.Stat(path); err != nil || fi.IsDir() {
		return "", false
	}
	return path, true
}

// ExtractPageMeta reads a rendered HTML file and returns its <title> text and
// meta description. Any failure yields zero values; the caller falls back to
// the URL itself.
func ExtractPageMeta(path string) PageMeta {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return PageMeta{}
	}
	defer func() {
		_ = file.Close() // Ignore close errors on read-only operation
	}()
	return extractPageMetaFromReader(file)
}

func extractPageMetaFromReader(r io.Reader) PageMeta {
	doc, err := html.Parse(r)
	if err != nil {
		return PageMeta{}
	}

	var meta PageMeta
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if meta.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					meta.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				var name, content string
				for _, a := range n.Attr {
					switch strings.ToLower(a.Key) {
					case "name":
						name = strings.ToLower(a.Val)
					case "content":
						content = a.Val
					}
				}
				if name == "description" && meta.Description == "" {
					meta.Description = strings.TrimSpace(content)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return meta
}
