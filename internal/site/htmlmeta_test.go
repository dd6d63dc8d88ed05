package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalPagePath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html")
	writeFile(t, root, "d/2026-08-30.html")

	base := "https://hub.example"

	p, ok := LocalPagePath(root, base, "https://hub.example/")
	require.True(t, ok)
	require.Equal(t, filepath.Join(root, "index.html"), p)

	p, ok = LocalPagePath(root, base, "https://hub.example/d/2026-08-30.html")
	require.True(t, ok)
	require.Equal(t, filepath.Join(root, "d", "2026-08-30.html"), p)

	_, ok = LocalPagePath(root, base, "https://elsewhere.example/page.html")
	require.False(t, ok)

	_, ok = LocalPagePath(root, base, "https://hub.example/missing.html")
	require.False(t, ok)

	_, ok = LocalPagePath(root, base, "https://hub.example/../etc/passwd")
	require.False(t, ok)
}

func TestExtractPageMeta(t *testing.T) {
	root := t.TempDir()
	page := filepath.Join(root, "page.html")
	doc := `<!doctype html><html><head>
<title>  Daily Links: 2026-08-30 </title>
<meta name="description" content="Curated picks for the day">
</head><body><h1>hi</h1></body></html>`
	require.NoError(t, os.WriteFile(page, []byte(doc), 0o644))

	meta := ExtractPageMeta(page)
	require.Equal(t, "Daily Links: 2026-08-30", meta.Title)
	require.Equal(t, "Curated picks for the day", meta.Description)
}

func TestExtractPageMeta_MissingFileIsZero(t *testing.T) {
	meta := ExtractPageMeta(filepath.Join(t.TempDir(), "nope.html"))
	require.Equal(t, PageMeta{}, meta)
}

func TestExtractPageMeta_NoHeadStillZeroValues(t *testing.T) {
	root := t.TempDir()
	page := filepath.Join(root, "bare.html")
	require.NoError(t, os.WriteFile(page, []byte("<p>no title here</p>"), 0o644))

	meta := ExtractPageMeta(page)
	require.Empty(t, meta.Title)
	require.Empty(t, meta.Description)
}
