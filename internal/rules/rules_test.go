package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestRedirects_MustFilesOnlyWhenPresent(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "robots.txt")
	touch(t, root, "rss.xml")

	got, err := Redirects(root, "d")
	require.NoError(t, err)
	require.Equal(t, "/robots.txt /robots.txt 200\n/rss.xml /rss.xml 200\n", got)
}

func TestRedirects_FullOrdering(t *testing.T) {
	root := t.TempDir()
	for _, fn := range []string{"robots.txt", "sitemap.xml", "rss.xml", "index.html"} {
		touch(t, root, fn)
	}
	touch(t, root, "d/2026-08-30.html")
	touch(t, root, "google9876.html")
	touch(t, root, "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6.txt")

	got, err := Redirects(root, "d")
	require.NoError(t, err)

	want := strings.Join([]string{
		"/robots.txt /robots.txt 200",
		"/sitemap.xml /sitemap.xml 200",
		"/rss.xml /rss.xml 200",
		"/index.html /index.html 200",
		"/d/* /d/:splat 200",
		"/a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6.txt /a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6.txt 200",
		"/google9876.html /google9876.html 200",
	}, "\n") + "\n"
	require.Equal(t, want, got)
}

func TestRedirects_KeyPatternExactness(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6.txt")
	touch(t, root, "notakey.txt")

	got, err := Redirects(root, "d")
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(got, "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6.txt /"))
	require.NotContains(t, got, "notakey.txt")
}

func TestRedirects_DailyDirMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "d") // a plain file named d, not the daily dir

	got, err := Redirects(root, "d")
	require.NoError(t, err)
	require.NotContains(t, got, ":splat")
}

func TestHeaders_FixedBlocks(t *testing.T) {
	want := "/sitemap.xml\n  Content-Type: application/xml; charset=utf-8\n\n" +
		"/rss.xml\n  Content-Type: application/rss+xml; charset=utf-8\n\n" +
		"/backlink-feed.xml\n  Content-Type: application/xml; charset=utf-8\n\n" +
		"/robots.txt\n  Content-Type: text/plain; charset=utf-8\n"
	require.Equal(t, want, Headers())

	// Byte-stable across calls.
	require.Equal(t, Headers(), Headers())
}

func TestEmit_WritesBothFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "robots.txt")

	n, err := Emit(root, "d")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.FileExists(t, filepath.Join(root, "_redirects"))
	require.FileExists(t, filepath.Join(root, "_headers"))
}
