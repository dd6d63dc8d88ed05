// Package rules emits the host override files (_redirects and _headers) that
// force well-known paths to resolve as themselves instead of being swallowed
// by the host's catch-all single-page-app rewrite.
//
// Rules are derived entirely from the current state of the output tree, so
// the emitter must run after the renderers and token copier.
package rules

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/sitefix/internal/errors"
	"git.home.luguber.info/inful/sitefix/internal/render"
	"git.home.luguber.info/inful/sitefix/internal/tokens"
)

// mustFiles is the fixed list of top-level files that get an exact
// self-mapping rule when present, in emission order.
var mustFiles = []string{
	"robots.txt",
	"sitemap.xml",
	"rss.xml",
	"backlink-feed.xml",
	"index.html",
	"all.html",
	"about.html",
}

// Redirects builds the _redirects content for the current output tree:
// exact self-mappings for present must-files, a splat rule for the daily
// pages directory, then verification/key files in sorted name order.
func Redirects(outDir, dailyDir string) (string, error) {
	var lines []string

	for _, fn := range mustFiles {
		if _, err := os.Stat(filepath.Join(outDir, fn)); err == nil {
			lines = append(lines, "/"+fn+" /"+fn+" 200")
		}
	}

	if dailyDir != "" {
		if fi, err := os.Stat(filepath.Join(outDir, dailyDir)); err == nil && fi.IsDir() {
			lines = append(lines, "/"+dailyDir+"/* /"+dailyDir+"/:splat 200")
		}
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", ferrors.Wrap(err, ferrors.CategoryFileSystem, ferrors.SeverityFatal, "scan output root").WithContext("path", outDir)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, fn := range names {
		if tokens.IsVerificationHTML(fn) || tokens.IsIndexNowKey(fn) {
			lines = append(lines, "/"+fn+" /"+fn+" 200")
		}
	}

	return strings.Join(lines, "\n") + "\n", nil
}

// Headers builds the fixed _headers content: content-type blocks for the
// generated XML/text artifacts, separated by blank lines.
func Headers() string {
	var b strings.Builder
	addHeader := func(path, contentType string) {
		b.WriteString(path + "\n")
		b.WriteString("  Content-Type: " + contentType + "\n")
		b.WriteString("\n")
	}

	addHeader("/sitemap.xml", "application/xml; charset=utf-8")
	addHeader("/rss.xml", "application/rss+xml; charset=utf-8")
	addHeader("/backlink-feed.xml", "application/xml; charset=utf-8")
	addHeader("/robots.txt", "text/plain; charset=utf-8")

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Emit writes both override files into the output root, overwriting prior
// content in full. Returns the number of rewrite rules emitted.
func Emit(outDir, dailyDir string) (int, error) {
	redirects, err := Redirects(outDir, dailyDir)
	if err != nil {
		return 0, err
	}
	if err := render.WriteFile(filepath.Join(outDir, "_redirects"), []byte(redirects)); err != nil {
		return 0, err
	}
	if err := render.WriteFile(filepath.Join(outDir, "_headers"), []byte(Headers())); err != nil {
		return 0, err
	}
	n := 0
	for _, ln := range strings.Split(redirects, "\n") {
		if strings.TrimSpace(ln) != "" {
			n++
		}
	}
	return n, nil
}
