// Package render produces the generated artifacts: robots.txt, sitemap.xml
// and the RSS feed. Every document is a full rewrite; there is no merging
// with prior content and no atomic-write guarantee (outputs are regenerated
// in place on every run).
package render

import (
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/sitefix/internal/errors"
)

// WriteFile writes data to path, creating parent directories as needed.
// Write failures are fatal to the run.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ferrors.Wrap(err, ferrors.CategoryFileSystem, ferrors.SeverityFatal, "create output directory").WithContext("path", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ferrors.Wrap(err, ferrors.CategoryFileSystem, ferrors.SeverityFatal, "write artifact").WithContext("path", path)
	}
	return nil
}
