// Package tokens copies externally provisioned verification and key files
// (search-engine site verification pages, IndexNow keys) into the output root
// so the override-rule emitter can discover and expose them.
package tokens

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	ferrors "git.home.luguber.info/inful/sitefix/internal/errors"
	"git.home.luguber.info/inful/sitefix/internal/logfields"
)

// indexNowKeyRE matches IndexNow key files: 32 hex chars + .txt, case-insensitive.
var indexNowKeyRE = regexp.MustCompile(`(?i)^[a-f0-9]{32}\.txt$`)

// IsIndexNowKey reports whether name follows the IndexNow key file convention.
func IsIndexNowKey(name string) bool {
	return indexNowKeyRE.MatchString(name)
}

// IsVerificationHTML reports whether name follows the site-verification
// convention (case-insensitive "google" prefix, .html extension).
func IsVerificationHTML(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "google") && strings.HasSuffix(lower, ".html")
}

// Copy places verification and IndexNow key files from docsDir into outDir.
// Existing destination files are never overwritten; a missing docsDir is a
// no-op. Tokens are provisioned externally, so this is the only path by which
// they reach the deployable output.
func Copy(docsDir, outDir string) error {
	entries, err := os.ReadDir(docsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return ferrors.Wrap(err, ferrors.CategoryFileSystem, ferrors.SeverityFatal, "read tokens directory").WithContext("path", docsDir)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !IsVerificationHTML(name) && !IsIndexNowKey(name) {
			continue
		}
		copied, err := copyIfMissing(filepath.Join(docsDir, name), filepath.Join(outDir, name))
		if err != nil {
			return ferrors.Wrap(err, ferrors.CategoryFileSystem, ferrors.SeverityFatal, "copy token file").WithContext("file", name)
		}
		if copied {
			slog.Debug("Copied token file", logfields.File(name))
		}
	}
	return nil
}

// copyIfMissing copies src to dst unless dst already exists.
func copyIfMissing(src, dst string) (bool, error) {
	if _, err := os.Stat(dst); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return false, err
	}
	in, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return false, err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return false, err
	}
	return true, out.Close()
}
