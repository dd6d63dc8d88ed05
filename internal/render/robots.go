package render

import (
	"path/filepath"
	"strings"
)

// Robots returns the fixed allow-all policy pointing crawlers at the sitemap.
// Pure function of the base URL.
func Robots(baseURL string) string {
	lines := []string{
		"User-agent: *",
		"Allow: /",
		"Sitemap: " + baseURL + "/sitemap.xml",
		"",
	}
	return strings.Join(lines, "\n")
}

// WriteRobots renders robots.txt into the output root.
func WriteRobots(outDir, baseURL string) error {
	return WriteFile(filepath.Join(outDir, "robots.txt"), []byte(Robots(baseURL)))
}
