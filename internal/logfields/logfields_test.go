package logfields

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"RunID", KeyRunID, RunID("abc").Key},
		{"Step", KeyStep, Step("sitemap").Key},
		{"Path", KeyPath, Path("/tmp/x").Key},
		{"File", KeyFile, File("robots.txt").Key},
		{"URL", KeyURL, URL("https://x/a").Key},
		{"BaseURL", KeyBaseURL, BaseURL("https://x").Key},
	}
	for _, c := range cases {
		require.Equal(t, c.key, c.val, c.name)
	}
}

func TestErrorAttr(t *testing.T) {
	require.Equal(t, "", Error(nil).Value.String())
	require.Equal(t, "boom", Error(fmt.Errorf("boom")).Value.String())
}
