package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixupError_ErrorString(t *testing.T) {
	e := New(CategoryUsage, SeverityFatal, "BASE_URL must start with http(s)")
	require.Equal(t, "usage (fatal): BASE_URL must start with http(s)", e.Error())

	wrapped := Wrap(fmt.Errorf("permission denied"), CategoryFileSystem, SeverityFatal, "write sitemap.xml")
	require.Contains(t, wrapped.Error(), "filesystem (fatal): write sitemap.xml")
	require.Contains(t, wrapped.Error(), "permission denied")
}

func TestFixupError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	e := Wrap(cause, CategoryRender, SeverityFatal, "write rss.xml")
	require.True(t, errors.Is(e, cause))
}

func TestCategoryHelpers(t *testing.T) {
	e := UsageError("missing OUT_DIR")
	require.True(t, IsCategory(e, CategoryUsage))
	require.False(t, IsCategory(e, CategoryConfig))
	require.Equal(t, CategoryUsage, GetCategory(e))
	require.Equal(t, CategoryInternal, GetCategory(fmt.Errorf("plain")))
}

func TestExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)
	require.Equal(t, 0, a.ExitCodeFor(nil))
	require.Equal(t, 2, a.ExitCodeFor(UsageError("bad args")))
	require.Equal(t, 7, a.ExitCodeFor(New(CategoryConfig, SeverityFatal, "bad yaml")))
	require.Equal(t, 11, a.ExitCodeFor(New(CategoryFileSystem, SeverityFatal, "io")))
	require.Equal(t, 1, a.ExitCodeFor(fmt.Errorf("plain")))
}

func TestWithContext(t *testing.T) {
	e := New(CategoryRender, SeverityFatal, "oops").WithContext("path", "/out/rss.xml")
	require.Equal(t, "/out/rss.xml", e.Context["path"])
}
