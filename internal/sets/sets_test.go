package sets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetAddHasDelete(t *testing.T) {
	s := New("a", "b")
	require.True(t, s.Has("a"))
	require.False(t, s.Has("c"))

	s.Add("c")
	require.True(t, s.Has("c"))
	require.Equal(t, 3, s.Len())

	s.Delete("b")
	require.False(t, s.Has("b"))
}

func TestSortedStrings_Deterministic(t *testing.T) {
	s := New("zeta", "alpha", "mike")
	s.Add("alpha") // duplicate insert is a no-op

	require.Equal(t, []string{"alpha", "mike", "zeta"}, SortedStrings(s))
}
