package idx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskyhq/tasky/pkg/idx"
)

func TestNewProducesValidIDs(t *testing.T) {
	t.Parallel()

	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestNewIsMonotonicWithinSameMillisecond(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := idx.NewAt(at)
	b := idx.NewAt(at)
	require.Less(t, a.String(), b.String())
}

func TestParseRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"   ",
		"not-a-ulid",
		"01ARZ3NDEKTSV4RRFFQ69G5FA", // one char short
		"01ARZ3NDEKTSV4RRFFQ69G5FAVX",
	}
	for _, in := range cases {
		_, err := idx.Parse(in)
		require.ErrorIs(t, err, idx.ErrInvalid, "input %q", in)
	}
}

func TestParseTrimsWhitespace(t *testing.T) {
	t.Parallel()

	id := idx.New()
	parsed, err := idx.Parse("  " + id.String() + "\n")
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}
