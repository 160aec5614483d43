package idpkg

import (
	"sort"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	const n = 1000

	ids := make([]string, n)
	seen := make(map[string]struct{}, n)

	for i := range ids {
		ids[i] = New()

		require.Len(t, ids[i], ulid.EncodedSize)
		_, err := ulid.ParseStrict(ids[i])
		require.NoError(t, err, "ulid.ParseStrict(%q)", ids[i])

		_, dup := seen[ids[i]]
		require.False(t, dup, "duplicate id %q", ids[i])
		seen[ids[i]] = struct{}{}
	}

	require.True(t, sort.StringsAreSorted(ids), "ids are not in creation order")
}
