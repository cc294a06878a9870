package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareKeys(t *testing.T) {
	cmp, err := CompareKeys(int64(1), int64(2))
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = CompareKeys(2.5, int64(2))
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	cmp, err = CompareKeys("abc", "abc")
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	_, err = CompareKeys("abc", int64(1))
	assert.Error(t, err)

	_, err = CompareKeys(int64(1), "abc")
	assert.Error(t, err)
}

func TestKeyToFloat_PreservesStringOrder(t *testing.T) {
	words := []string{"", "a", "aa", "ab", "b", "zebra"}
	for i := 1; i < len(words); i++ {
		prev, ok := KeyToFloat(words[i-1])
		require.True(t, ok)
		cur, ok := KeyToFloat(words[i])
		require.True(t, ok)
		assert.Less(t, prev, cur, "%q should encode below %q", words[i-1], words[i])
	}
}

func TestPrefixRange(t *testing.T) {
	lo, hi := PrefixRange("or")
	assert.Less(t, lo, hi)

	// every string with the prefix encodes inside the range
	for _, s := range []string{"or", "oracle", "orz"} {
		f, ok := KeyToFloat(s)
		require.True(t, ok)
		assert.GreaterOrEqual(t, f, lo)
		assert.LessOrEqual(t, f, hi)
	}

	// strings without the prefix encode outside
	for _, s := range []string{"op", "os", "pa"} {
		f, ok := KeyToFloat(s)
		require.True(t, ok)
		outside := f < lo || f > hi
		assert.True(t, outside, "%q should encode outside the 'or' prefix range", s)
	}
}
