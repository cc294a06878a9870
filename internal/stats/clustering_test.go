package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/mini-optimizer/internal/domain/errors"
)

func TestClusteringFactor_ContiguousBlocks(t *testing.T) {
	// 25 rows sorted by key, 5 blocks, each block holding contiguous keys
	entries := make([]IndexEntry, 0, 25)
	for i := 0; i < 25; i++ {
		entries = append(entries, IndexEntry{
			Key:     int64(i),
			BlockID: int64(i / 5),
		})
	}

	factor, err := ClusteringFactor(entries)
	require.NoError(t, err)
	assert.Equal(t, int64(5), factor)
}

func TestClusteringFactor_ScatteredBlocks(t *testing.T) {
	// Every consecutive key lives in a different block: worst case,
	// the factor equals the row count
	entries := []IndexEntry{
		{Key: int64(1), BlockID: 0},
		{Key: int64(2), BlockID: 3},
		{Key: int64(3), BlockID: 1},
		{Key: int64(4), BlockID: 3},
		{Key: int64(5), BlockID: 0},
	}

	factor, err := ClusteringFactor(entries)
	require.NoError(t, err)
	assert.Equal(t, int64(5), factor)
}

func TestClusteringFactor_Bounds(t *testing.T) {
	// factor is always within [distinct blocks, row count]
	cases := [][]IndexEntry{
		{{Key: int64(1), BlockID: 0}},
		{{Key: int64(1), BlockID: 0}, {Key: int64(1), BlockID: 0}, {Key: int64(2), BlockID: 1}},
		{{Key: "a", BlockID: 2}, {Key: "b", BlockID: 2}, {Key: "c", BlockID: 0}, {Key: "d", BlockID: 2}},
	}

	for _, entries := range cases {
		blocks := make(map[int64]struct{})
		for _, e := range entries {
			blocks[e.BlockID] = struct{}{}
		}

		factor, err := ClusteringFactor(entries)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, factor, int64(len(blocks)))
		assert.LessOrEqual(t, factor, int64(len(entries)))
	}
}

func TestClusteringFactor_DuplicateKeysAllowed(t *testing.T) {
	entries := []IndexEntry{
		{Key: int64(1), BlockID: 0},
		{Key: int64(1), BlockID: 1},
		{Key: int64(1), BlockID: 0},
	}

	factor, err := ClusteringFactor(entries)
	require.NoError(t, err)
	assert.Equal(t, int64(3), factor)
}

func TestClusteringFactor_EmptyInput(t *testing.T) {
	_, err := ClusteringFactor(nil)
	require.Error(t, err)

	var invalid *errors.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "clustering_factor", invalid.Operation)
}

func TestClusteringFactor_UnsortedInput(t *testing.T) {
	entries := []IndexEntry{
		{Key: int64(5), BlockID: 0},
		{Key: int64(3), BlockID: 1},
	}

	_, err := ClusteringFactor(entries)
	require.Error(t, err)

	var invalid *errors.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 1, invalid.Position)
}

func TestClusteringFactor_MixedKeyTypes(t *testing.T) {
	entries := []IndexEntry{
		{Key: int64(5), BlockID: 0},
		{Key: "abc", BlockID: 1},
	}

	_, err := ClusteringFactor(entries)
	require.Error(t, err)

	var invalid *errors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}
