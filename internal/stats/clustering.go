package stats

import (
	"github.com/leengari/mini-optimizer/internal/domain/errors"
)

// IndexEntry pairs an index key with the id of the storage block
// holding the row it points to. A key-ordered slice of entries is what
// an index range scan would visit, in visit order.
type IndexEntry struct {
	Key     interface{}
	BlockID int64
}

// ClusteringFactor counts block transitions over a key-ordered entry
// sequence: the first entry counts as one, and every entry whose block
// differs from its predecessor's adds one. A low factor (close to the
// block count) means table order tracks index order; a high factor
// (close to the row count) means an index range scan keeps jumping
// between blocks.
//
// Fails with InvalidInputError when the sequence is empty or not
// sorted by key.
func ClusteringFactor(entries []IndexEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, errors.NewEmptyInput("clustering_factor")
	}

	factor := int64(1)
	for i := 1; i < len(entries); i++ {
		cmp, err := CompareKeys(entries[i-1].Key, entries[i].Key)
		if err != nil {
			return 0, &errors.InvalidInputError{
				Operation: "clustering_factor",
				Reason:    err.Error(),
				Position:  i,
				Value:     entries[i].Key,
			}
		}
		if cmp > 0 {
			return 0, errors.NewUnsortedInput("clustering_factor", i, entries[i].Key)
		}

		if entries[i].BlockID != entries[i-1].BlockID {
			factor++
		}
	}

	return factor, nil
}
