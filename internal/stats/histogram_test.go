package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/mini-optimizer/internal/domain/errors"
)

func twoBucketHistogram(t *testing.T) *Histogram {
	t.Helper()
	h, err := NewHistogram("amount", []Bucket{
		{Lower: 0, Upper: 10, Frequency: 100},
		{Lower: 10, Upper: 20, Frequency: 200},
	})
	require.NoError(t, err)
	return h
}

func TestNewHistogram_Validation(t *testing.T) {
	_, err := NewHistogram("c", nil)
	var invalid *errors.InvalidInputError
	require.ErrorAs(t, err, &invalid)

	_, err = NewHistogram("c", []Bucket{{Lower: 10, Upper: 5, Frequency: 1}})
	require.ErrorAs(t, err, &invalid)

	_, err = NewHistogram("c", []Bucket{{Lower: 0, Upper: 5, Frequency: -1}})
	require.ErrorAs(t, err, &invalid)

	// overlapping buckets
	_, err = NewHistogram("c", []Bucket{
		{Lower: 0, Upper: 10, Frequency: 1},
		{Lower: 5, Upper: 15, Frequency: 1},
	})
	require.ErrorAs(t, err, &invalid)
}

func TestHistogram_TotalRowsInvariant(t *testing.T) {
	h := twoBucketHistogram(t)
	assert.Equal(t, int64(300), h.TotalRows())

	// whole-domain range returns every row
	rows, err := h.Estimate(Predicate{Column: "amount", Op: OpBetween, Value: int64(0), Upper: int64(20)})
	require.NoError(t, err)
	assert.InDelta(t, 300, rows, 0.001)
}

func TestHistogram_FullBuckets(t *testing.T) {
	h := twoBucketHistogram(t)

	rows, err := h.Estimate(Predicate{Column: "amount", Op: OpLt, Value: int64(10)})
	require.NoError(t, err)
	assert.InDelta(t, 100, rows, 0.001)

	rows, err = h.Estimate(Predicate{Column: "amount", Op: OpGe, Value: int64(10)})
	require.NoError(t, err)
	assert.InDelta(t, 200, rows, 0.001)
}

func TestHistogram_PartialBucketInterpolation(t *testing.T) {
	h := twoBucketHistogram(t)

	// [0, 5] covers half of the first bucket
	rows, err := h.Estimate(Predicate{Column: "amount", Op: OpBetween, Value: int64(0), Upper: int64(5)})
	require.NoError(t, err)
	assert.InDelta(t, 50, rows, 0.001)

	// [5, 15] covers half of each bucket
	rows, err = h.Estimate(Predicate{Column: "amount", Op: OpBetween, Value: int64(5), Upper: int64(15)})
	require.NoError(t, err)
	assert.InDelta(t, 150, rows, 0.001)
}

func TestHistogram_EqualityInsideWideBucket(t *testing.T) {
	h := twoBucketHistogram(t)

	// One key's share of a 10-wide bucket holding 100 rows
	rows, err := h.Estimate(Predicate{Column: "amount", Op: OpEq, Value: int64(5)})
	require.NoError(t, err)
	assert.InDelta(t, 10, rows, 0.001)
}

func TestHistogram_SingleValueBucket(t *testing.T) {
	h, err := NewHistogram("amount", []Bucket{
		{Lower: 42, Upper: 42, Frequency: 5},
	})
	require.NoError(t, err)

	rows, err := h.Estimate(Predicate{Column: "amount", Op: OpEq, Value: int64(42)})
	require.NoError(t, err)
	assert.InDelta(t, 5, rows, 0.001)
}

func TestHistogram_OutOfDomain(t *testing.T) {
	h := twoBucketHistogram(t)

	_, err := h.Estimate(Predicate{Column: "amount", Op: OpEq, Value: int64(25)})
	require.Error(t, err)

	var ood *errors.OutOfDomainError
	require.ErrorAs(t, err, &ood)
	assert.Equal(t, "amount", ood.Column)

	_, err = h.Estimate(Predicate{Column: "amount", Op: OpBetween, Value: int64(-5), Upper: int64(5)})
	assert.ErrorAs(t, err, &ood)

	_, err = h.Estimate(Predicate{Column: "amount", Op: OpLt, Value: int64(30)})
	assert.ErrorAs(t, err, &ood)
}

func TestHistogram_PrefixClampsToDomain(t *testing.T) {
	values := []float64{}
	for _, s := range []string{"alpha", "beta", "bravo", "gamma"} {
		f, ok := KeyToFloat(s)
		if !ok {
			t.Fatalf("KeyToFloat failed for %s", s)
		}
		values = append(values, f)
	}
	h := BuildHistogram("name", values, 10)
	require.NotNil(t, h)

	// "b" prefix reaches past the largest observed key starting with
	// b; the range is clamped, not rejected
	rows, err := h.Estimate(Predicate{Column: "name", Op: OpPrefix, Value: "b"})
	require.NoError(t, err)
	assert.Greater(t, rows, 0.0)
}

func TestBuildHistogram(t *testing.T) {
	values := make([]float64, 0, 1000)
	for i := 0; i < 1000; i++ {
		values = append(values, float64(i))
	}

	h := BuildHistogram("id", values, NumHistBuckets)
	require.NotNil(t, h)

	// bucket frequencies sum to total row count
	sum := int64(0)
	for _, b := range h.Buckets() {
		sum += b.Frequency
	}
	assert.Equal(t, int64(1000), sum)
	assert.Equal(t, int64(1000), h.TotalRows())

	lo, hi := h.Coverage()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 999.0, hi)

	// uniform data: a 10% range matches roughly 10% of rows
	rows, err := h.Estimate(Predicate{Column: "id", Op: OpBetween, Value: int64(100), Upper: int64(200)})
	require.NoError(t, err)
	assert.InDelta(t, 100, rows, 15)
}

func TestBuildHistogram_AllKeysEqual(t *testing.T) {
	h := BuildHistogram("k", []float64{7, 7, 7, 7}, NumHistBuckets)
	require.NotNil(t, h)
	require.Len(t, h.Buckets(), 1)

	rows, err := h.Estimate(Predicate{Column: "k", Op: OpEq, Value: int64(7)})
	require.NoError(t, err)
	assert.InDelta(t, 4, rows, 0.001)
}

func TestBuildHistogram_Empty(t *testing.T) {
	assert.Nil(t, BuildHistogram("k", nil, NumHistBuckets))
}
