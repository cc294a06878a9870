package stats

import (
	"math"

	"github.com/leengari/mini-optimizer/internal/domain/errors"
)

// NumHistBuckets is the default bucket count for built histograms
const NumHistBuckets = 100

// Bucket is one histogram bucket over the numeric key domain
// Lower == Upper marks a single-value bucket
type Bucket struct {
	Lower     float64
	Upper     float64
	Frequency int64
}

// Width returns the size of the bucket's key interval
func (b Bucket) Width() float64 {
	return b.Upper - b.Lower
}

// Histogram is an ordered, non-overlapping frequency histogram over a
// column's key domain. Bucket frequencies sum to the total row count.
type Histogram struct {
	column  string
	buckets []Bucket
	total   int64
}

// NewHistogram validates the bucket sequence and wraps it
// Buckets must be non-empty, individually well-formed (Lower <= Upper,
// Frequency >= 0), ordered, and non-overlapping
func NewHistogram(column string, buckets []Bucket) (*Histogram, error) {
	if len(buckets) == 0 {
		return nil, errors.NewEmptyInput("histogram")
	}

	total := int64(0)
	for i, b := range buckets {
		if b.Lower > b.Upper {
			return nil, &errors.InvalidInputError{
				Operation: "histogram",
				Reason:    "bucket lower bound exceeds upper bound",
				Position:  i,
				Value:     b.Lower,
			}
		}
		if b.Frequency < 0 {
			return nil, &errors.InvalidInputError{
				Operation: "histogram",
				Reason:    "bucket frequency is negative",
				Position:  i,
				Value:     b.Frequency,
			}
		}
		if i > 0 && b.Lower < buckets[i-1].Upper {
			return nil, &errors.InvalidInputError{
				Operation: "histogram",
				Reason:    "buckets overlap or are out of order",
				Position:  i,
				Value:     b.Lower,
			}
		}
		total += b.Frequency
	}

	return &Histogram{column: column, buckets: buckets, total: total}, nil
}

// BuildHistogram builds an equi-width histogram from raw key values
// Returns nil when values is empty: no data means no histogram
func BuildHistogram(column string, values []float64, numBuckets int) *Histogram {
	if len(values) == 0 {
		return nil
	}
	if numBuckets <= 0 {
		numBuckets = NumHistBuckets
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	// All keys identical: a single point bucket
	if min == max {
		h, _ := NewHistogram(column, []Bucket{{Lower: min, Upper: max, Frequency: int64(len(values))}})
		return h
	}

	width := (max - min) / float64(numBuckets)
	buckets := make([]Bucket, numBuckets)
	for i := range buckets {
		buckets[i].Lower = min + float64(i)*width
		buckets[i].Upper = min + float64(i+1)*width
	}
	buckets[numBuckets-1].Upper = max // avoid rounding the max out of the last bucket

	for _, v := range values {
		slot := int((v - min) / width)
		if slot >= numBuckets {
			slot = numBuckets - 1
		}
		buckets[slot].Frequency++
	}

	h, _ := NewHistogram(column, buckets)
	return h
}

// TotalRows returns the sum of all bucket frequencies
func (h *Histogram) TotalRows() int64 {
	return h.total
}

// Coverage returns the key domain the histogram covers
func (h *Histogram) Coverage() (float64, float64) {
	return h.buckets[0].Lower, h.buckets[len(h.buckets)-1].Upper
}

// Buckets returns the underlying bucket sequence
func (h *Histogram) Buckets() []Bucket {
	return h.buckets
}

// Estimate returns the estimated number of rows matching the predicate
// Fails with OutOfDomainError when a predicate bound falls outside the
// covered key domain
func (h *Histogram) Estimate(p Predicate) (float64, error) {
	lo, hi := h.Coverage()

	switch p.Op {
	case OpEq:
		v, ok := KeyToFloat(p.Value)
		if !ok {
			return 0, &errors.InvalidInputError{Operation: "histogram", Reason: "unsupported key type", Position: -1, Value: p.Value}
		}
		return h.estimateRange(v, v)
	case OpLt, OpLe:
		v, ok := KeyToFloat(p.Value)
		if !ok {
			return 0, &errors.InvalidInputError{Operation: "histogram", Reason: "unsupported key type", Position: -1, Value: p.Value}
		}
		return h.estimateRange(lo, v)
	case OpGt, OpGe:
		v, ok := KeyToFloat(p.Value)
		if !ok {
			return 0, &errors.InvalidInputError{Operation: "histogram", Reason: "unsupported key type", Position: -1, Value: p.Value}
		}
		return h.estimateRange(v, hi)
	case OpBetween:
		a, ok := KeyToFloat(p.Value)
		if !ok {
			return 0, &errors.InvalidInputError{Operation: "histogram", Reason: "unsupported key type", Position: -1, Value: p.Value}
		}
		b, ok := KeyToFloat(p.Upper)
		if !ok {
			return 0, &errors.InvalidInputError{Operation: "histogram", Reason: "unsupported key type", Position: -1, Value: p.Upper}
		}
		return h.estimateRange(a, b)
	case OpPrefix:
		s, ok := p.Value.(string)
		if !ok {
			return 0, &errors.InvalidInputError{Operation: "histogram", Reason: "prefix predicate needs a string value", Position: -1, Value: p.Value}
		}
		a, b := PrefixRange(s)
		// A prefix reaching past either edge of the domain is clamped,
		// not rejected: "starts with" naturally extends beyond the
		// largest observed key
		return h.estimateRange(math.Max(a, lo), math.Min(b, hi))
	default:
		return 0, &errors.InvalidInputError{Operation: "histogram", Reason: "unknown operator", Position: -1, Value: string(p.Op)}
	}
}

// estimateRange sums full-bucket frequencies inside [lo, hi] and
// linearly interpolates partial buckets. A point query (lo == hi)
// landing in a wide bucket is estimated as one key's worth of that
// bucket's frequency.
func (h *Histogram) estimateRange(lo, hi float64) (float64, error) {
	covLo, covHi := h.Coverage()
	if lo < covLo || hi > covHi {
		bound := lo
		if hi > covHi {
			bound = hi
		}
		return 0, errors.NewOutOfDomain(h.column, bound, covLo, covHi)
	}
	if lo > hi {
		return 0, nil
	}

	rows := 0.0
	for _, b := range h.buckets {
		if b.Upper < lo || b.Lower > hi {
			continue
		}

		// Single-value bucket: all or nothing
		if b.Width() == 0 {
			if b.Lower >= lo && b.Lower <= hi {
				rows += float64(b.Frequency)
			}
			continue
		}

		overlap := math.Min(hi, b.Upper) - math.Max(lo, b.Lower)
		if overlap <= 0 {
			// Point query inside a wide bucket: one key's share,
			// assuming unit key spacing, capped at the whole bucket
			if lo == hi {
				rows += float64(b.Frequency) * math.Min(1, 1/b.Width())
			}
			continue
		}

		fraction := overlap / b.Width()
		if fraction > 1 {
			fraction = 1
		}
		rows += float64(b.Frequency) * fraction
	}

	return rows, nil
}
