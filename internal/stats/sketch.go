package stats

import (
	"github.com/tylertreat/BoomFilters"
)

// Sketch accuracy knobs. The count-min parameters match what we can
// afford per column; the histogram remains the primary estimator, the
// sketch only answers string equality and distinct-count questions.
const (
	cmsEpsilon   = 0.001
	cmsDelta     = 0.999
	hllErrorRate = 0.01
)

// StringSketch estimates equality selectivity and distinct counts for
// a string column using a count-min sketch and a HyperLogLog
type StringSketch struct {
	cms   *boom.CountMinSketch
	hll   *boom.HyperLogLog
	total int64
}

// NewStringSketch creates an empty sketch pair
func NewStringSketch() (*StringSketch, error) {
	hll, err := boom.NewDefaultHyperLogLog(hllErrorRate)
	if err != nil {
		return nil, err
	}
	return &StringSketch{
		cms: boom.NewCountMinSketch(cmsEpsilon, cmsDelta),
		hll: hll,
	}, nil
}

// Add records one observed value
func (s *StringSketch) Add(v string) {
	s.cms.Add([]byte(v))
	s.hll.Add([]byte(v))
	s.total++
}

// EstimateEquals returns the estimated number of rows equal to v
func (s *StringSketch) EstimateEquals(v string) float64 {
	return float64(s.cms.Count([]byte(v)))
}

// Selectivity returns the estimated fraction of rows equal to v
func (s *StringSketch) Selectivity(v string) float64 {
	if s.total == 0 {
		return 0
	}
	return s.EstimateEquals(v) / float64(s.total)
}

// Distinct returns the estimated number of distinct values seen
func (s *StringSketch) Distinct() uint64 {
	return s.hll.Count()
}

// TotalCount returns the number of values added
func (s *StringSketch) TotalCount() int64 {
	return s.total
}
