package run

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// seqCounter is an atomic counter for generating monotonic run sequence numbers
var seqCounter uint64

// Run represents one estimation or analysis pass
// Every EXPLAIN and every ANALYZE gets its own Run so log lines and
// trace spans from the same pass can be correlated
type Run struct {
	ID        string    // Unique run identifier (UUID)
	Seq       uint64    // Monotonic sequence number within this process
	StartTime time.Time // When the run began
}

// New creates a new run with a unique ID
func New() *Run {
	return &Run{
		ID:        uuid.New().String(),
		Seq:       atomic.AddUint64(&seqCounter, 1),
		StartTime: time.Now(),
	}
}

// Elapsed returns how long the run has been going
func (r *Run) Elapsed() time.Duration {
	return time.Since(r.StartTime)
}
