package telemetry

import (
	"github.com/uber-go/tally"
	"go.uber.org/atomic"
)

// PrimeSearch instruments a prime search: candidates drawn, composites
// rejected. It satisfies prime.Recorder.
type PrimeSearch struct {
	attempts   *atomic.Int64
	candidates tally.Counter
	rejects    tally.Counter
}

// NewPrimeSearch constructs prime search metrics under the given scope.
func NewPrimeSearch(scope tally.Scope) *PrimeSearch {
	sub := scope.SubScope("prime_search")
	return &PrimeSearch{
		attempts:   atomic.NewInt64(0),
		candidates: sub.Counter("candidates"),
		rejects:    sub.Counter("rejects"),
	}
}

// Candidate records a candidate being drawn and tested.
func (s *PrimeSearch) Candidate() {
	s.attempts.Inc()
	s.candidates.Inc(1)
}

// Reject records a candidate failing the primality test.
func (s *PrimeSearch) Reject() {
	s.rejects.Inc(1)
}

// Attempts returns the number of candidates tested so far.
func (s *PrimeSearch) Attempts() int64 {
	return s.attempts.Load()
}
