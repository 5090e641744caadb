// Package sampler implements the streaming reservoir-style samplers the
// executor uses to trade an exact scan for an approximate one. Every
// sampler accepts dataset rows one at a time and exposes the same
// contract: Add, Sample, Rate, Clear.
package sampler

import "github.com/approxql/aqe/pkg/dataset"

// Sampler is the uniform contract every sampling strategy satisfies.
type Sampler interface {
	// Add ingests one row. It never fails.
	Add(row dataset.Row)
	// Sample returns a snapshot of the current sample population. It may
	// be called more than once and does not mutate sampler state.
	Sample() []dataset.Row
	// Rate reports the observed (or configured) sampling rate in [0,1],
	// used by the executor to rescale extensive aggregates.
	Rate() float64
	// Clear resets the sampler to its empty initial state.
	Clear()
}
