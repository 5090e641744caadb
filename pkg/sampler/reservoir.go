package sampler

import (
	"math/rand"
	"time"

	"github.com/approxql/aqe/pkg/dataset"
)

// ReservoirSampler maintains a fixed-size uniform sample over a stream via
// Algorithm R: the first maxSize rows are kept outright; thereafter the
// i-th row (1-indexed) replaces a uniformly chosen existing slot with
// probability maxSize/i.
type ReservoirSampler struct {
	buffer    []dataset.Row
	maxSize   int
	totalSeen int
	rng       *rand.Rand
}

// NewReservoirSampler builds a reservoir of the given size, which must be
// >= 1. If rng is nil, the sampler seeds its own generator from a
// non-deterministic source.
func NewReservoirSampler(size int, rng *rand.Rand) *ReservoirSampler {
	if size < 1 {
		size = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ReservoirSampler{
		buffer:  make([]dataset.Row, 0, size),
		maxSize: size,
		rng:     rng,
	}
}

func (s *ReservoirSampler) Add(row dataset.Row) {
	s.totalSeen++
	if len(s.buffer) < s.maxSize {
		s.buffer = append(s.buffer, row)
		return
	}
	j := s.rng.Intn(s.totalSeen)
	if j < s.maxSize {
		s.buffer[j] = row
	}
}

func (s *ReservoirSampler) Sample() []dataset.Row {
	out := make([]dataset.Row, len(s.buffer))
	copy(out, s.buffer)
	return out
}

func (s *ReservoirSampler) Rate() float64 {
	if s.totalSeen == 0 {
		return 0
	}
	return float64(len(s.buffer)) / float64(s.totalSeen)
}

func (s *ReservoirSampler) Clear() {
	s.buffer = s.buffer[:0]
	s.totalSeen = 0
}
