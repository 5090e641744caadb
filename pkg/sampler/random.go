package sampler

import (
	"math/rand"
	"time"

	"github.com/approxql/aqe/pkg/dataset"
)

// RandomSampler admits each incoming row independently with probability
// rate (simple/Bernoulli random sampling).
type RandomSampler struct {
	rate   float64
	sample []dataset.Row
	rng    *rand.Rand
}

// NewRandomSampler builds a sampler at the given rate, which must be in
// (0,1]. If rng is nil, the sampler seeds its own generator from a
// non-deterministic source; callers that need reproducible tests should
// pass an explicit *rand.Rand.
func NewRandomSampler(rate float64, rng *rand.Rand) *RandomSampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomSampler{rate: rate, rng: rng}
}

func (s *RandomSampler) Add(row dataset.Row) {
	if s.rng.Float64() < s.rate {
		s.sample = append(s.sample, row)
	}
}

func (s *RandomSampler) Sample() []dataset.Row {
	out := make([]dataset.Row, len(s.sample))
	copy(out, s.sample)
	return out
}

func (s *RandomSampler) Rate() float64 { return s.rate }

func (s *RandomSampler) Clear() { s.sample = nil }
