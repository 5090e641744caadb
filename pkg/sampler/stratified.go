package sampler

import (
	"math/rand"

	"github.com/approxql/aqe/pkg/dataset"
)

// DefaultStratumReservoirSize is the per-stratum reservoir capacity used
// when a caller doesn't pin a different one via NewStratifiedSampler.
const DefaultStratumReservoirSize = 100

// StratifiedSampler partitions the stream by the value of a named column
// and maintains an independent fixed-size reservoir per stratum. Rate
// reports the user-configured rate rather than any observed per-stratum
// rate — a deliberate simplification the executor uses uniformly to
// rescale COUNT/SUM regardless of how individual strata saturate.
type StratifiedSampler struct {
	rate        float64
	column      string
	stratumSize int
	strata      map[string]*ReservoirSampler
	rng         *rand.Rand
}

// NewStratifiedSampler builds a sampler keyed by column, reporting rate
// for rescaling purposes. stratumSize is the reservoir capacity given to
// each stratum; values below 1 fall back to DefaultStratumReservoirSize.
// If rng is nil, per-stratum reservoirs seed their own generators from a
// non-deterministic source.
func NewStratifiedSampler(rate float64, column string, stratumSize int, rng *rand.Rand) *StratifiedSampler {
	if stratumSize < 1 {
		stratumSize = DefaultStratumReservoirSize
	}
	return &StratifiedSampler{
		rate:        rate,
		column:      column,
		stratumSize: stratumSize,
		strata:      make(map[string]*ReservoirSampler),
		rng:         rng,
	}
}

func (s *StratifiedSampler) Add(row dataset.Row) {
	key, ok := row[s.column]
	if !ok {
		key = "NULL"
	}
	stratum, exists := s.strata[key]
	if !exists {
		stratum = NewReservoirSampler(s.stratumSize, s.rng)
		s.strata[key] = stratum
	}
	stratum.Add(row)
}

// Sample concatenates every stratum's reservoir in an unspecified order.
func (s *StratifiedSampler) Sample() []dataset.Row {
	var out []dataset.Row
	for _, stratum := range s.strata {
		out = append(out, stratum.Sample()...)
	}
	return out
}

func (s *StratifiedSampler) Rate() float64 { return s.rate }

func (s *StratifiedSampler) Clear() {
	s.strata = make(map[string]*ReservoirSampler)
}
