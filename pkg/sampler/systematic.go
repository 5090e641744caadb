package sampler

import "github.com/approxql/aqe/pkg/dataset"

// SystematicSampler admits every step-th row (the step-th, 2*step-th, …).
type SystematicSampler struct {
	step    int
	current int
	sample  []dataset.Row
}

// NewSystematicSampler builds a sampler with the given step. A step below 1
// is not rejected: it is clamped to 1, which admits every row.
func NewSystematicSampler(step int) *SystematicSampler {
	if step < 1 {
		step = 1
	}
	return &SystematicSampler{step: step}
}

func (s *SystematicSampler) Add(row dataset.Row) {
	s.current++
	if s.current%s.step == 0 {
		s.sample = append(s.sample, row)
	}
}

func (s *SystematicSampler) Sample() []dataset.Row {
	out := make([]dataset.Row, len(s.sample))
	copy(out, s.sample)
	return out
}

func (s *SystematicSampler) Rate() float64 { return 1.0 / float64(s.step) }

func (s *SystematicSampler) Clear() {
	s.sample = nil
	s.current = 0
}
