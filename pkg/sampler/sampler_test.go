package sampler

import (
	"math/rand"
	"testing"

	"github.com/approxql/aqe/pkg/dataset"
)

func rowsN(n int) []dataset.Row {
	rows := make([]dataset.Row, n)
	for i := range rows {
		rows[i] = dataset.Row{"i": "x"}
	}
	return rows
}

func TestReservoirExactSizeWhenStreamLargerThanCapacity(t *testing.T) {
	s := NewReservoirSampler(100, rand.New(rand.NewSource(1)))
	for _, row := range rowsN(1000) {
		s.Add(row)
	}
	if got := len(s.Sample()); got != 100 {
		t.Fatalf("expected reservoir size 100, got %d", got)
	}
}

func TestReservoirSmallerThanCapacityKeepsAll(t *testing.T) {
	s := NewReservoirSampler(100, rand.New(rand.NewSource(1)))
	for _, row := range rowsN(37) {
		s.Add(row)
	}
	if got := len(s.Sample()); got != 37 {
		t.Fatalf("expected 37 rows, got %d", got)
	}
	if got := s.Rate(); got != 1.0 {
		t.Fatalf("expected rate 1.0 when stream smaller than capacity, got %v", got)
	}
}

func TestReservoirZeroRateUntouched(t *testing.T) {
	s := NewReservoirSampler(10, nil)
	if got := s.Rate(); got != 0 {
		t.Fatalf("expected rate 0 for untouched reservoir, got %v", got)
	}
}

func TestRandomSamplerRateConcentration(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewRandomSampler(0.1, rng)
	const n = 10000
	for _, row := range rowsN(n) {
		s.Add(row)
	}
	got := len(s.Sample())
	// sigma^2 = n*r*(1-r) ~= 900, sigma ~= 30; allow a generous 10-sigma band
	if got < 700 || got > 1300 {
		t.Fatalf("sample size %d far outside expected concentration band around 1000", got)
	}
}

func TestSystematicSamplerAdmitsEveryStepRow(t *testing.T) {
	s := NewSystematicSampler(10)
	rows := rowsN(100)
	for i, row := range rows {
		row["idx"] = string(rune('a' + i%26))
		s.Add(row)
	}
	if got := len(s.Sample()); got != 10 {
		t.Fatalf("expected 10 admitted rows, got %d", got)
	}
	if got := s.Rate(); got != 0.1 {
		t.Fatalf("expected rate 0.1, got %v", got)
	}
}

func TestSystematicSamplerClampsSubOneStep(t *testing.T) {
	s := NewSystematicSampler(0)
	if s.step != 1 {
		t.Fatalf("expected step to clamp to 1, got %d", s.step)
	}
}

func TestStratifiedSamplerConcatenatesAllStrata(t *testing.T) {
	s := NewStratifiedSampler(0.5, "category", DefaultStratumReservoirSize, rand.New(rand.NewSource(7)))
	for i := 0; i < 500; i++ {
		cat := "A"
		if i%2 == 0 {
			cat = "B"
		}
		s.Add(dataset.Row{"category": cat, "value": "1"})
	}
	sample := s.Sample()
	if len(sample) != 200 {
		t.Fatalf("expected 100 per stratum * 2 strata = 200, got %d", len(sample))
	}
	if got := s.Rate(); got != 0.5 {
		t.Fatalf("expected configured rate 0.5, got %v", got)
	}
}

func TestStratifiedSamplerMissingColumnGoesToNullStratum(t *testing.T) {
	s := NewStratifiedSampler(1.0, "category", DefaultStratumReservoirSize, rand.New(rand.NewSource(3)))
	s.Add(dataset.Row{"value": "1"})
	s.Add(dataset.Row{"value": "2"})
	if got := len(s.Sample()); got != 2 {
		t.Fatalf("expected both rows in the NULL stratum, got %d", got)
	}
}

func TestStratifiedSamplerHonorsConfiguredStratumSize(t *testing.T) {
	s := NewStratifiedSampler(1.0, "category", 10, rand.New(rand.NewSource(11)))
	for i := 0; i < 100; i++ {
		s.Add(dataset.Row{"category": "A", "value": "1"})
	}
	if got := len(s.Sample()); got != 10 {
		t.Fatalf("expected stratum capped at configured size 10, got %d", got)
	}
}

func TestStratifiedSamplerZeroStratumSizeFallsBackToDefault(t *testing.T) {
	s := NewStratifiedSampler(1.0, "category", 0, rand.New(rand.NewSource(13)))
	for i := 0; i < DefaultStratumReservoirSize+50; i++ {
		s.Add(dataset.Row{"category": "A", "value": "1"})
	}
	if got := len(s.Sample()); got != DefaultStratumReservoirSize {
		t.Fatalf("expected fallback to default stratum size %d, got %d", DefaultStratumReservoirSize, got)
	}
}

func TestClearResetsSamplers(t *testing.T) {
	r := NewReservoirSampler(5, rand.New(rand.NewSource(1)))
	for _, row := range rowsN(10) {
		r.Add(row)
	}
	r.Clear()
	if got := len(r.Sample()); got != 0 {
		t.Fatalf("expected empty sample after clear, got %d", got)
	}
	if got := r.Rate(); got != 0 {
		t.Fatalf("expected rate 0 after clear, got %v", got)
	}
}
