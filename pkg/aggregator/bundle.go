package aggregator

// Bundle holds the aggregators attached to a single group-by key, plus the
// group-by cell values that identify that group for result rendering. It
// is created on first sighting of a group key and mutated only by row
// dispatch.
type Bundle struct {
	aggregators map[string]Aggregator
	GroupValues []string
}

// Spec pairs a rendered result-column key with the aggregate kind it
// should compute.
type Spec struct {
	Key  string
	Kind Kind
}

// NewBundle constructs a bundle with one fresh aggregator per spec.
func NewBundle(specs []Spec) *Bundle {
	b := &Bundle{aggregators: make(map[string]Aggregator, len(specs))}
	for _, s := range specs {
		if agg := New(s.Kind); agg != nil {
			b.aggregators[s.Key] = agg
		}
	}
	return b
}

// AddValue dispatches x to the aggregator registered under key. Unknown
// keys are silently ignored.
func (b *Bundle) AddValue(key string, x float64) {
	if agg, ok := b.aggregators[key]; ok {
		agg.Add(x)
	}
}

// Result returns the current result of the aggregator registered under
// key, or 0 if the key is absent.
func (b *Bundle) Result(key string) float64 {
	if agg, ok := b.aggregators[key]; ok {
		return agg.Result()
	}
	return 0
}

// varianceAggregator is implemented by aggregators that can report the
// sample variance of the values they've accumulated, needed to build a
// confidence interval around a rescaled sample estimate.
type varianceAggregator interface {
	Variance() (float64, int)
}

// Variance returns the sample variance and count of values seen by the
// aggregator registered under key. ok is false when key is unregistered
// or its aggregator does not support variance reporting (e.g. MIN/MAX).
func (b *Bundle) Variance(key string) (variance float64, n int, ok bool) {
	agg, exists := b.aggregators[key]
	if !exists {
		return 0, 0, false
	}
	va, supports := agg.(varianceAggregator)
	if !supports {
		return 0, 0, false
	}
	variance, n = va.Variance()
	return variance, n, true
}
