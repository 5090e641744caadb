// Package sketches provides standalone probabilistic data structures for
// approximate query processing: a Count-Min Sketch, a HyperLogLog, a Bloom
// filter, and an exponential histogram. None of these are wired into the
// executor's main path — they exist as a reusable library available for a
// future APPROX_COUNT_DISTINCT or windowed-count extension to the query
// grammar, which this repository does not add on its own.
package sketches

// SketchType identifies which probabilistic structure a serialized blob
// or registry entry holds.
type SketchType string

const (
	CountMinSketchType       SketchType = "countmin"
	HyperLogLogType          SketchType = "hyperloglog"
	BloomFilterType          SketchType = "bloom"
	ExponentialHistogramType SketchType = "exponential_histogram"
)

// Sketch is the common surface every probabilistic structure here
// satisfies: it can report its own kind and serialize its internal state.
type Sketch interface {
	Type() SketchType
	Serialize() []byte
}

var (
	_ Sketch = (*CountMinSketch)(nil)
	_ Sketch = (*HyperLogLog)(nil)
	_ Sketch = (*BloomFilter)(nil)
	_ Sketch = (*ExponentialHistogram)(nil)
)
