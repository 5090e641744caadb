package sketches

import (
	"encoding/binary"
	"fmt"
	"math/rand"
)

const (
	DefaultCMSDepth = 5
	DefaultCMSWidth = 2048
)

// CountMinSketch is a depth x width matrix of signed counters used for
// approximate frequency estimation. add(item, c) increments one counter per
// row; estimate(item) takes the minimum across rows, which never
// underestimates a true non-negative count but may overestimate due to hash
// collisions. Cells are signed so callers can also track deltas (additions
// and removals) rather than pure frequency counts.
type CountMinSketch struct {
	table [][]int64
	seeds []uint32
	depth int
	width int
	count int64
}

// NewCountMinSketch builds a sketch with the given depth (number of hash
// rows) and width (counters per row), seeding each row independently from
// a non-deterministic source.
func NewCountMinSketch(depth, width int) *CountMinSketch {
	if depth <= 0 {
		depth = DefaultCMSDepth
	}
	if width <= 0 {
		width = DefaultCMSWidth
	}
	cms := &CountMinSketch{
		table: make([][]int64, depth),
		seeds: make([]uint32, depth),
		depth: depth,
		width: width,
	}
	for i := range cms.table {
		cms.table[i] = make([]int64, width)
		cms.seeds[i] = rand.Uint32()
	}
	return cms
}

func (cms *CountMinSketch) Type() SketchType { return CountMinSketchType }

// Add increments the counter for item by delta in every row.
func (cms *CountMinSketch) Add(item string, delta int64) {
	for i := 0; i < cms.depth; i++ {
		j := cms.hash(item, cms.seeds[i])
		cms.table[i][j] += delta
	}
	cms.count += delta
}

// Estimate returns the minimum counter value for item across all rows.
func (cms *CountMinSketch) Estimate(item string) int64 {
	min := cms.table[0][cms.hash(item, cms.seeds[0])]
	for i := 1; i < cms.depth; i++ {
		v := cms.table[i][cms.hash(item, cms.seeds[i])]
		if v < min {
			min = v
		}
	}
	return min
}

// TotalCount returns the sum of all deltas ever added.
func (cms *CountMinSketch) TotalCount() int64 { return cms.count }

// Merge folds other's counters into cms. Both sketches must share depth
// and width.
func (cms *CountMinSketch) Merge(other *CountMinSketch) error {
	if cms.depth != other.depth || cms.width != other.width {
		return fmt.Errorf("sketches: cannot merge count-min sketches of differing shape (%dx%d vs %dx%d)",
			cms.depth, cms.width, other.depth, other.width)
	}
	for i := 0; i < cms.depth; i++ {
		for j := 0; j < cms.width; j++ {
			cms.table[i][j] += other.table[i][j]
		}
	}
	cms.count += other.count
	return nil
}

// hash mixes a polynomial rolling hash of item with the row's seed and
// folds it into [0, width).
func (cms *CountMinSketch) hash(item string, seed uint32) int {
	h := seed
	for i := 0; i < len(item); i++ {
		h = h*31 + uint32(item[i])
	}
	return int(h % uint32(cms.width))
}

// Serialize returns the sketch's shape, seeds, and counter table as bytes.
func (cms *CountMinSketch) Serialize() []byte {
	headerSize := 8 + 4*cms.depth
	dataSize := cms.depth * cms.width * 8
	data := make([]byte, headerSize+dataSize)

	binary.LittleEndian.PutUint32(data[0:4], uint32(cms.depth))
	binary.LittleEndian.PutUint32(data[4:8], uint32(cms.width))
	for i, seed := range cms.seeds {
		binary.LittleEndian.PutUint32(data[8+4*i:12+4*i], seed)
	}

	offset := headerSize
	for i := 0; i < cms.depth; i++ {
		for j := 0; j < cms.width; j++ {
			binary.LittleEndian.PutUint64(data[offset:offset+8], uint64(cms.table[i][j]))
			offset += 8
		}
	}
	return data
}

// DeserializeCountMinSketch reconstructs a sketch from bytes produced by
// Serialize.
func DeserializeCountMinSketch(data []byte) (*CountMinSketch, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("sketches: count-min sketch data too short")
	}
	depth := int(binary.LittleEndian.Uint32(data[0:4]))
	width := int(binary.LittleEndian.Uint32(data[4:8]))

	headerSize := 8 + 4*depth
	expected := headerSize + depth*width*8
	if len(data) != expected {
		return nil, fmt.Errorf("sketches: count-min sketch data length mismatch: expected %d, got %d", expected, len(data))
	}

	cms := &CountMinSketch{
		table: make([][]int64, depth),
		seeds: make([]uint32, depth),
		depth: depth,
		width: width,
	}
	for i := 0; i < depth; i++ {
		cms.seeds[i] = binary.LittleEndian.Uint32(data[8+4*i : 12+4*i])
		cms.table[i] = make([]int64, width)
	}

	offset := headerSize
	var total int64
	for i := 0; i < depth; i++ {
		for j := 0; j < width; j++ {
			v := int64(binary.LittleEndian.Uint64(data[offset : offset+8]))
			cms.table[i][j] = v
			offset += 8
		}
	}
	// Every Add puts its delta into exactly one cell of each row, so the
	// sum of row 0 equals the total count.
	for _, v := range cms.table[0] {
		total += v
	}
	cms.count = total
	return cms, nil
}
