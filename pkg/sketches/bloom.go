package sketches

import (
	"encoding/binary"
	"fmt"
	"hash/maphash"
)

const bloomHashFunctions = 3

// BloomFilter is a fixed-size bit vector membership test: false positives
// are possible, false negatives are not.
type BloomFilter struct {
	bits    []bool
	numBits int
	seed    maphash.Seed
}

// NewBloomFilter creates a filter with numBits bits, all initially clear.
func NewBloomFilter(numBits int) *BloomFilter {
	if numBits <= 0 {
		numBits = 10000
	}
	return &BloomFilter{
		bits:    make([]bool, numBits),
		numBits: numBits,
		seed:    maphash.MakeSeed(),
	}
}

func (bf *BloomFilter) Type() SketchType { return BloomFilterType }

// Add records item's membership.
func (bf *BloomFilter) Add(item string) {
	for i := 0; i < bloomHashFunctions; i++ {
		bf.bits[bf.index(item, i)] = true
	}
}

// MightContain reports whether item could be a member. A false result is
// certain; a true result may be a false positive.
func (bf *BloomFilter) MightContain(item string) bool {
	for i := 0; i < bloomHashFunctions; i++ {
		if !bf.bits[bf.index(item, i)] {
			return false
		}
	}
	return true
}

// FalsePositiveRate estimates the current false-positive probability from
// the fraction of set bits.
func (bf *BloomFilter) FalsePositiveRate() float64 {
	var set int
	for _, b := range bf.bits {
		if b {
			set++
		}
	}
	p := float64(set) / float64(bf.numBits)
	rate := 1.0
	for i := 0; i < bloomHashFunctions; i++ {
		rate *= p
	}
	return rate
}

func (bf *BloomFilter) index(item string, hashFn int) int {
	var h maphash.Hash
	h.SetSeed(bf.seed)
	h.WriteString(item)
	h.WriteByte(byte(hashFn))
	return int(h.Sum64() % uint64(bf.numBits))
}

// Serialize returns the bit vector packed one bit per bool as bytes.
func (bf *BloomFilter) Serialize() []byte {
	data := make([]byte, 4+(bf.numBits+7)/8)
	binary.LittleEndian.PutUint32(data[0:4], uint32(bf.numBits))
	for i, b := range bf.bits {
		if b {
			data[4+i/8] |= 1 << uint(i%8)
		}
	}
	return data
}

// DeserializeBloomFilter reconstructs a filter from bytes produced by
// Serialize. Its hash seed is freshly generated, so a round-tripped
// filter answers MightContain correctly but is not bit-identical to the
// original in seed material.
func DeserializeBloomFilter(data []byte) (*BloomFilter, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("sketches: bloom filter data too short")
	}
	numBits := int(binary.LittleEndian.Uint32(data[0:4]))
	expected := 4 + (numBits+7)/8
	if len(data) != expected {
		return nil, fmt.Errorf("sketches: bloom filter data length mismatch: expected %d, got %d", expected, len(data))
	}
	bf := NewBloomFilter(numBits)
	for i := 0; i < numBits; i++ {
		if data[4+i/8]&(1<<uint(i%8)) != 0 {
			bf.bits[i] = true
		}
	}
	return bf, nil
}
