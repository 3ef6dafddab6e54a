// Package bloom provides record key deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter remembers record keys, such as answer ids, seen during a harvest.
// It is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected keys
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen adds key and reports whether it was probably present before.
// A false positive drops a record that was in fact new.
func (f *Filter) Seen(key string) bool {
	return f.f.TestAndAddString(key)
}
