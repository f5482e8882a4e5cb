// Package bloom tracks which cache entries exist in the persistent document
// store, letting the read path skip disk lookups for pages that were never
// persisted.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a Bloom filter over persisted cache entry keys. A negative test
// proves the disk tier has no entry; a positive test still requires the disk
// read, since false positives are possible.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected entries with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a persisted entry key.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// MayHave returns true if the disk tier might hold an entry for the key.
// False negatives are impossible, so a false result skips the disk read.
func (f *Filter) MayHave(key string) bool {
	return f.f.TestString(key)
}

// EstimatedCount returns the approximate number of recorded entries.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
