// Package bloom provides probabilistic URL deduplication for crawl frontiers.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter is a Bloom-filter set of canonicalized URLs. URLs differing only by
// fragment count as the same page.
type Filter struct {
	set *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		set: bloom.NewWithEstimates(n, fpRate),
	}
}

// Canonicalize strips the fragment from a URL so page anchors do not count
// as distinct pages.
func Canonicalize(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// Add marks a URL as seen.
func (f *Filter) Add(url string) {
	f.set.AddString(Canonicalize(url))
}

// Test reports whether the URL may have been seen.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.set.TestString(Canonicalize(url))
}

// EstimatedCount returns the approximate number of URLs added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.set.ApproximatedSize())
}
