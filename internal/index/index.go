// Package index holds the corpus-wide fingerprint index of a comparison
// session: every fingerprint hash maps to the occurrences seen so far, in
// insertion order.
//
// The index is append-only. It has no internal locking: a session owns its
// index and writes to it from a single goroutine.
package index

import "github.com/RishiKendai/winnow/internal/models"

// Index maps fingerprint hash → occurrences.
type Index struct {
	buckets     map[uint64][]*models.FilePart
	occurrences int
	largest     int
}

func New() *Index {
	return &Index{
		buckets: make(map[uint64][]*models.FilePart),
	}
}

// Lookup returns the occurrences recorded for hash. The slice must not be
// modified by the caller.
func (idx *Index) Lookup(hash uint64) []*models.FilePart {
	return idx.buckets[hash]
}

// Add appends an occurrence to the bucket of hash.
func (idx *Index) Add(hash uint64, part *models.FilePart) {
	bucket := append(idx.buckets[hash], part)
	idx.buckets[hash] = bucket
	idx.occurrences++
	if len(bucket) > idx.largest {
		idx.largest = len(bucket)
	}
}

// Hashes returns the number of distinct hashes.
func (idx *Index) Hashes() int {
	return len(idx.buckets)
}

// Occurrences returns the total number of recorded occurrences.
func (idx *Index) Occurrences() int {
	return idx.occurrences
}

// LargestBucket returns the size of the most populated bucket. Low-entropy
// input (long runs of identical tokens) shows up here first.
func (idx *Index) LargestBucket() int {
	return idx.largest
}
