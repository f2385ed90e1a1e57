// Package fingerprint turns token sequences into sparse, deterministic
// streams of k-gram hashes.
//
// The default filter implements winnowing (Schleimer, Wilkerson and Aiken,
// 2003): every k-gram gets a rolling hash, a window of w consecutive hashes
// slides over the sequence and the minimum of each window is selected. Ties
// go to the rightmost minimal hash, and a position is emitted only the first
// time it is selected. Any run of at least k+w-1 tokens that occurs in two
// sequences therefore yields at least one common fingerprint.
package fingerprint

import "strings"

// Fingerprint is one selected k-gram.
type Fingerprint struct {
	Hash uint64 `json:"hash"`
	// Start and Stop are the inclusive token indices of the k-gram.
	Start int    `json:"start"`
	Stop  int    `json:"stop"`
	Data  string `json:"data"`
}

// Iterator yields fingerprints one at a time. The second return value is
// false once the sequence is exhausted.
type Iterator interface {
	Next() (Fingerprint, bool)
}

// HashFilter selects the fingerprints of a token sequence.
type HashFilter interface {
	Fingerprints(tokens []string) Iterator
}

// Collect drains it into a slice.
func Collect(it Iterator) []Fingerprint {
	var out []Fingerprint
	for fp, ok := it.Next(); ok; fp, ok = it.Next() {
		out = append(out, fp)
	}
	return out
}

func kmerData(tokens []string, start, k int) string {
	return strings.Join(tokens[start:start+k], " ")
}
