package fingerprint

import "math"

// WinnowFilter selects fingerprints with winnowing over windows of w k-gram
// hashes.
type WinnowFilter struct {
	k int
	w int
}

// NewWinnowFilter creates a winnowing filter for k-grams of k tokens and
// windows of w k-grams. Both must be positive.
func NewWinnowFilter(k, w int) *WinnowFilter {
	return &WinnowFilter{k: k, w: w}
}

// KmerLength returns k.
func (f *WinnowFilter) KmerLength() int { return f.k }

// WindowSize returns w.
func (f *WinnowFilter) WindowSize() int { return f.w }

// Fingerprints returns a lazy iterator over the winnowed fingerprints of
// tokens. Hashing happens as the iterator is pulled.
func (f *WinnowFilter) Fingerprints(tokens []string) Iterator {
	return &winnowIterator{
		tokens:   tokens,
		k:        f.k,
		rolling:  NewRollingHash(f.k),
		winnower: newWinnower(f.w),
	}
}

type winnowIterator struct {
	tokens   []string
	k        int
	next     int
	rolling  *RollingHash
	winnower *winnower
}

func (it *winnowIterator) Next() (Fingerprint, bool) {
	for it.next < len(it.tokens) {
		hash, full := it.rolling.Push(it.tokens[it.next])
		it.next++
		if !full {
			continue
		}
		start := it.next - it.k
		if h, pos, ok := it.winnower.push(hash, start); ok {
			return Fingerprint{
				Hash:  h,
				Start: pos,
				Stop:  pos + it.k - 1,
				Data:  kmerData(it.tokens, pos, it.k),
			}, true
		}
	}
	return Fingerprint{}, false
}

// winnower keeps a circular buffer of the last w hashes and reports the
// rightmost minimal hash of the window every time it moves to a new position.
// Slots not filled yet hold MaxUint64, so the leading partial windows select
// as well.
type winnower struct {
	hashes    []uint64
	positions []int
	r         int // slot of the newest hash
	min       int // slot of the current rightmost minimum
}

func newWinnower(w int) *winnower {
	hashes := make([]uint64, w)
	for i := range hashes {
		hashes[i] = math.MaxUint64
	}
	return &winnower{
		hashes:    hashes,
		positions: make([]int, w),
	}
}

func (wn *winnower) push(hash uint64, pos int) (uint64, int, bool) {
	w := len(wn.hashes)
	wn.r = (wn.r + 1) % w
	wn.hashes[wn.r] = hash
	wn.positions[wn.r] = pos

	if wn.min == wn.r {
		// The previous minimum just left the window. Scan leftwards from the
		// newest slot; strict comparison keeps the rightmost of equal hashes.
		for i := (wn.r - 1 + w) % w; i != wn.r; i = (i - 1 + w) % w {
			if wn.hashes[i] < wn.hashes[wn.min] {
				wn.min = i
			}
		}
		return wn.hashes[wn.min], wn.positions[wn.min], true
	}

	if wn.hashes[wn.r] <= wn.hashes[wn.min] {
		wn.min = wn.r
		return wn.hashes[wn.min], wn.positions[wn.min], true
	}
	return 0, 0, false
}
