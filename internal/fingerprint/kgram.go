package fingerprint

// KGramFilter emits the hash of every k-gram. It keeps full recall for any
// repeat of at least k tokens at the cost of a dense index.
type KGramFilter struct {
	k int
}

func NewKGramFilter(k int) *KGramFilter {
	return &KGramFilter{k: k}
}

func (f *KGramFilter) Fingerprints(tokens []string) Iterator {
	return &kgramIterator{tokens: tokens, k: f.k, rolling: NewRollingHash(f.k)}
}

type kgramIterator struct {
	tokens  []string
	k       int
	next    int
	rolling *RollingHash
}

func (it *kgramIterator) Next() (Fingerprint, bool) {
	for it.next < len(it.tokens) {
		hash, full := it.rolling.Push(it.tokens[it.next])
		it.next++
		if !full {
			continue
		}
		start := it.next - it.k
		return Fingerprint{
			Hash:  hash,
			Start: start,
			Stop:  it.next - 1,
			Data:  kmerData(it.tokens, start, it.k),
		}, true
	}
	return Fingerprint{}, false
}
