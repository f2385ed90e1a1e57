package fingerprint

import (
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

const (
	// hashMod is the Mersenne prime 2^61-1; reductions are shifts and adds.
	hashMod uint64 = 1<<61 - 1

	// hashBase is the polynomial base.
	hashBase uint64 = 1_000_000_007
)

// RollingHash computes Rabin-Karp hashes over the last k tokens pushed.
// Each push is O(1).
type RollingHash struct {
	k       int
	basePow uint64 // hashBase^(k-1) mod hashMod
	ring    []uint64
	pos     int
	seen    int
	hash    uint64
}

// NewRollingHash creates a rolling hash over windows of k tokens.
func NewRollingHash(k int) *RollingHash {
	pow := uint64(1)
	for i := 0; i < k-1; i++ {
		pow = mulMod(pow, hashBase)
	}
	return &RollingHash{
		k:       k,
		basePow: pow,
		ring:    make([]uint64, k),
	}
}

// Push adds a token and returns the hash of the last k tokens. ok is false
// until k tokens have been pushed.
func (r *RollingHash) Push(token string) (uint64, bool) {
	v := TokenValue(token)
	if r.seen >= r.k {
		old := r.ring[r.pos]
		r.hash = subMod(r.hash, mulMod(old, r.basePow))
	}
	r.hash = addMod(mulMod(r.hash, hashBase), v)
	r.ring[r.pos] = v
	r.pos = (r.pos + 1) % r.k
	r.seen++
	return r.hash, r.seen >= r.k
}

// HashTokens hashes tokens directly, without rolling. Push over the same
// tokens ends with the same value.
func HashTokens(tokens []string) uint64 {
	var h uint64
	for _, t := range tokens {
		h = addMod(mulMod(h, hashBase), TokenValue(t))
	}
	return h
}

// TokenValue maps a token onto the hash field.
func TokenValue(token string) uint64 {
	return reduce(xxhash.Sum64String(token))
}

func reduce(x uint64) uint64 {
	x = (x & hashMod) + (x >> 61)
	if x >= hashMod {
		x -= hashMod
	}
	return x
}

// mulMod returns a*b mod 2^61-1 for a, b < 2^61.
func mulMod(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	// 2^61 = 1 (mod p), so 2^64 = 8.
	return reduce((lo & hashMod) + (lo >> 61) + (hi << 3))
}

func addMod(a, b uint64) uint64 {
	s := a + b
	if s >= hashMod {
		s -= hashMod
	}
	return s
}

func subMod(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + hashMod - b
}
