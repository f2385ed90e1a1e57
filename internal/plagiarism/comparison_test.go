package plagiarism

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishiKendai/winnow/internal/fingerprint"
	"github.com/RishiKendai/winnow/internal/models"
	"github.com/RishiKendai/winnow/internal/tokenizer"
)

func words(rng *rand.Rand, prefix string, n, alphabet int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, rng.Intn(alphabet))
	}
	return out
}

func source(parts ...[]string) string {
	var all []string
	for _, p := range parts {
		all = append(all, p...)
	}
	return strings.Join(all, " ")
}

func newTestComparison(t *testing.T, opts ...Option) *Comparison {
	t.Helper()
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	c, err := NewComparison(tokenizer.NewLexical(), opts...)
	require.NoError(t, err)
	return c
}

func matchSignatures(inter *models.Intersection) []string {
	out := make([]string, 0, len(inter.Matches))
	for _, m := range inter.Matches {
		out = append(out, fmt.Sprintf("%d %s %s", m.Hash, m.Left.Location, m.Right.Location))
	}
	sort.Strings(out)
	return out
}

func TestCompareFile_FirstFileHasNoIntersections(t *testing.T) {
	c := newTestComparison(t)
	rng := rand.New(rand.NewSource(1))
	file := &models.File{ID: 1, Path: "a.txt", Content: source(words(rng, "t", 200, 10))}

	analysis, err := c.CompareFile(file)
	require.NoError(t, err)
	assert.Empty(t, analysis)
	assert.Empty(t, c.Intersections())
	assert.Positive(t, c.FingerprintCount(file))
	assert.Equal(t, c.FingerprintCount(file), c.Index().Occurrences())
}

func TestCompareFiles_DetectsLongRepeats(t *testing.T) {
	const k, w = 5, 4
	rng := rand.New(rand.NewSource(2))

	for trial := 0; trial < 30; trial++ {
		shared := words(rng, "s", k+w-1, 1000)
		a := &models.File{ID: 1, Path: "a.txt", Content: source(words(rng, "a", rng.Intn(40), 1000), shared, words(rng, "a", rng.Intn(40), 1000))}
		b := &models.File{ID: 2, Path: "b.txt", Content: source(words(rng, "b", rng.Intn(40), 1000), shared, words(rng, "b", rng.Intn(40), 1000))}

		c := newTestComparison(t, WithKmerLength(k), WithWindowSize(w))
		analysis, err := c.CompareFiles([]*models.File{a, b})
		require.NoError(t, err)
		require.Len(t, analysis, 1, "trial %d", trial)
		assert.NotEmpty(t, analysis[0].Matches)
	}
}

func TestCompareFiles_CanonicalPairing(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	shared := words(rng, "s", 60, 50)
	a := &models.File{ID: 7, Path: "alpha.txt", Content: source(words(rng, "x", 30, 50), shared)}
	b := &models.File{ID: 3, Path: "beta.txt", Content: source(shared, words(rng, "y", 30, 50))}

	first, err := newTestComparison(t, WithKmerLength(4), WithWindowSize(3)).CompareFiles([]*models.File{a, b})
	require.NoError(t, err)
	second, err := newTestComparison(t, WithKmerLength(4), WithWindowSize(3)).CompareFiles([]*models.File{b, a})
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Key(), second[0].Key())
	assert.Same(t, a, first[0].Left)
	assert.Same(t, a, second[0].Left)
	assert.Equal(t, matchSignatures(first[0]), matchSignatures(second[0]))

	for _, inter := range []*models.Intersection{first[0], second[0]} {
		for _, m := range inter.Matches {
			assert.Same(t, a, m.Left.File)
			assert.Same(t, b, m.Right.File)
		}
	}
}

func TestCompareFiles_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	a := &models.File{ID: 1, Path: "a.txt", Content: source(words(rng, "t", 300, 20))}
	b := &models.File{ID: 2, Path: "b.txt", Content: source(words(rng, "t", 300, 20))}

	tokens, _, err := tokenizer.NewLexical().TokenizeWithMapping(a)
	require.NoError(t, err)
	filter := fingerprint.NewWinnowFilter(3, 4)
	assert.Equal(t, fingerprint.Collect(filter.Fingerprints(tokens)), fingerprint.Collect(filter.Fingerprints(tokens)))

	run := func() []string {
		analysis, err := newTestComparison(t, WithKmerLength(3), WithWindowSize(4)).CompareFiles([]*models.File{b, a})
		require.NoError(t, err)
		require.Len(t, analysis, 1)
		return matchSignatures(analysis[0])
	}
	assert.Equal(t, run(), run())
}

func TestCompareFiles_DisjointFiles(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	files := []*models.File{
		{ID: 1, Path: "a.txt", Content: source(words(rng, "a", 200, 30))},
		{ID: 2, Path: "b.txt", Content: source(words(rng, "b", 200, 30))},
		{ID: 3, Path: "c.txt", Content: source(words(rng, "c", 200, 30))},
	}

	c := newTestComparison(t, WithKmerLength(3), WithWindowSize(2))
	analysis, err := c.CompareFiles(files)
	require.NoError(t, err)
	assert.Empty(t, analysis)
	assert.Equal(t, 3, len(c.fingerprints))
}

func TestCompareFiles_IdenticalFiles(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	content := source(words(rng, "t", 400, 100000))
	a := &models.File{ID: 1, Path: "a.txt", Content: content}
	b := &models.File{ID: 2, Path: "b.txt", Content: content}

	c := newTestComparison(t, WithKmerLength(5), WithWindowSize(4))
	analysis, err := c.CompareFiles([]*models.File{a, b})
	require.NoError(t, err)
	require.Len(t, analysis, 1)

	inter := analysis[0]
	assert.Same(t, a, inter.Left)
	assert.Same(t, b, inter.Right)
	require.Equal(t, c.FingerprintCount(a), c.FingerprintCount(b))
	assert.Len(t, inter.Matches, c.FingerprintCount(a))
	for _, m := range inter.Matches {
		assert.Equal(t, m.Left.Location, m.Right.Location)
		assert.Equal(t, m.Left.Data, m.Right.Data)
		assert.Equal(t, m.Left.Kmer, m.Right.Kmer)
	}
}

func TestCompareFiles_NoSelfMatches(t *testing.T) {
	content := strings.Repeat("x y z ", 50)
	c := newTestComparison(t, WithKmerLength(3), WithWindowSize(2))

	analysis, err := c.CompareFile(&models.File{ID: 1, Path: "a.txt", Content: content})
	require.NoError(t, err)
	assert.Empty(t, analysis)

	// A new version of the same file does not match its old version.
	analysis, err = c.CompareFile(&models.File{ID: 1, Path: "a.txt", Content: content})
	require.NoError(t, err)
	assert.Empty(t, analysis)
	assert.Positive(t, c.Index().LargestBucket())
}

func TestCompareFile_IncrementalCallsExtendIntersections(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	shared := words(rng, "s", 80, 1000)
	a := &models.File{ID: 1, Path: "a.txt", Content: source(shared)}
	b := &models.File{ID: 2, Path: "b.txt", Content: source(shared[:40])}
	bNext := &models.File{ID: 2, Path: "b.txt", Content: source(shared[40:])}
	c := &models.File{ID: 3, Path: "c.txt", Content: source(shared)}

	cmp := newTestComparison(t, WithKmerLength(4), WithWindowSize(3))

	_, err := cmp.CompareFile(a)
	require.NoError(t, err)
	analysis, err := cmp.CompareFile(b)
	require.NoError(t, err)
	require.Len(t, analysis, 1)
	ab := analysis[0]
	before := len(ab.Matches)

	analysis, err = cmp.CompareFile(bNext)
	require.NoError(t, err)
	require.Len(t, analysis, 1)
	assert.Same(t, ab, analysis[0])
	assert.Greater(t, len(ab.Matches), before)

	// Both versions of b.txt fall into the same pair with c.
	analysis, err = cmp.CompareFile(c)
	require.NoError(t, err)
	require.Len(t, analysis, 2)
	assert.Equal(t, "1:a.txt|3:c.txt", analysis[0].Key())
	assert.Equal(t, "2:b.txt|3:c.txt", analysis[1].Key())

	all := cmp.Intersections()
	require.Len(t, all, 3)
	assert.Same(t, ab, all[0])
}

func TestCompareFiles_ContractViolation(t *testing.T) {
	tok := tokenizer.Func(func(f *models.File) ([]string, []models.Selection, error) {
		return []string{"a", "b", "c", "d"}, []models.Selection{
			models.NewSelection(0, 0, 0, 1),
			models.NewSelection(0, 2, 0, 3),
			models.NewSelection(0, 4, 0, 5),
			models.NewSelection(0, 0, 0, 1),
		}, nil
	})
	c, err := NewComparison(tok, WithHashFilter(fingerprint.NewKGramFilter(2)), WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	analysis, err := c.CompareFile(&models.File{ID: 1, Path: "bad.txt"})
	assert.Nil(t, analysis)
	require.ErrorIs(t, err, ErrTokenizerContract)

	var violation *ContractViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, 2, violation.Start)
	assert.Equal(t, 3, violation.Stop)
	assert.Equal(t, "bad.txt", violation.File.Path)

	// Fingerprints indexed before the violation stay.
	assert.Equal(t, 2, c.Index().Occurrences())
}

func TestCompareFiles_MappingLengthMismatch(t *testing.T) {
	tok := tokenizer.Func(func(f *models.File) ([]string, []models.Selection, error) {
		return []string{"a", "b"}, []models.Selection{models.NewSelection(0, 0, 0, 1)}, nil
	})
	c, err := NewComparison(tok, WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	_, err = c.CompareFiles([]*models.File{{ID: 1, Path: "x"}})
	require.ErrorIs(t, err, ErrTokenizerContract)
	assert.Contains(t, err.Error(), "mapping has 1 entries for 2 tokens")
}

func TestCompareFiles_TokenizerError(t *testing.T) {
	c, err := NewComparison(tokenizer.NewRegistry(nil), WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	_, err = c.CompareFile(&models.File{ID: 1, Path: "x.rb", Language: "ruby"})
	require.ErrorIs(t, err, tokenizer.ErrUnsupportedLanguage)
	assert.NotErrorIs(t, err, ErrTokenizerContract)
}

func TestNewComparison_Options(t *testing.T) {
	_, err := NewComparison(nil)
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = NewComparison(tokenizer.NewLexical(), WithKmerLength(0))
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = NewComparison(tokenizer.NewLexical(), WithWindowSize(-1))
	assert.ErrorIs(t, err, ErrInvalidOptions)

	a, err := NewComparison(tokenizer.NewLexical())
	require.NoError(t, err)
	b, err := NewComparison(tokenizer.NewLexical())
	require.NoError(t, err)
	assert.NotEqual(t, a.SessionID(), b.SessionID())
	assert.Zero(t, a.Index().Hashes())
}
