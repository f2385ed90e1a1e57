// Package plagiarism is the comparison engine. A Comparison owns one corpus
// session: every file submitted to it is tokenized, fingerprinted and matched
// against the fingerprints of all files submitted before, and the shared
// fingerprints are accumulated per file pair as Intersections.
package plagiarism

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RishiKendai/winnow/internal/fingerprint"
	"github.com/RishiKendai/winnow/internal/index"
	"github.com/RishiKendai/winnow/internal/models"
	"github.com/RishiKendai/winnow/internal/tokenizer"
)

type fileKey struct {
	id   int
	path string
}

func keyOf(f *models.File) fileKey {
	return fileKey{id: f.ID, path: f.Path}
}

// pairKey identifies an unordered file pair; a is the canonically first file.
type pairKey struct {
	a, b fileKey
}

func keyOfPair(x, y *models.File) pairKey {
	if models.CompareFiles(x, y) > 0 {
		x, y = y, x
	}
	return pairKey{a: keyOf(x), b: keyOf(y)}
}

// Comparison is a single-writer comparison session. It is not safe for
// concurrent use; run independent sessions in parallel instead.
type Comparison struct {
	id        string
	tokenizer tokenizer.Tokenizer
	filter    fingerprint.HashFilter
	logger    zerolog.Logger

	index         *index.Index
	intersections map[pairKey]*models.Intersection
	order         []*models.Intersection
	fingerprints  map[fileKey]int
}

// NewComparison creates an empty session that tokenizes files with tok.
func NewComparison(tok tokenizer.Tokenizer, opts ...Option) (*Comparison, error) {
	if tok == nil {
		return nil, fmt.Errorf("%w: tokenizer is required", ErrInvalidOptions)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.filter == nil {
		if o.kmerLength < 1 {
			return nil, fmt.Errorf("%w: k-mer length must be positive, got %d", ErrInvalidOptions, o.kmerLength)
		}
		if o.windowSize < 1 {
			return nil, fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidOptions, o.windowSize)
		}
	}
	filter, logger := o.resolve()

	id := uuid.NewString()
	return &Comparison{
		id:            id,
		tokenizer:     tok,
		filter:        filter,
		logger:        logger.With().Str("session", id).Logger(),
		index:         index.New(),
		intersections: make(map[pairKey]*models.Intersection),
		fingerprints:  make(map[fileKey]int),
	}, nil
}

// SessionID returns the random identifier of this session.
func (c *Comparison) SessionID() string {
	return c.id
}

// Index exposes the session's fingerprint index for inspection.
func (c *Comparison) Index() *index.Index {
	return c.index
}

// Intersections returns every intersection of the session in creation order.
func (c *Comparison) Intersections() models.Analysis {
	out := make(models.Analysis, len(c.order))
	copy(out, c.order)
	return out
}

// FingerprintCount returns how many fingerprints the latest submission of
// file produced, or 0 if it was never submitted.
func (c *Comparison) FingerprintCount(file *models.File) int {
	return c.fingerprints[keyOf(file)]
}

// CompareFile submits one file.
func (c *Comparison) CompareFile(file *models.File) (models.Analysis, error) {
	return c.CompareFilesWith(c.filter, []*models.File{file})
}

// CompareFiles submits files in order using the session's hash filter.
func (c *Comparison) CompareFiles(files []*models.File) (models.Analysis, error) {
	return c.CompareFilesWith(c.filter, files)
}

// CompareFilesWith submits files in order, fingerprinting them with filter.
// The returned Analysis holds the intersections that gained matches during
// this call, in order of first touch. Intersections are shared with the
// session and keep growing on later calls.
//
// On error the call stops and returns nil. Fingerprints indexed before the
// failure stay in the index.
func (c *Comparison) CompareFilesWith(filter fingerprint.HashFilter, files []*models.File) (models.Analysis, error) {
	started := time.Now()
	touched := newTouchSet()

	for _, file := range files {
		if err := c.compareFile(filter, file, touched); err != nil {
			c.logger.Error().Err(err).Str("path", file.Path).Msg("Comparison aborted")
			return nil, err
		}
	}

	c.logger.Info().
		Int("files", len(files)).
		Int("intersections", len(touched.order)).
		Int("hashes", c.index.Hashes()).
		Int("occurrences", c.index.Occurrences()).
		Dur("elapsed", time.Since(started)).
		Msg("Comparison completed")
	return touched.order, nil
}

func (c *Comparison) compareFile(filter fingerprint.HashFilter, file *models.File, touched *touchSet) error {
	tokens, mapping, err := c.tokenizer.TokenizeWithMapping(file)
	if err != nil {
		return fmt.Errorf("failed to tokenize %s: %w", file.Path, err)
	}
	if len(tokens) != len(mapping) {
		return &ContractViolationError{
			File:   file,
			Start:  -1,
			Stop:   -1,
			Reason: fmt.Sprintf("mapping has %d entries for %d tokens", len(mapping), len(tokens)),
		}
	}

	kmer, matches := 0, 0
	it := filter.Fingerprints(tokens)
	for fp, ok := it.Next(); ok; fp, ok = it.Next() {
		location, err := locate(file, mapping, fp)
		if err != nil {
			c.fingerprints[keyOf(file)] = kmer
			return err
		}

		part := &models.FilePart{
			File:     file,
			Kmer:     kmer,
			Location: location,
			Data:     fp.Data,
		}
		kmer++

		for _, other := range c.index.Lookup(fp.Hash) {
			if other.File.Same(file) {
				continue
			}
			inter := c.intersection(file, other.File)
			inter.AddMatch(part, other, fp.Hash)
			touched.add(inter)
			matches++
		}
		c.index.Add(fp.Hash, part)
	}
	c.fingerprints[keyOf(file)] = kmer

	c.logger.Debug().
		Str("path", file.Path).
		Int("tokens", len(tokens)).
		Int("fingerprints", kmer).
		Int("matches", matches).
		Msg("File indexed")
	return nil
}

// locate maps the token range of fp to the source span it covers.
func locate(file *models.File, mapping []models.Selection, fp fingerprint.Fingerprint) (models.Selection, error) {
	violation := func(reason string) error {
		return &ContractViolationError{File: file, Start: fp.Start, Stop: fp.Stop, Reason: reason}
	}
	if fp.Start < 0 || fp.Stop < fp.Start || fp.Stop >= len(mapping) {
		return models.Selection{}, violation(fmt.Sprintf("token range outside mapping of %d entries", len(mapping)))
	}
	first, last := mapping[fp.Start], mapping[fp.Stop]
	if !first.Valid() || !last.Valid() {
		return models.Selection{}, violation("selection ends before it starts")
	}
	if !models.IsInOrder(first, last) {
		return models.Selection{}, violation(fmt.Sprintf("mapping goes backwards: %s then %s", first, last))
	}
	return models.Merge(first, last), nil
}

// intersection returns the intersection of the pair, creating it on first use.
func (c *Comparison) intersection(x, y *models.File) *models.Intersection {
	key := keyOfPair(x, y)
	if inter, ok := c.intersections[key]; ok {
		return inter
	}
	inter := models.NewIntersection(x, y)
	c.intersections[key] = inter
	c.order = append(c.order, inter)
	return inter
}

type touchSet struct {
	seen  map[*models.Intersection]struct{}
	order models.Analysis
}

func newTouchSet() *touchSet {
	return &touchSet{seen: make(map[*models.Intersection]struct{})}
}

func (t *touchSet) add(inter *models.Intersection) {
	if _, ok := t.seen[inter]; ok {
		return
	}
	t.seen[inter] = struct{}{}
	t.order = append(t.order, inter)
}
