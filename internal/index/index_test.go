package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishiKendai/winnow/internal/models"
)

func TestIndex_AppendsInInsertionOrder(t *testing.T) {
	idx := New()
	a := &models.File{ID: 1, Path: "a.go"}
	b := &models.File{ID: 2, Path: "b.go"}

	p1 := &models.FilePart{File: a, Kmer: 0}
	p2 := &models.FilePart{File: b, Kmer: 0}
	p3 := &models.FilePart{File: a, Kmer: 4}

	idx.Add(10, p1)
	idx.Add(10, p2)
	idx.Add(20, p3)
	idx.Add(10, p3)

	require.Len(t, idx.Lookup(10), 3)
	assert.Same(t, p1, idx.Lookup(10)[0])
	assert.Same(t, p2, idx.Lookup(10)[1])
	assert.Same(t, p3, idx.Lookup(10)[2])
	assert.Equal(t, 2, idx.Hashes())
	assert.Equal(t, 4, idx.Occurrences())
	assert.Equal(t, 3, idx.LargestBucket())
}

func TestIndex_MissingHash(t *testing.T) {
	idx := New()
	assert.Empty(t, idx.Lookup(99))
	assert.Equal(t, 0, idx.Hashes())
}

func TestIndex_LookupSnapshotSurvivesAppend(t *testing.T) {
	idx := New()
	f := &models.File{ID: 1, Path: "a.go"}
	idx.Add(1, &models.FilePart{File: f})

	snapshot := idx.Lookup(1)
	idx.Add(1, &models.FilePart{File: f, Kmer: 1})

	assert.Len(t, snapshot, 1)
	assert.Len(t, idx.Lookup(1), 2)
}
