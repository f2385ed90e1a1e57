package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishiKendai/winnow/internal/models"
)

func TestFragments_JoinsConsecutiveKmers(t *testing.T) {
	a := &models.File{ID: 1, Path: "a"}
	b := &models.File{ID: 2, Path: "b"}
	inter := models.NewIntersection(a, b)

	// a[3..5] copied to b[10..12], plus an isolated match a[8] ~ b[1].
	inter.AddMatch(part(a, 4, 4), part(b, 11, 11), 2)
	inter.AddMatch(part(a, 8, 8), part(b, 1, 1), 9)
	inter.AddMatch(part(a, 3, 3), part(b, 10, 10), 1)
	inter.AddMatch(part(a, 5, 5), part(b, 12, 12), 3)

	fragments := Fragments(inter)
	require.Len(t, fragments, 2)

	assert.Equal(t, 3, fragments[0].Matches)
	assert.Equal(t, 3, fragments[0].LeftKmer)
	assert.Equal(t, 10, fragments[0].RightKmer)
	assert.Equal(t, models.NewSelection(3, 0, 5, 10), fragments[0].Left)
	assert.Equal(t, models.NewSelection(10, 0, 12, 10), fragments[0].Right)

	assert.Equal(t, 1, fragments[1].Matches)
	assert.Equal(t, 8, fragments[1].LeftKmer)
}

func TestFragments_BreaksOnGap(t *testing.T) {
	a := &models.File{ID: 1, Path: "a"}
	b := &models.File{ID: 2, Path: "b"}
	inter := models.NewIntersection(a, b)
	inter.AddMatch(part(a, 0, 0), part(b, 0, 0), 1)
	inter.AddMatch(part(a, 1, 1), part(b, 2, 2), 2)

	assert.Len(t, Fragments(inter), 2)
	assert.Nil(t, Fragments(models.NewIntersection(a, b)))
}

func TestFragments_RepeatedHashesKeepDiagonals(t *testing.T) {
	a := &models.File{ID: 1, Path: "a"}
	b := &models.File{ID: 2, Path: "b"}
	inter := models.NewIntersection(a, b)

	// One hash at k-mers 0 and 1 of both files matches every way round.
	inter.AddMatch(part(a, 0, 0), part(b, 0, 0), 7)
	inter.AddMatch(part(a, 0, 0), part(b, 1, 1), 7)
	inter.AddMatch(part(a, 1, 1), part(b, 0, 0), 7)
	inter.AddMatch(part(a, 1, 1), part(b, 1, 1), 7)

	fragments := Fragments(inter)
	require.Len(t, fragments, 3)

	assert.Equal(t, 2, fragments[0].Matches)
	assert.Equal(t, 0, fragments[0].LeftKmer)
	assert.Equal(t, 0, fragments[0].RightKmer)
	assert.Equal(t, models.NewSelection(0, 0, 1, 10), fragments[0].Left)
	assert.Equal(t, models.NewSelection(0, 0, 1, 10), fragments[0].Right)

	assert.Equal(t, 1, fragments[1].Matches)
	assert.Equal(t, 1, fragments[1].RightKmer)
	assert.Equal(t, 1, fragments[2].Matches)
	assert.Equal(t, 1, fragments[2].LeftKmer)
}
