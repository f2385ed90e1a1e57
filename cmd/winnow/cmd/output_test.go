package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RishiKendai/winnow/internal/fingerprint"
	"github.com/RishiKendai/winnow/internal/models"
	"github.com/RishiKendai/winnow/internal/report"
)

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 pair", plural(1, "pair"))
	assert.Equal(t, "0 pairs", plural(0, "pair"))
	assert.Equal(t, "3 matches", plural(3, "match"))
}

func TestLocationIsOneBased(t *testing.T) {
	f := &models.File{Path: "a.go"}
	assert.Equal(t, "a.go:1:4-3:0", location(f, models.NewSelection(0, 4, 2, 0)))
}

func TestFormatSessions(t *testing.T) {
	a := &models.File{ID: 1, Path: "a.py"}
	b := &models.File{ID: 2, Path: "b.py"}
	sessions := []sessionOutput{
		{
			Name:  "python",
			Files: 2,
			Pairs: []report.PairSummary{{
				Left: a, Right: b, Matches: 4, LeftLines: 3, RightLines: 5, Overlap: 0.9, Label: "near copy",
				Fragments: []report.Fragment{{Left: models.NewSelection(0, 0, 2, 1), Right: models.NewSelection(4, 0, 6, 1), Matches: 4}},
			}},
		},
		{Name: "ruby", Files: 1, Error: "unsupported language"},
	}

	out := formatSessions(sessions, true, false)
	assert.Contains(t, out, "python │ 2 files │ 1 pair\n")
	assert.Contains(t, out, " 90%  near copy")
	assert.Contains(t, out, "a.py ↔ b.py  │ 4 matches, 3/5 lines")
	assert.Contains(t, out, "a.py:1:0-3:1  ~  b.py:5:0-7:1 (4)")
	assert.Contains(t, out, "ruby │ 1 files │ 0 pairs\n  error: unsupported language\n")
	assert.NotContains(t, out, colorReset)

	assert.NotContains(t, formatSessions(sessions, false, false), "~")
}

func TestFormatFingerprints(t *testing.T) {
	f := &models.File{Path: "x.c"}
	mapping := []models.Selection{
		models.NewSelection(0, 0, 0, 3),
		models.NewSelection(0, 4, 0, 5),
		models.NewSelection(1, 0, 1, 2),
	}
	fps := []fingerprint.Fingerprint{{Hash: 0xabc, Start: 1, Stop: 2, Data: "x ;"}}

	out := formatFingerprints(f, fps, mapping)
	assert.Equal(t, "0000000000000abc      1-2      x.c:1:4-2:2  x ;\n", out)
}
