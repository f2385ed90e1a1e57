// Package report derives per-pair statistics from an Analysis. Nothing here
// feeds back into the engine; it only reads the intersection graph.
package report

import (
	"sort"

	"github.com/RishiKendai/winnow/internal/models"
)

// FingerprintCounter reports how many fingerprints a file produced.
// *plagiarism.Comparison satisfies it.
type FingerprintCounter interface {
	FingerprintCount(file *models.File) int
}

// PairSummary condenses one Intersection.
type PairSummary struct {
	Key          string       `json:"key"`
	Left         *models.File `json:"left"`
	Right        *models.File `json:"right"`
	Matches      int          `json:"matches"`
	SharedHashes int          `json:"sharedHashes"`
	LeftLines    int          `json:"leftLines"`
	RightLines   int          `json:"rightLines"`
	Overlap      float64      `json:"overlap"`
	Label        string       `json:"label"`
	Fragments    []Fragment   `json:"fragments,omitempty"`
}

// Summarize builds one PairSummary per intersection, sorted by overlap
// descending and then by key.
func Summarize(analysis models.Analysis, counter FingerprintCounter) []PairSummary {
	out := make([]PairSummary, 0, len(analysis))
	for _, inter := range analysis {
		out = append(out, summarize(inter, counter))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Overlap != out[j].Overlap {
			return out[i].Overlap > out[j].Overlap
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func summarize(inter *models.Intersection, counter FingerprintCounter) PairSummary {
	shared := make(map[uint64]struct{})
	leftLines := make(map[int]struct{})
	rightLines := make(map[int]struct{})
	for _, m := range inter.Matches {
		shared[m.Hash] = struct{}{}
		addLines(leftLines, m.Left.Location)
		addLines(rightLines, m.Right.Location)
	}

	overlap := 0.0
	if counter != nil {
		overlap = Overlap(len(shared), counter.FingerprintCount(inter.Left), counter.FingerprintCount(inter.Right))
	}

	return PairSummary{
		Key:          inter.Key(),
		Left:         inter.Left,
		Right:        inter.Right,
		Matches:      len(inter.Matches),
		SharedHashes: len(shared),
		LeftLines:    len(leftLines),
		RightLines:   len(rightLines),
		Overlap:      overlap,
		Label:        Label(overlap),
		Fragments:    Fragments(inter),
	}
}

func addLines(lines map[int]struct{}, sel models.Selection) {
	for l := sel.Start.Line; l <= sel.End.Line; l++ {
		lines[l] = struct{}{}
	}
}

// Overlap = shared / min(totalA, totalB), clamped to [0, 1].
func Overlap(shared, totalA, totalB int) float64 {
	minTotal := min(totalA, totalB)
	if minTotal <= 0 {
		return 0.0
	}
	ratio := float64(shared) / float64(minTotal)
	if ratio > 1.0 {
		return 1.0
	}
	return ratio
}

// Label maps an overlap ratio to a coarse label.
func Label(overlap float64) string {
	if overlap < 0.3 {
		return "clean"
	} else if overlap < 0.6 {
		return "suspicious"
	} else if overlap < 0.85 {
		return "highly suspicious"
	}
	return "near copy"
}

// FilterMinMatches drops summaries with fewer than n matches.
func FilterMinMatches(summaries []PairSummary, n int) []PairSummary {
	if n <= 1 {
		return summaries
	}
	out := summaries[:0:0]
	for _, s := range summaries {
		if s.Matches >= n {
			out = append(out, s)
		}
	}
	return out
}

// FilterMinOverlap drops summaries whose overlap is below threshold.
func FilterMinOverlap(summaries []PairSummary, threshold float64) []PairSummary {
	if threshold <= 0 {
		return summaries
	}
	out := summaries[:0:0]
	for _, s := range summaries {
		if s.Overlap >= threshold {
			out = append(out, s)
		}
	}
	return out
}
