package report

import (
	"sort"

	"github.com/RishiKendai/winnow/internal/models"
)

// Fragment is a run of matches whose k-mers are consecutive on both sides,
// i.e. one contiguous copied region.
type Fragment struct {
	Left      models.Selection `json:"left"`
	Right     models.Selection `json:"right"`
	LeftKmer  int              `json:"leftKmer"`
	RightKmer int              `json:"rightKmer"`
	Matches   int              `json:"matches"`
}

// Fragments joins the matches of inter into maximal fragments, ordered by
// their position in the left file.
func Fragments(inter *models.Intersection) []Fragment {
	if len(inter.Matches) == 0 {
		return nil
	}

	matches := make([]*models.Match, len(inter.Matches))
	copy(matches, inter.Matches)
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Left.Kmer != matches[j].Left.Kmer {
			return matches[i].Left.Kmer < matches[j].Left.Kmer
		}
		return matches[i].Right.Kmer < matches[j].Right.Kmer
	})

	var out []Fragment
	// (left, right) k-mer expected next on a diagonal -> index into out
	open := make(map[[2]int]int)
	for _, m := range matches {
		at := [2]int{m.Left.Kmer, m.Right.Kmer}
		next := [2]int{m.Left.Kmer + 1, m.Right.Kmer + 1}
		if i, ok := open[at]; ok {
			delete(open, at)
			f := &out[i]
			f.Left = models.Merge(f.Left, m.Left.Location)
			f.Right = models.Merge(f.Right, m.Right.Location)
			f.Matches++
			open[next] = i
			continue
		}
		out = append(out, Fragment{
			Left:      m.Left.Location,
			Right:     m.Right.Location,
			LeftKmer:  m.Left.Kmer,
			RightKmer: m.Right.Kmer,
			Matches:   1,
		})
		open[next] = len(out) - 1
	}
	return out
}
