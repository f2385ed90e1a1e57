package models

import "fmt"

// FilePart is one fingerprint occurrence inside a file.
type FilePart struct {
	File     *File     `json:"-"`
	Kmer     int       `json:"kmer"`
	Location Selection `json:"location"`
	Data     string    `json:"data"`
}

// Match is a fingerprint shared by two different files. Left belongs to the
// owning Intersection's Left file.
type Match struct {
	Left  *FilePart `json:"left"`
	Right *FilePart `json:"right"`
	Hash  uint64    `json:"hash"`
}

// Intersection collects every Match between one unordered pair of files.
// Left and Right are ordered by CompareFiles.
type Intersection struct {
	Left    *File    `json:"left"`
	Right   *File    `json:"right"`
	Matches []*Match `json:"matches"`
}

// Analysis is the list of intersections produced or extended by one
// comparison call.
type Analysis []*Intersection

// NewIntersection creates an empty intersection for a and b in canonical order.
func NewIntersection(a, b *File) *Intersection {
	if CompareFiles(a, b) > 0 {
		a, b = b, a
	}
	return &Intersection{Left: a, Right: b}
}

// AddMatch records a shared fingerprint between parts x and y, orienting the
// match so that its Left part lies in the intersection's Left file.
func (i *Intersection) AddMatch(x, y *FilePart, hash uint64) *Match {
	if !i.Left.Same(x.File) {
		x, y = y, x
	}
	m := &Match{Left: x, Right: y, Hash: hash}
	i.Matches = append(i.Matches, m)
	return m
}

// Key returns a stable identifier for the file pair.
func (i *Intersection) Key() string {
	return pairKey(i.Left, i.Right)
}

// Contains reports whether f is one of the two files.
func (i *Intersection) Contains(f *File) bool {
	return i.Left.Same(f) || i.Right.Same(f)
}

// Other returns the file paired with f, or nil when f is not part of i.
func (i *Intersection) Other(f *File) *File {
	switch {
	case i.Left.Same(f):
		return i.Right
	case i.Right.Same(f):
		return i.Left
	default:
		return nil
	}
}

func pairKey(a, b *File) string {
	return fmt.Sprintf("%d:%s|%d:%s", a.ID, a.Path, b.ID, b.Path)
}
