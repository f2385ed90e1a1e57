package models

import "fmt"

// Position is a zero-based line/column location in a source file.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Compare returns -1, 0 or 1 when p is before, equal to or after o in
// document order.
func (p Position) Compare(o Position) int {
	switch {
	case p.Line < o.Line:
		return -1
	case p.Line > o.Line:
		return 1
	case p.Column < o.Column:
		return -1
	case p.Column > o.Column:
		return 1
	default:
		return 0
	}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Selection is a half-open source span [Start, End).
type Selection struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewSelection builds a selection from raw coordinates.
func NewSelection(startLine, startCol, endLine, endCol int) Selection {
	return Selection{
		Start: Position{Line: startLine, Column: startCol},
		End:   Position{Line: endLine, Column: endCol},
	}
}

// Valid reports whether Start does not come after End.
func (s Selection) Valid() bool {
	return s.Start.Compare(s.End) <= 0
}

func (s Selection) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Merge returns the smallest selection covering both a and b.
func Merge(a, b Selection) Selection {
	out := a
	if b.Start.Compare(out.Start) < 0 {
		out.Start = b.Start
	}
	if b.End.Compare(out.End) > 0 {
		out.End = b.End
	}
	return out
}

// IsInOrder reports whether a precedes or equals b in document order.
// Tokenizer mappings must satisfy it for every pair of increasing indices.
func IsInOrder(a, b Selection) bool {
	return a.Start.Compare(b.Start) <= 0 && a.End.Compare(b.End) <= 0
}
