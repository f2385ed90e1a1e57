package models

import "strings"

// File is a source file submitted for comparison. The engine never mutates it.
type File struct {
	ID       int    `json:"id"`
	Path     string `json:"path"`
	Content  string `json:"-"`
	Language string `json:"language,omitempty"`
}

// Same reports whether a and b denote the same file. Two versions of a file
// that share ID and Path are the same file.
func (f *File) Same(o *File) bool {
	if f == o {
		return true
	}
	if f == nil || o == nil {
		return false
	}
	return f.ID == o.ID && f.Path == o.Path
}

// CompareFiles is the total order used to key file pairs: by path, then by ID.
func CompareFiles(a, b *File) int {
	if c := strings.Compare(a.Path, b.Path); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}
