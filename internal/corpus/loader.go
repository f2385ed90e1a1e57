// Package corpus loads source files from disk into models.File values and
// watches directories for new versions of them.
package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/RishiKendai/winnow/internal/models"
)

// Directories never descended into.
var ignoreDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".venv":        true,
	"__pycache__":  true,
	"vendor":       true,
	".idea":        true,
	".vscode":      true,
	"dist":         true,
	"build":        true,
	"target":       true,
}

func shouldIgnoreDir(name string) bool {
	return ignoreDirs[name] || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// Filter decides which files under a directory are part of the corpus.
type Filter struct {
	exts map[string]bool
}

// NewFilter accepts files with one of exts, or every file with a known
// language when exts is empty.
func NewFilter(exts []string) *Filter {
	f := &Filter{exts: make(map[string]bool)}
	for _, ext := range NormalizeExtensions(exts) {
		f.exts[ext] = true
	}
	return f
}

// Accept reports whether path belongs to the corpus.
func (f *Filter) Accept(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := filepath.Ext(path)
	if len(f.exts) > 0 {
		return f.exts[ext]
	}
	return extensionMap[ext] != ""
}

// Load reads every file named in paths, descending into directories.
// Files named explicitly are always loaded; files found while walking are
// kept when the filter accepts them. The result is sorted by path and IDs are
// assigned in that order starting at 1.
func Load(paths []string, exts []string) ([]*models.File, error) {
	filter := NewFilter(exts)
	seen := make(map[string]bool)
	var found []string

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			if clean := filepath.Clean(root); !seen[clean] {
				seen[clean] = true
				found = append(found, clean)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Skipping unreadable path")
				return nil
			}
			if d.IsDir() {
				if path != root && shouldIgnoreDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !filter.Accept(path) || seen[path] {
				return nil
			}
			seen[path] = true
			found = append(found, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Strings(found)
	files := make([]*models.File, 0, len(found))
	for i, path := range found {
		file, err := ReadFile(path, i+1)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	log.Debug().
		Int("files", len(files)).
		Strs("roots", paths).
		Msg("Corpus loaded")
	return files, nil
}

// ReadFile reads one file and tags it with id and its detected language.
func ReadFile(path string, id int) (*models.File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &models.File{
		ID:       id,
		Path:     path,
		Content:  string(content),
		Language: DetectLanguage(path),
	}, nil
}
