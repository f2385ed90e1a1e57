//go:build !cgo

package tokenizer

import (
	"fmt"

	"github.com/RishiKendai/winnow/internal/models"
)

// TreeSitter needs CGo. Without it no grammar is available and every file is
// rejected with ErrUnsupportedLanguage; callers fall back to Lexical through
// a Registry.
type TreeSitter struct{}

func NewTreeSitter() *TreeSitter {
	return &TreeSitter{}
}

func (t *TreeSitter) Languages() []string {
	return nil
}

func (t *TreeSitter) TokenizeWithMapping(file *models.File) ([]string, []models.Selection, error) {
	return nil, nil, fmt.Errorf("%w: %q (built without cgo)", ErrUnsupportedLanguage, file.Language)
}
