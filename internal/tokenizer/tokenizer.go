// Package tokenizer defines the contract between source-language front-ends
// and the comparison engine, together with the front-ends shipped here.
//
// A tokenizer turns a file into a token sequence plus a mapping from every
// token index to the span of source it came from. The mapping has one entry
// per token and never moves backwards in document order.
package tokenizer

import (
	"errors"

	"github.com/RishiKendai/winnow/internal/models"
)

// ErrUnsupportedLanguage is returned when a tokenizer has no grammar for a file.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Tokenizer produces (tokens, mapping) for a file.
type Tokenizer interface {
	TokenizeWithMapping(file *models.File) ([]string, []models.Selection, error)
}

// Func adapts a plain function to the Tokenizer interface.
type Func func(file *models.File) ([]string, []models.Selection, error)

func (f Func) TokenizeWithMapping(file *models.File) ([]string, []models.Selection, error) {
	return f(file)
}
