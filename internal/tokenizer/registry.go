package tokenizer

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/RishiKendai/winnow/internal/models"
)

// Registry dispatches to a tokenizer by file language and falls back to a
// default for languages without a dedicated front-end. Register everything
// before sharing the registry between goroutines.
type Registry struct {
	byLanguage map[string]Tokenizer
	fallback   Tokenizer
}

// NewRegistry creates a registry using fallback for unknown languages.
// A nil fallback means unknown languages are rejected.
func NewRegistry(fallback Tokenizer) *Registry {
	return &Registry{
		byLanguage: make(map[string]Tokenizer),
		fallback:   fallback,
	}
}

// Register binds a tokenizer to one or more languages.
func (r *Registry) Register(t Tokenizer, languages ...string) {
	for _, lang := range languages {
		r.byLanguage[lang] = t
	}
}

// Languages returns the languages with a dedicated tokenizer, sorted.
func (r *Registry) Languages() []string {
	out := make([]string, 0, len(r.byLanguage))
	for lang := range r.byLanguage {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) TokenizeWithMapping(file *models.File) ([]string, []models.Selection, error) {
	if t, ok := r.byLanguage[file.Language]; ok {
		return t.TokenizeWithMapping(file)
	}
	if r.fallback == nil {
		return nil, nil, ErrUnsupportedLanguage
	}
	log.Trace().
		Str("path", file.Path).
		Str("language", file.Language).
		Msg("No dedicated tokenizer, using fallback")
	return r.fallback.TokenizeWithMapping(file)
}
