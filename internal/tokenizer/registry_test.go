package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishiKendai/winnow/internal/models"
)

func constant(token string) Func {
	return func(file *models.File) ([]string, []models.Selection, error) {
		return []string{token}, []models.Selection{models.NewSelection(0, 0, 0, 1)}, nil
	}
}

func TestRegistryDispatchesByLanguage(t *testing.T) {
	r := NewRegistry(constant("fallback"))
	r.Register(constant("py"), "python")
	r.Register(constant("c"), "c", "cpp")

	cases := map[string]string{
		"python": "py",
		"c":      "c",
		"cpp":    "c",
		"ruby":   "fallback",
		"":       "fallback",
	}
	for lang, want := range cases {
		tokens, _, err := r.TokenizeWithMapping(&models.File{Language: lang})
		require.NoError(t, err, lang)
		assert.Equal(t, []string{want}, tokens, lang)
	}
	assert.Equal(t, []string{"c", "cpp", "python"}, r.Languages())
}

func TestRegistryWithoutFallback(t *testing.T) {
	r := NewRegistry(nil)
	_, _, err := r.TokenizeWithMapping(&models.File{Language: "ruby"})
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}
