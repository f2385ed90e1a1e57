package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishiKendai/winnow/internal/models"
)

func TestLexicalSplitsWordsAndPunctuation(t *testing.T) {
	file := &models.File{Path: "a.go", Content: "x := foo(1)\n"}

	tokens, mapping, err := NewLexical().TokenizeWithMapping(file)
	require.NoError(t, err)

	assert.Equal(t, []string{"x", ":", "=", "foo", "(", "1", ")"}, tokens)
	require.Len(t, mapping, len(tokens))
	assert.Equal(t, models.NewSelection(0, 0, 0, 1), mapping[0])
	assert.Equal(t, models.NewSelection(0, 5, 0, 8), mapping[3])
	assert.Equal(t, models.NewSelection(0, 10, 0, 11), mapping[6])
}

func TestLexicalTracksLines(t *testing.T) {
	file := &models.File{Content: "a\n  bb\r\n\ncc"}

	tokens, mapping, err := NewLexical().TokenizeWithMapping(file)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "bb", "cc"}, tokens)
	assert.Equal(t, models.NewSelection(0, 0, 0, 1), mapping[0])
	assert.Equal(t, models.NewSelection(1, 2, 1, 4), mapping[1])
	assert.Equal(t, models.NewSelection(3, 0, 3, 2), mapping[2])
}

func TestLexicalMappingIsOrdered(t *testing.T) {
	file := &models.File{Content: "func main() {\n\tfmt.Println(\"héllo\", 42)\n}\n"}

	tokens, mapping, err := NewLexical().TokenizeWithMapping(file)
	require.NoError(t, err)
	require.Len(t, mapping, len(tokens))

	for i, sel := range mapping {
		assert.True(t, sel.Valid(), "selection %d invalid", i)
		if i > 0 {
			assert.True(t, models.IsInOrder(mapping[i-1], sel), "selection %d out of order", i)
		}
	}
	assert.Contains(t, tokens, "héllo")
}

func TestLexicalEmptyInput(t *testing.T) {
	tokens, mapping, err := NewLexical().TokenizeWithMapping(&models.File{Content: " \n\t "})
	require.NoError(t, err)
	assert.Empty(t, tokens)
	assert.Empty(t, mapping)
}
