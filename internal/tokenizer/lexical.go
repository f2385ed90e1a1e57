package tokenizer

import (
	"unicode"
	"unicode/utf8"

	"github.com/RishiKendai/winnow/internal/models"
)

// Lexical splits source text into word tokens (runs of letters, digits and
// underscores) and single punctuation characters. Whitespace separates
// tokens and is dropped. Columns are byte offsets within the line.
//
// It understands no language, so it works for every file and is the fallback
// of the Registry.
type Lexical struct{}

func NewLexical() *Lexical {
	return &Lexical{}
}

func (l *Lexical) TokenizeWithMapping(file *models.File) ([]string, []models.Selection, error) {
	src := file.Content
	var (
		tokens  []string
		mapping []models.Selection
	)

	line, lineStart := 0, 0
	emit := func(start, end int) {
		tokens = append(tokens, src[start:end])
		mapping = append(mapping, models.NewSelection(line, start-lineStart, line, end-lineStart))
	}

	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case r == '\n':
			i += size
			line++
			lineStart = i
		case unicode.IsSpace(r):
			i += size
		case isWordRune(r):
			start := i
			for i < len(src) {
				r, size = utf8.DecodeRuneInString(src[i:])
				if !isWordRune(r) {
					break
				}
				i += size
			}
			emit(start, i)
		default:
			emit(i, i+size)
			i += size
		}
	}
	return tokens, mapping, nil
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
