package cmd

import (
	"github.com/rs/zerolog/log"

	"github.com/RishiKendai/winnow/internal/config"
	"github.com/RishiKendai/winnow/internal/models"
	"github.com/RishiKendai/winnow/internal/plagiarism"
	"github.com/RishiKendai/winnow/internal/report"
	"github.com/RishiKendai/winnow/internal/tokenizer"
)

// newTokenizer builds the tokenizer selected by the configuration. Languages
// without a tree-sitter grammar fall back to the lexical tokenizer.
func newTokenizer(c *config.Config) (*tokenizer.Cached, error) {
	registry := tokenizer.NewRegistry(tokenizer.NewLexical())
	if c.Tokenizer == config.TokenizerTreeSitter {
		ts := tokenizer.NewTreeSitter()
		langs := ts.Languages()
		if len(langs) == 0 {
			log.Warn().Msg("Built without cgo, tree-sitter grammars unavailable; using lexical tokenizer")
		}
		registry.Register(ts, langs...)
	}
	return tokenizer.NewCached(registry, c.CacheSize)
}

func engineOptions(c *config.Config) []plagiarism.Option {
	return []plagiarism.Option{
		plagiarism.WithKmerLength(c.KmerLength),
		plagiarism.WithWindowSize(c.WindowSize),
	}
}

// reportPairs summarizes analysis and drops the pairs below the configured
// match and overlap thresholds.
func reportPairs(analysis models.Analysis, counter report.FingerprintCounter, c *config.Config) []report.PairSummary {
	pairs := report.FilterMinMatches(report.Summarize(analysis, counter), c.MinMatches)
	return report.FilterMinOverlap(pairs, c.MinOverlap)
}
