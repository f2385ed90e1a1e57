package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/RishiKendai/winnow/internal/corpus"
	"github.com/RishiKendai/winnow/internal/plagiarism"
	"github.com/RishiKendai/winnow/internal/report"
)

var (
	compareJSON      bool
	compareFragments bool
	compareMixed     bool
)

var compareCmd = &cobra.Command{
	Use:   "compare [path ...]",
	Short: "Compare every pair of files under the given paths",
	Long: "Loads files from the given files and directories (default: current directory), " +
		"compares files of the same language against each other and prints the pairs that share code.",
	Args: cobra.ArbitraryArgs,
	RunE: runCompare,
}

func init() {
	addEngineFlags(compareCmd)
	f := compareCmd.Flags()
	f.Int("min-matches", 1, "Hide pairs with fewer matches")
	f.Float64("min-overlap", 0, "Hide pairs with a lower overlap (0 to 1)")
	f.Int("workers", 0, "Sessions compared in parallel (0: based on CPU count)")
	f.BoolVar(&compareJSON, "json", false, "Output as JSON")
	f.BoolVar(&compareFragments, "fragments", false, "List the shared fragments of every pair")
	f.BoolVar(&compareMixed, "mixed", false, "Compare all files in one session regardless of language")
}

// sessionOutput is the JSON shape of one session.
type sessionOutput struct {
	Name  string               `json:"name"`
	Files int                  `json:"files"`
	Pairs []report.PairSummary `json:"pairs"`
	Error string               `json:"error,omitempty"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := corpus.Load(paths, cfg.Extensions)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found under %v", paths)
	}

	tok, err := newTokenizer(cfg)
	if err != nil {
		return err
	}

	sessions := plagiarism.SessionsByLanguage(files)
	if compareMixed {
		sessions = []plagiarism.Session{{Name: "all", Files: files}}
	}

	ctx := cmd.Context()
	pool := plagiarism.NewWorkerPool(ctx, cfg.Workers)
	defer pool.Close()

	results, err := plagiarism.RunSessions(ctx, pool, tok, sessions, engineOptions(cfg)...)
	if err != nil {
		return err
	}

	hits, misses := tok.Stats()
	log.Debug().Int64("hits", hits).Int64("misses", misses).Msg("Tokenizer cache")

	sizes := make(map[string]int, len(sessions))
	for _, s := range sessions {
		sizes[s.Name] = len(s.Files)
	}

	out := make([]sessionOutput, 0, len(results))
	failed := 0
	for _, r := range results {
		so := sessionOutput{Name: r.Name, Files: sizes[r.Name]}
		if r.Err != nil {
			failed++
			so.Error = r.Err.Error()
			log.Error().Err(r.Err).Str("session", r.Name).Msg("Session failed")
		} else {
			so.Pairs = reportPairs(r.Analysis, r.Comparison, cfg)
		}
		if !compareFragments && !compareJSON {
			for i := range so.Pairs {
				so.Pairs[i].Fragments = nil
			}
		}
		out = append(out, so)
	}

	if compareJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), formatSessions(out, compareFragments, isStdoutTTY()))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sessions failed", failed, len(results))
	}
	return nil
}
