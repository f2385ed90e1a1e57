package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RishiKendai/winnow/internal/corpus"
	"github.com/RishiKendai/winnow/internal/fingerprint"
)

var (
	fingerprintJSON  bool
	fingerprintKGram bool
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <file>",
	Short: "Print the fingerprints selected for one file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFingerprint,
}

func init() {
	addEngineFlags(fingerprintCmd)
	f := fingerprintCmd.Flags()
	f.BoolVar(&fingerprintJSON, "json", false, "Output as JSON")
	f.BoolVar(&fingerprintKGram, "all", false, "Print every k-gram instead of the winnowed selection")
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	file, err := corpus.ReadFile(args[0], 1)
	if err != nil {
		return err
	}

	tok, err := newTokenizer(cfg)
	if err != nil {
		return err
	}
	tokens, mapping, err := tok.TokenizeWithMapping(file)
	if err != nil {
		return fmt.Errorf("failed to tokenize %s: %w", file.Path, err)
	}
	if len(tokens) != len(mapping) {
		return fmt.Errorf("tokenizer returned %d positions for %d tokens", len(mapping), len(tokens))
	}

	winnow := fingerprint.NewWinnowFilter(cfg.KmerLength, cfg.WindowSize)
	var filter fingerprint.HashFilter = winnow
	if fingerprintKGram {
		filter = fingerprint.NewKGramFilter(cfg.KmerLength)
	}
	fps := fingerprint.Collect(filter.Fingerprints(tokens))

	if fingerprintJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(fps)
	}

	fmt.Fprint(cmd.OutOrStdout(), formatFingerprints(file, fps, mapping))
	fmt.Fprintln(cmd.ErrOrStderr(), fingerprintSummary(winnow, len(tokens), len(fps), fingerprintKGram))
	return nil
}

// fingerprintSummary reads e.g. "k=23 w=17: 412 tokens, 39 fingerprints".
func fingerprintSummary(f *fingerprint.WinnowFilter, tokens, fingerprints int, all bool) string {
	params := fmt.Sprintf("k=%d w=%d", f.KmerLength(), f.WindowSize())
	if all {
		params = fmt.Sprintf("k=%d, every k-gram", f.KmerLength())
	}
	return fmt.Sprintf("%s: %s, %s", params, plural(tokens, "token"), plural(fingerprints, "fingerprint"))
}
