package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/RishiKendai/winnow/internal/config"
	"github.com/RishiKendai/winnow/internal/configs/env"
	"github.com/RishiKendai/winnow/internal/logger"
)

var (
	cfg *config.Config

	envFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:               "winnow",
	Short:             "Find shared source code by fingerprint winnowing",
	Long:              "Tokenizes source files, winnows their k-gram hashes and reports the regions shared between every pair of files.",
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command. Commands stop when ctx is done.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&envFile, "env-file", "", "Load environment from this file instead of .env")
	pf.StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(fingerprintCmd)
}

// setup loads the environment and configuration, applies flag overrides and
// initializes logging.
func setup(cmd *cobra.Command, args []string) error {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	envErr := env.LoadEnv(files...)
	if envErr != nil && envFile != "" {
		return fmt.Errorf("failed to load env file: %w", envErr)
	}

	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogPretty)
	log.Debug().
		Int("k", cfg.KmerLength).
		Int("w", cfg.WindowSize).
		Str("tokenizer", cfg.Tokenizer).
		Msg("Configuration loaded")
	return nil
}

// applyFlags copies explicitly set flags over values from the environment.
func applyFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	var err error
	if changed("log-level") {
		c.LogLevel = logLevel
	}
	if changed("kmer") {
		if c.KmerLength, err = flags.GetInt("kmer"); err != nil {
			return err
		}
	}
	if changed("window") {
		if c.WindowSize, err = flags.GetInt("window"); err != nil {
			return err
		}
	}
	if changed("tokenizer") {
		if c.Tokenizer, err = flags.GetString("tokenizer"); err != nil {
			return err
		}
	}
	if changed("ext") {
		if c.Extensions, err = flags.GetStringSlice("ext"); err != nil {
			return err
		}
	}
	if changed("min-matches") {
		if c.MinMatches, err = flags.GetInt("min-matches"); err != nil {
			return err
		}
	}
	if changed("min-overlap") {
		if c.MinOverlap, err = flags.GetFloat64("min-overlap"); err != nil {
			return err
		}
	}
	if changed("workers") {
		if c.Workers, err = flags.GetInt("workers"); err != nil {
			return err
		}
	}
	if changed("metrics-addr") {
		if c.MetricsAddr, err = flags.GetString("metrics-addr"); err != nil {
			return err
		}
	}
	return nil
}

// addEngineFlags registers the flags shared by every command that runs the
// comparison engine.
func addEngineFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntP("kmer", "k", 23, "Tokens per k-mer")
	f.IntP("window", "w", 17, "K-mers per winnowing window")
	f.String("tokenizer", config.TokenizerLexical, "Tokenizer: lexical or treesitter")
	f.StringSlice("ext", nil, "File extensions to include (default: all known languages)")
}
