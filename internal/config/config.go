package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/RishiKendai/winnow/internal/configs/env"
)

const (
	TokenizerLexical    = "lexical"
	TokenizerTreeSitter = "treesitter"
)

// Config holds all configuration for the application
type Config struct {
	// Fingerprinting
	KmerLength int
	WindowSize int

	// Tokenizer
	Tokenizer string
	CacheSize int

	// Concurrency
	Workers int

	// Reporting
	MinMatches int
	MinOverlap float64
	Extensions []string

	// Metrics
	MetricsAddr string

	// Logging
	LogLevel  string
	LogPretty bool
}

func Load() (*Config, error) {
	cfg := &Config{}

	// Fingerprinting
	cfg.KmerLength = env.GetEnvInt("WINNOW_KMER_LENGTH", 23)
	cfg.WindowSize = env.GetEnvInt("WINNOW_WINDOW_SIZE", 17)

	// Tokenizer
	cfg.Tokenizer = env.GetEnv("WINNOW_TOKENIZER", TokenizerLexical)
	cfg.CacheSize = env.GetEnvInt("WINNOW_CACHE_SIZE", 256)

	// Concurrency (0 sizes the pool from the CPU count)
	cfg.Workers = env.GetEnvInt("WINNOW_WORKERS", 0)

	// Reporting
	cfg.MinMatches = env.GetEnvInt("WINNOW_MIN_MATCHES", 1)
	cfg.MinOverlap = env.GetEnvFloat("WINNOW_MIN_OVERLAP", 0)
	cfg.Extensions = env.GetEnvList("WINNOW_EXTENSIONS", nil)

	// Metrics
	cfg.MetricsAddr = env.GetEnv("WINNOW_METRICS_ADDR", "")

	// Logging
	cfg.LogLevel = env.GetEnv("LOG_LEVEL", "info")
	cfg.LogPretty = env.GetEnvBool("LOG_PRETTY", true)

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.KmerLength <= 0 {
		return fmt.Errorf("WINNOW_KMER_LENGTH must be greater than 0")
	}
	if c.WindowSize <= 0 {
		return fmt.Errorf("WINNOW_WINDOW_SIZE must be greater than 0")
	}
	if c.Tokenizer != TokenizerLexical && c.Tokenizer != TokenizerTreeSitter {
		return fmt.Errorf("WINNOW_TOKENIZER must be %q or %q, got %q", TokenizerLexical, TokenizerTreeSitter, c.Tokenizer)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("WINNOW_CACHE_SIZE must be greater than 0")
	}
	if c.Workers < 0 {
		return fmt.Errorf("WINNOW_WORKERS must not be negative")
	}
	if c.MinMatches < 1 {
		return fmt.Errorf("WINNOW_MIN_MATCHES must be at least 1")
	}
	if c.MinOverlap < 0 || c.MinOverlap > 1 {
		return fmt.Errorf("WINNOW_MIN_OVERLAP must be between 0 and 1, got %g", c.MinOverlap)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	return nil
}
