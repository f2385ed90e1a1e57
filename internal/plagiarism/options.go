package plagiarism

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RishiKendai/winnow/internal/fingerprint"
)

const (
	// DefaultKmerLength is the number of tokens per k-mer.
	DefaultKmerLength = 23
	// DefaultWindowSize is the number of k-mers per winnowing window.
	DefaultWindowSize = 17
)

type options struct {
	kmerLength int
	windowSize int
	filter     fingerprint.HashFilter
	logger     *zerolog.Logger
}

// Option configures a Comparison.
type Option func(*options)

// WithKmerLength sets k.
func WithKmerLength(k int) Option {
	return func(o *options) { o.kmerLength = k }
}

// WithWindowSize sets w.
func WithWindowSize(w int) Option {
	return func(o *options) { o.windowSize = w }
}

// WithHashFilter replaces the default winnowing filter.
func WithHashFilter(f fingerprint.HashFilter) Option {
	return func(o *options) { o.filter = f }
}

// WithLogger sets the logger used for per-call summaries. The global
// zerolog logger is used otherwise.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = &l }
}

func defaultOptions() options {
	return options{
		kmerLength: DefaultKmerLength,
		windowSize: DefaultWindowSize,
	}
}

func (o *options) resolve() (fingerprint.HashFilter, zerolog.Logger) {
	filter := o.filter
	if filter == nil {
		filter = fingerprint.NewWinnowFilter(o.kmerLength, o.windowSize)
	}
	logger := log.Logger
	if o.logger != nil {
		logger = *o.logger
	}
	return filter, logger
}
