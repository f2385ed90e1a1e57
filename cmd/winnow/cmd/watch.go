package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/RishiKendai/winnow/internal/config"
	"github.com/RishiKendai/winnow/internal/corpus"
	"github.com/RishiKendai/winnow/internal/metrics"
	"github.com/RishiKendai/winnow/internal/models"
	"github.com/RishiKendai/winnow/internal/plagiarism"
	"github.com/RishiKendai/winnow/internal/tokenizer"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Keep comparing files as they are added or changed",
	Long: "Indexes every file under dir, then compares each new or modified file against " +
		"everything seen so far and prints the pairs it shares code with.",
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addEngineFlags(watchCmd)
	f := watchCmd.Flags()
	f.Int("min-matches", 1, "Hide pairs with fewer matches")
	f.Float64("min-overlap", 0, "Hide pairs with a lower overlap (0 to 1)")
	f.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :2112)")
}

// watchSession owns one comparison per language. Every method runs on the
// goroutine of runWatch.
type watchSession struct {
	cfg      *config.Config
	tok      tokenizer.Tokenizer
	opts     []plagiarism.Option
	sessions map[string]*plagiarism.Comparison
	ids      map[string]int
	metrics  *metrics.Metrics
	out      io.Writer
	color    bool
}

func newWatchSession(c *config.Config, tok tokenizer.Tokenizer, m *metrics.Metrics, out io.Writer) *watchSession {
	return &watchSession{
		cfg:      c,
		tok:      tok,
		opts:     engineOptions(c),
		sessions: make(map[string]*plagiarism.Comparison),
		ids:      make(map[string]int),
		metrics:  m,
		out:      out,
		color:    isStdoutTTY(),
	}
}

// fileID keeps the ID of a path stable so that new versions of a file are
// the same file to the engine.
func (ws *watchSession) fileID(path string) int {
	if id, ok := ws.ids[path]; ok {
		return id
	}
	id := len(ws.ids) + 1
	ws.ids[path] = id
	return id
}

func (ws *watchSession) comparison(language string) (*plagiarism.Comparison, error) {
	if language == "" {
		language = "unknown"
	}
	if c, ok := ws.sessions[language]; ok {
		return c, nil
	}
	c, err := plagiarism.NewComparison(ws.tok, ws.opts...)
	if err != nil {
		return nil, err
	}
	log.Info().Str("language", language).Str("session", c.SessionID()).Msg("Session started")
	ws.sessions[language] = c
	return c, nil
}

func (ws *watchSession) submit(file *models.File, show bool) error {
	c, err := ws.comparison(file.Language)
	if err != nil {
		return err
	}

	started := time.Now()
	analysis, err := c.CompareFile(file)
	if ws.metrics != nil {
		idx := c.Index()
		ws.metrics.ObserveComparison(1, time.Since(started), metrics.SessionStats{
			Intersections: len(c.Intersections()),
			Hashes:        idx.Hashes(),
			Occurrences:   idx.Occurrences(),
		}, err)
	}
	if err != nil {
		return err
	}

	if show {
		summaries := reportPairs(analysis, c, ws.cfg)
		if len(summaries) > 0 {
			fmt.Fprint(ws.out, formatIntersections(file, summaries, ws.color))
		}
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	root := args[0]

	tok, err := newTokenizer(cfg)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.MetricsAddr != "" {
		m = metrics.New()
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
				log.Error().Err(err).Msg("Metrics server failed")
			}
		}()
	}
	ws := newWatchSession(cfg, tok, m, cmd.OutOrStdout())

	files, err := corpus.Load([]string{root}, cfg.Extensions)
	if err != nil {
		return err
	}
	for _, f := range files {
		f.ID = ws.fileID(f.Path)
		if err := ws.submit(f, false); err != nil {
			log.Error().Err(err).Str("path", f.Path).Msg("Failed to index file")
		}
	}
	log.Info().Int("files", len(files)).Str("root", root).Msg("Initial corpus indexed, watching for changes")

	watcher, err := corpus.NewWatcher(corpus.NewFilter(cfg.Extensions))
	if err != nil {
		return err
	}
	defer watcher.Stop()

	changed := make(chan string, 64)
	if err := watcher.Watch(root, func(path string) {
		select {
		case changed <- path:
		case <-ctx.Done():
		}
	}); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Shutting down gracefully...")
			return nil
		case path := <-changed:
			file, err := corpus.ReadFile(path, ws.fileID(path))
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Skipping unreadable file")
				continue
			}
			if err := ws.submit(file, true); err != nil {
				log.Error().Err(err).Str("path", path).Msg("Comparison failed")
			}
		}
	}
}
