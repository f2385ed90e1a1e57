package plagiarism

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RishiKendai/winnow/internal/models"
	"github.com/RishiKendai/winnow/internal/tokenizer"
)

// Session is a named group of files compared against each other, typically
// all files of one language.
type Session struct {
	Name  string
	Files []*models.File
}

// SessionResult is the outcome of one session. Comparison is nil when the
// session could not be created.
type SessionResult struct {
	Name       string
	Comparison *Comparison
	Analysis   models.Analysis
	Err        error
}

// SessionJob runs one Session on its own Comparison.
type SessionJob struct {
	Session    Session
	Tokenizer  tokenizer.Tokenizer
	Options    []Option
	ResultChan chan<- SessionResult
}

func (j *SessionJob) Execute(ctx context.Context) error {
	result := SessionResult{Name: j.Session.Name}

	if err := ctx.Err(); err != nil {
		result.Err = err
	} else {
		result.Comparison, result.Analysis, result.Err = runSession(j.Session, j.Tokenizer, j.Options)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case j.ResultChan <- result:
		return result.Err
	}
}

func runSession(s Session, tok tokenizer.Tokenizer, opts []Option) (*Comparison, models.Analysis, error) {
	comparison, err := NewComparison(tok, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create comparison for %s: %w", s.Name, err)
	}
	analysis, err := comparison.CompareFiles(s.Files)
	if err != nil {
		return comparison, nil, fmt.Errorf("failed to compare session %s: %w", s.Name, err)
	}
	return comparison, analysis, nil
}

// RunSessions runs every session on the pool and returns the results sorted
// by session name. Sessions that fail carry their error in the result; the
// returned error is only set when ctx ends before all results arrive.
func RunSessions(
	ctx context.Context,
	pool *WorkerPool,
	tok tokenizer.Tokenizer,
	sessions []Session,
	opts ...Option,
) ([]SessionResult, error) {
	started := time.Now()
	resultChan := make(chan SessionResult, len(sessions))

	expected := 0
	results := make([]SessionResult, 0, len(sessions))
	for _, s := range sessions {
		job := &SessionJob{
			Session:    s,
			Tokenizer:  tok,
			Options:    opts,
			ResultChan: resultChan,
		}
		if err := pool.Submit(job); err != nil {
			log.Error().Err(err).Str("session", s.Name).Msg("Failed to submit job")
			results = append(results, SessionResult{Name: s.Name, Err: err})
			continue
		}
		expected++
	}

	for received := 0; received < expected; received++ {
		select {
		case <-ctx.Done():
			sortResults(results)
			return results, fmt.Errorf("sessions interrupted: %w", ctx.Err())
		case result := <-resultChan:
			results = append(results, result)
		}
	}

	sortResults(results)
	log.Info().
		Int("sessions", len(sessions)).
		Dur("elapsed", time.Since(started)).
		Msg("All sessions completed")
	return results, nil
}

func sortResults(results []SessionResult) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
}

// SessionsByLanguage splits files into one session per language, sessions
// sorted by name and files kept in input order. Files without a language go
// to the "unknown" session.
func SessionsByLanguage(files []*models.File) []Session {
	buckets := make(map[string][]*models.File)
	for _, f := range files {
		lang := f.Language
		if lang == "" {
			lang = "unknown"
		}
		buckets[lang] = append(buckets[lang], f)
	}

	sessions := make([]Session, 0, len(buckets))
	for lang, bucket := range buckets {
		sessions = append(sessions, Session{Name: lang, Files: bucket})
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Name < sessions[j].Name
	})
	return sessions
}
