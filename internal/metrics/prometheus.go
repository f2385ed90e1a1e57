package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Metrics holds the collectors of one process. Each instance has its own
// registry so tests do not collide on the default one.
type Metrics struct {
	registry *prometheus.Registry

	// ComparisonCount counts comparison calls by status
	ComparisonCount *prometheus.CounterVec

	// ComparisonDuration measures comparison call duration
	ComparisonDuration prometheus.Histogram

	// FilesIndexed counts files submitted to a session
	FilesIndexed prometheus.Counter

	Intersections    prometheus.Gauge
	IndexHashes      prometheus.Gauge
	IndexOccurrences prometheus.Gauge
}

// SessionStats is the state of a session after a comparison call.
type SessionStats struct {
	Intersections int
	Hashes        int
	Occurrences   int
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ComparisonCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "winnow_comparisons_total",
				Help: "Total number of comparison calls",
			},
			[]string{"status"},
		),
		ComparisonDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "winnow_comparison_duration_seconds",
				Help:    "Comparison call duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
		FilesIndexed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "winnow_files_indexed_total",
				Help: "Total number of files submitted for comparison",
			},
		),
		Intersections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "winnow_intersections",
			Help: "Number of file pairs sharing at least one fingerprint",
		}),
		IndexHashes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "winnow_index_hashes",
			Help: "Number of distinct fingerprint hashes in the index",
		}),
		IndexOccurrences: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "winnow_index_occurrences",
			Help: "Number of fingerprint occurrences in the index",
		}),
	}
	m.registry.MustRegister(
		m.ComparisonCount,
		m.ComparisonDuration,
		m.FilesIndexed,
		m.Intersections,
		m.IndexHashes,
		m.IndexOccurrences,
	)
	return m
}

// ObserveComparison records one comparison call.
func (m *Metrics) ObserveComparison(files int, elapsed time.Duration, stats SessionStats, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ComparisonCount.WithLabelValues(status).Inc()
	m.ComparisonDuration.Observe(elapsed.Seconds())
	m.FilesIndexed.Add(float64(files))
	m.Intersections.Set(float64(stats.Intersections))
	m.IndexHashes.Set(float64(stats.Hashes))
	m.IndexOccurrences.Set(float64(stats.Occurrences))
}

// Handler returns the Prometheus handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Metrics server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down metrics server")
		return err
	}
	return nil
}
