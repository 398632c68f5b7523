package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/internship-board/internal/ranking"
)

// Metrics holds the collectors for one server. Each server gets its own registry
// so tests can build servers side by side.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	RankingsTotal     *prometheus.CounterVec
	RankingCandidates prometheus.Histogram
}

// NewMetrics registers the server collectors, plus Go runtime and process collectors, on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RankingsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "internship_rankings_total",
				Help: "Total number of internship ranking requests by outcome",
			},
			[]string{"outcome"},
		),
		RankingCandidates: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "internship_ranking_candidates",
				Help:    "Number of internships scored per ranking request",
				Buckets: []float64{0, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeRequest(method, route string, status int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// observeRanking is a ranking.Observer.
func (m *Metrics) observeRanking(outcome ranking.Outcome, candidates int) {
	m.RankingsTotal.WithLabelValues(string(outcome)).Inc()
	if outcome == ranking.OutcomeRanked {
		m.RankingCandidates.Observe(float64(candidates))
	}
}
