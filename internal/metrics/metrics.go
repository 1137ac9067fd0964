package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the Prometheus collectors for a scraping run.
type Metrics struct {
	Registry        *prometheus.Registry
	PagesTotal      *prometheus.CounterVec
	ScrapeDuration  prometheus.Histogram
	PricesFound     prometheus.Counter
	PricesMissing   prometheus.Counter
	SinkChunksTotal *prometheus.CounterVec
	ConfigReloads   *prometheus.CounterVec
}

// New constructs and registers all collectors on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	pages := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_pages_total",
			Help: "Pages processed, labeled by outcome.",
		},
		[]string{"outcome"},
	)
	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scraper_page_duration_seconds",
			Help:    "Wall time per page including waits.",
			Buckets: []float64{1, 3, 5, 10, 15, 30, 60},
		},
	)
	pricesFound := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_prices_found_total",
			Help: "Pages that yielded a positive price.",
		},
	)
	pricesMissing := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_prices_missing_total",
			Help: "Pages where no price could be located.",
		},
	)
	sinkChunks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_sink_chunks_total",
			Help: "Result chunks sent to the update endpoint, labeled by status.",
		},
		[]string{"status"},
	)
	configReloads := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_config_loads_total",
			Help: "Site configuration loads, labeled by source.",
		},
		[]string{"source"},
	)

	registry.MustRegister(pages, duration, pricesFound, pricesMissing, sinkChunks, configReloads)

	return &Metrics{
		Registry:        registry,
		PagesTotal:      pages,
		ScrapeDuration:  duration,
		PricesFound:     pricesFound,
		PricesMissing:   pricesMissing,
		SinkChunksTotal: sinkChunks,
		ConfigReloads:   configReloads,
	}
}

// ObservePage records one processed page. Outcome is one of "ok",
// "no_price", "not_found", "nav_failed".
func (m *Metrics) ObservePage(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.PagesTotal.WithLabelValues(outcome).Inc()
	m.ScrapeDuration.Observe(elapsed.Seconds())
	switch outcome {
	case "ok":
		m.PricesFound.Inc()
	case "no_price":
		m.PricesMissing.Inc()
	}
}

// ObserveChunk records one sink delivery attempt.
func (m *Metrics) ObserveChunk(status string) {
	if m == nil {
		return
	}
	m.SinkChunksTotal.WithLabelValues(status).Inc()
}

// ObserveConfigLoad records where the site configuration came from
// ("remote" or "static").
func (m *Metrics) ObserveConfigLoad(source string) {
	if m == nil {
		return
	}
	m.ConfigReloads.WithLabelValues(source).Inc()
}
