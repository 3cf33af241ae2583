package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "placeresolver_requests_total",
		Help: "Total HTTP requests by route and status",
	}, []string{"route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "placeresolver_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 2000},
	}, []string{"route"})
	EmptyResultsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "placeresolver_empty_results_total",
		Help: "Resolutions that returned no places",
	}, []string{"kind"})
	ResolverStageTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "placeresolver_resolver_stage_total",
		Help: "Address resolver stage outcomes",
	}, []string{"stage", "outcome"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "placeresolver_cache_hits_total",
		Help: "Total response cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "placeresolver_cache_misses_total",
		Help: "Total response cache misses",
	})
	StoreQueryDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "placeresolver_store_query_duration_ms",
		Help:    "Document store query duration in milliseconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 50, 100, 200, 500},
	}, []string{"op"})
	DataQualityWarningsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "placeresolver_data_quality_warnings_total",
		Help: "Non-fatal data quality events (missing ancestors, ambiguous postal matches)",
	}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(EmptyResultsTotal)
	prometheus.MustRegister(ResolverStageTotal)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(StoreQueryDurationMs)
	prometheus.MustRegister(DataQualityWarningsTotal)
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler { return promhttp.Handler() }
