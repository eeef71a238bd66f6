package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the eligibility matcher.
type Metrics struct {
	RecommendationQueries prometheus.Counter
	EmptyProfileQueries   prometheus.Counter
	MatchesReturned       prometheus.Histogram
	CatalogRefreshes      prometheus.Counter
	CatalogSize           prometheus.Gauge
	RankLatency           prometheus.Histogram
}

// New registers and returns eligibility metrics collectors.
func New() *Metrics {
	return &Metrics{
		RecommendationQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eduraksha_eligibility_recommendation_queries_total",
			Help: "Total number of recommendation queries served",
		}),
		EmptyProfileQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eduraksha_eligibility_empty_profile_queries_total",
			Help: "Total number of recommendation queries where no active credential yielded a profile value",
		}),
		MatchesReturned: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "eduraksha_eligibility_matches_returned",
			Help:    "Number of positive-score recommendations returned per query",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		CatalogRefreshes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eduraksha_eligibility_catalog_refreshes_total",
			Help: "Total number of catalog fetches through the fetcher",
		}),
		CatalogSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "eduraksha_eligibility_catalog_scholarships",
			Help: "Number of scholarships in the last fetched catalog",
		}),
		RankLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "eduraksha_eligibility_rank_latency_seconds",
			Help:    "Latency of profile build plus catalog ranking in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementRecommendationQueries() { m.RecommendationQueries.Inc() }
func (m *Metrics) IncrementEmptyProfileQueries()   { m.EmptyProfileQueries.Inc() }
func (m *Metrics) IncrementCatalogRefreshes()      { m.CatalogRefreshes.Inc() }

func (m *Metrics) ObserveMatchesReturned(count float64) {
	m.MatchesReturned.Observe(count)
}

func (m *Metrics) SetCatalogSize(count float64) {
	m.CatalogSize.Set(count)
}

// ObserveRankLatency records the end-to-end latency of one recommendation query.
func (m *Metrics) ObserveRankLatency(durationSeconds float64) {
	m.RankLatency.Observe(durationSeconds)
}
