// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	SearchIntentsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_intents_detected_total",
			Help: "Intents extracted from free-text queries, by kind",
		},
		[]string{"intent"},
	)

	KeywordCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_keyword_cache_lookups_total",
			Help: "Keyword cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	ProfileStoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_profile_store_query_seconds",
			Help:    "Latency of influencer profile store queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"store"},
	)

	ProfilesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_profiles_scored_total",
			Help: "Influencer profiles scored",
		},
	)

	MatchScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_match_score",
			Help:    "Distribution of computed match scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
	)
)

// RegisterScoringPool exposes the number of live scoring goroutines.
func RegisterScoringPool(running func() int) error {
	return prometheus.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "search_scoring_pool_running",
			Help: "Live goroutines in the match scoring pool",
		},
		func() float64 { return float64(running()) },
	))
}

// ObserveJob records the outcome of one job. errorCode is empty on success.
func ObserveJob(taskType string, started time.Time, errorCode string) {
	WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(started).Seconds())
	if errorCode == "" {
		WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		return
	}
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}

// ObserveScores records a batch of match scores.
func ObserveScores(scores []int) {
	ProfilesScored.Add(float64(len(scores)))
	for _, s := range scores {
		MatchScores.Observe(float64(s))
	}
}
