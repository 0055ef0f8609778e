package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeMissing   = "missing_information"
	OutcomePending   = "already_pending"
)

var (
	generationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "requests_total",
			Help:      "AI 生成请求数，按类型与结果划分。",
		},
		[]string{"type", "outcome"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "upstream_duration_seconds",
			Help:      "调用补全代理的耗时（秒）。",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"type"},
	)
)

// ObserveGeneration counts one generation attempt.
func ObserveGeneration(genType, outcome string) {
	generationTotal.WithLabelValues(genType, outcome).Inc()
}

// ObserveUpstream records how long the completion call took.
func ObserveUpstream(genType string, d time.Duration) {
	generationDuration.WithLabelValues(genType).Observe(d.Seconds())
}
