package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// 提取结果标签
const (
	ExtractionDirect   = "direct"
	ExtractionRepaired = "repaired"
	ExtractionFailed   = "failed"
)

// 生成结果标签
const (
	ResultSuccess         = "success"
	ResultValidationError = "validation_error"
	ResultConfigError     = "config_error"
	ResultProviderError   = "provider_error"
)

var (
	once sync.Once

	// GenerationTotal counts upload requests by provider and outcome.
	GenerationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sketchui",
		Subsystem: "generation",
		Name:      "requests_total",
		Help:      "Total number of sketch generation requests, labeled by provider and result.",
	}, []string{"provider", "result"})

	// ProviderDurationSeconds is the latency of the single outbound provider call.
	ProviderDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sketchui",
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "Duration of vision provider calls, labeled by provider and result.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120, 300},
	}, []string{"provider", "result"})

	// ExtractionTotal counts how model output was recovered.
	ExtractionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sketchui",
		Subsystem: "parser",
		Name:      "extraction_total",
		Help:      "Total number of model outputs processed, labeled by extraction outcome.",
	}, []string{"outcome"})

	// StyleFetchTotal counts Figma snapshot fetches by outcome.
	StyleFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sketchui",
		Subsystem: "figma",
		Name:      "snapshot_fetch_total",
		Help:      "Total number of design token snapshot fetches, labeled by result.",
	}, []string{"result"})
)

// Register registers metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			GenerationTotal,
			ProviderDurationSeconds,
			ExtractionTotal,
			StyleFetchTotal,
		)
	})
}
