package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "location_extractions_total",
			Help: "Total number of location extractions by outcome and granularity",
		},
		[]string{"outcome", "granularity"},
	)

	ExtractionConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "location_extraction_confidence",
			Help:    "Confidence score of completed extractions",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	BackendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_backend_request_duration_seconds",
			Help:    "Duration of LLM backend completion calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"provider", "status"},
	)

	ContractViolationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "llm_output_contract_violations_total",
			Help: "Model responses that decoded but did not match the requested output schema",
		},
	)
)
