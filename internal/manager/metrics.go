package manager

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	modelLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "profanityd",
			Subsystem: "model",
			Name:      "loads_total",
			Help:      "Total number of model load attempts by result",
		},
		[]string{"model", "result"},
	)

	modelLoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "profanityd",
			Subsystem: "model",
			Name:      "load_duration_seconds",
			Help:      "Duration of model load attempts in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"model"},
	)

	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "profanityd",
			Subsystem: "model",
			Name:      "predictions_total",
			Help:      "Total number of successful predictions by label",
		},
		[]string{"model", "label"},
	)

	predictionErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "profanityd",
			Subsystem: "model",
			Name:      "prediction_errors_total",
			Help:      "Total number of failed predictions by error kind",
		},
		[]string{"model", "kind"},
	)

	scoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "profanityd",
			Subsystem: "model",
			Name:      "score_duration_seconds",
			Help:      "Duration of scorer calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(modelLoadsTotal, modelLoadDuration, predictionsTotal, predictionErrorsTotal, scoreDuration)
}
