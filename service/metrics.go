package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	wordLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "poet_word_lookups_total",
		Help: "Word lookups by outcome (found, remote, missing).",
	}, []string{"outcome"})

	fallbackLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "poet_fallback_lookups_total",
		Help: "Remote pronunciation lookups by outcome (found, missing, error).",
	}, []string{"outcome"})

	classificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "poet_classifications_total",
		Help: "Stanzas checked against a verse form, by form and result (valid, invalid).",
	}, []string{"form", "result"})

	interpretationsExamined = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "poet_interpretations_examined",
		Help:    "Readings examined to find the best interpretation of a stanza.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{"form"})

	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "poet_analysis_duration_seconds",
		Help:    "Time spent analyzing a text.",
		Buckets: prometheus.DefBuckets,
	})
)
