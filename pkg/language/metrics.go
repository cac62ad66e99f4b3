package language

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	languageDetectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replyglot_language_detections_total",
			Help: "Total number of target language detections by method and language",
		},
		[]string{"method", "language"},
	)

	classifierFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "replyglot_classifier_failures_total",
			Help: "Total number of model classifier calls that failed and degraded to no match",
		},
	)
)

func recordDetection(method, lang string) {
	// Classifier output is unvalidated free text; bucket anything outside
	// the supported set so label cardinality stays bounded.
	if !IsSupported(lang) {
		lang = "other"
	}
	languageDetectionsTotal.WithLabelValues(method, lang).Inc()
}

func recordClassifierFailure() {
	classifierFailuresTotal.Inc()
}
