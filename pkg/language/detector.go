package language

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Detector resolves the target language for a translation instruction.
// Detection order is fixed: the local keyword scan runs first so that no
// network call is made when a trigger is present, the model classifier runs
// second, and the static default closes the chain.
type Detector struct {
	classifier Classifier
	logger     *logrus.Logger
}

// NewDetector creates a detector that falls back to the given classifier
// when the keyword scan finds nothing.
func NewDetector(classifier Classifier, logger *logrus.Logger) *Detector {
	if logger == nil {
		logger = logrus.New()
	}
	return &Detector{
		classifier: classifier,
		logger:     logger,
	}
}

// Detect returns the target language for the instruction. It is total: every
// input yields a language identifier, even when the classifier is
// unreachable.
func (d *Detector) Detect(ctx context.Context, apiKey, instruction string) string {
	if lang, ok := MatchKeyword(instruction); ok {
		d.logger.WithFields(logrus.Fields{
			"language": lang,
			"method":   "keyword",
		}).Debug("Target language detected")
		recordDetection("keyword", lang)
		return lang
	}

	if lang := d.classifier.Classify(ctx, apiKey, instruction); lang != "" {
		d.logger.WithFields(logrus.Fields{
			"language": lang,
			"method":   "classifier",
		}).Debug("Target language detected")
		recordDetection("classifier", lang)
		return lang
	}

	d.logger.WithFields(logrus.Fields{
		"language": Default,
		"method":   "default",
	}).Debug("Falling back to default target language")
	recordDetection("default", Default)
	return Default
}
