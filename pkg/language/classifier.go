package language

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/replyglot/replyglot/pkg/llm"
)

// classifyTemperature keeps classification close to deterministic.
const classifyTemperature = 0.3

// Classifier infers a target language from an instruction. Implementations
// must never fail: any upstream error is mapped to an empty string so the
// detection chain can fall through to the default language.
type Classifier interface {
	Classify(ctx context.Context, apiKey, instruction string) string
}

// ModelClassifier infers the target language by asking the chat-completions
// API to name it. It is only consulted when the keyword scan finds nothing.
type ModelClassifier struct {
	client *llm.Client
	logger *logrus.Logger
}

// NewModelClassifier creates a classifier backed by the given client.
func NewModelClassifier(client *llm.Client, logger *logrus.Logger) *ModelClassifier {
	if logger == nil {
		logger = logrus.New()
	}
	return &ModelClassifier{
		client: client,
		logger: logger,
	}
}

func classifySystemPrompt() string {
	return fmt.Sprintf(
		"You are a language detection assistant. The user wants their message translated into a specific language. Identify that target language and reply with exactly one of: %s. Reply with only the language name in lowercase, nothing else.",
		strings.Join(Supported(), ", "),
	)
}

// Classify sends the instruction to the model and returns the normalized
// language identifier, or an empty string when the call fails or the model
// replies with nothing usable. Errors are logged here and never propagated.
func (c *ModelClassifier) Classify(ctx context.Context, apiKey, instruction string) string {
	reply, err := c.client.ChatCompletion(ctx, apiKey, []llm.Message{
		{Role: "system", Content: classifySystemPrompt()},
		{Role: "user", Content: instruction},
	}, classifyTemperature)
	if err != nil {
		c.logger.WithError(err).Warn("Language classification request failed, treating as no match")
		recordClassifierFailure()
		return ""
	}

	lang := strings.ToLower(strings.TrimSpace(reply))
	if lang == "" {
		c.logger.Debug("Language classifier returned an empty reply")
		return ""
	}

	// The classifier's output is passed through unvalidated to keep parity
	// with callers that embed it directly in the translation prompt.
	if !IsSupported(lang) {
		c.logger.WithFields(logrus.Fields{
			"language": lang,
		}).Warn("Classifier returned a language outside the supported set")
	}

	return lang
}
