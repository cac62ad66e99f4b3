// Package translate rewrites agent replies in a target language via an
// OpenAI-compatible chat-completions API.
package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/replyglot/replyglot/pkg/llm"
)

// translateTemperature keeps translations close to deterministic.
const translateTemperature = 0.3

// Translator defines the interface for translation backends. This
// abstraction allows the service layer to be tested without network calls.
type Translator interface {
	// Translate rewrites text in the target language. targetLang is a
	// language identifier such as "japanese" or "english".
	Translate(ctx context.Context, apiKey, text, targetLang string) (string, error)
}

// OpenAITranslator implements Translator using the chat-completions API.
type OpenAITranslator struct {
	client *llm.Client
	logger *logrus.Logger
}

// NewOpenAITranslator creates a translator backed by the given client.
func NewOpenAITranslator(client *llm.Client, logger *logrus.Logger) *OpenAITranslator {
	if logger == nil {
		logger = logrus.New()
	}
	return &OpenAITranslator{
		client: client,
		logger: logger,
	}
}

func translateSystemPrompt(targetLang string) string {
	return fmt.Sprintf(
		"You are a translation assistant. Translate the user's message directly into %s. Preserve all Markdown formatting exactly as it appears, including headings, lists, links, emphasis, and code blocks. Do not add any explanations, comments, or conversational text. Output only the translation.",
		targetLang,
	)
}

// Translate sends the text to the model and returns the translation with
// surrounding whitespace trimmed. Failures are not retried; the returned
// error message always carries the "Error occurred during translation"
// marker, which callers surface to end users.
func (t *OpenAITranslator) Translate(ctx context.Context, apiKey, text, targetLang string) (string, error) {
	t.logger.WithFields(logrus.Fields{
		"target_lang": targetLang,
		"text_length": len(text),
	}).Debug("Translating agent reply")

	startTime := time.Now()
	reply, err := t.client.ChatCompletion(ctx, apiKey, []llm.Message{
		{Role: "system", Content: translateSystemPrompt(targetLang)},
		{Role: "user", Content: text},
	}, translateTemperature)
	duration := time.Since(startTime)

	if err != nil {
		t.logger.WithError(err).WithFields(logrus.Fields{
			"target_lang": targetLang,
			"duration_ms": duration.Milliseconds(),
		}).Error("Translation request failed")
		recordTranslation(duration, false, len(text), 0)
		// Message format is part of the plugin's user-facing contract.
		return "", fmt.Errorf("Error occurred during translation: %w", err)
	}

	result := strings.TrimSpace(reply)
	recordTranslation(duration, true, len(text), len(result))

	t.logger.WithFields(logrus.Fields{
		"target_lang":   targetLang,
		"duration_ms":   duration.Milliseconds(),
		"result_length": len(result),
	}).Info("Translation completed successfully")

	return result, nil
}
