// Package service implements the reply-translation flow: it extracts the
// user's instruction and the agent's last reply from a conversation, infers
// the target language, and returns the translated reply or a fixed
// user-facing error string.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/replyglot/replyglot/pkg/language"
	"github.com/replyglot/replyglot/pkg/translate"
)

// Fixed user-facing reply strings. These are a wire contract for plugin
// callers and must not be reworded.
const (
	MsgAPIKeyNotConfigured    = "OpenAI API key is not configured"
	MsgNoPreviousMessage      = "No previous message to translate"
	MsgNoAgentMessage         = "No agent message found to translate"
	MsgCouldNotDetect         = "Could not detect target language"
	MsgTranslationErrorPrefix = "Error during translation: "
)

// Message roles as provided by the host platform.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TranslateRequest carries the conversation history, oldest message first.
// The final user message is the translation instruction.
type TranslateRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// TranslateResponse is the result delivered back to the caller. Reply always
// holds either the translated text or one of the fixed error strings.
type TranslateResponse struct {
	RequestID        string `json:"request_id"`
	Reply            string `json:"reply"`
	Translated       bool   `json:"translated"`
	DetectedLanguage string `json:"detected_language,omitempty"`
	SourceLanguage   string `json:"source_language,omitempty"`
}

// LanguageDetector resolves the target language for an instruction. It is
// total: it always returns a language identifier.
type LanguageDetector interface {
	Detect(ctx context.Context, apiKey, instruction string) string
}

// TranslateService wires the language detector and the translator together
// behind the plugin's reply contract.
type TranslateService struct {
	detector   LanguageDetector
	translator translate.Translator
	apiKey     string
	logger     *logrus.Logger
}

// NewTranslateService creates a new TranslateService instance.
func NewTranslateService(detector LanguageDetector, translator translate.Translator, apiKey string, logger *logrus.Logger) *TranslateService {
	if logger == nil {
		logger = logrus.New()
	}
	return &TranslateService{
		detector:   detector,
		translator: translator,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// TranslateReply runs the full flow for one conversation. It never returns
// an error: every failure is mapped to one of the fixed reply strings.
func (s *TranslateService) TranslateReply(ctx context.Context, req TranslateRequest) TranslateResponse {
	requestID := uuid.New().String()
	log := s.logger.WithFields(logrus.Fields{
		"request_id":    requestID,
		"message_count": len(req.Messages),
	})

	resp := TranslateResponse{RequestID: requestID}

	if s.apiKey == "" {
		log.Warn("Rejecting request: API key is not configured")
		resp.Reply = MsgAPIKeyNotConfigured
		return resp
	}

	instruction, instructionIdx := lastMessageWithRole(req.Messages, RoleUser)
	if instructionIdx <= 0 {
		// Either no user instruction at all, or nothing precedes it.
		log.Info("Rejecting request: no previous message to translate")
		resp.Reply = MsgNoPreviousMessage
		return resp
	}

	source, sourceIdx := lastMessageWithRoleBefore(req.Messages, RoleAssistant, instructionIdx)
	if sourceIdx < 0 {
		log.Info("Rejecting request: no agent message found to translate")
		resp.Reply = MsgNoAgentMessage
		return resp
	}

	startTime := time.Now()
	targetLang := s.detector.Detect(ctx, s.apiKey, instruction)
	if targetLang == "" {
		// The detection chain is total, so this branch is unreachable in
		// practice; it exists to keep the fixed reply set complete.
		log.Error("Detection chain returned an empty language identifier")
		resp.Reply = MsgCouldNotDetect
		return resp
	}
	resp.DetectedLanguage = targetLang
	resp.SourceLanguage = language.DetectSource(source)

	log = log.WithFields(logrus.Fields{
		"target_lang": targetLang,
		"source_lang": resp.SourceLanguage,
	})

	translated, err := s.translator.Translate(ctx, s.apiKey, source, targetLang)
	if err != nil {
		log.WithError(err).Error("Translation failed")
		resp.Reply = MsgTranslationErrorPrefix + err.Error()
		return resp
	}

	log.WithFields(logrus.Fields{
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Info("Reply translated")

	resp.Reply = translated
	resp.Translated = true
	return resp
}

// lastMessageWithRole returns the content and index of the last message with
// the given role, or ("", -1) when none exists.
func lastMessageWithRole(messages []ChatMessage, role string) (string, int) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == role {
			return messages[i].Content, i
		}
	}
	return "", -1
}

// lastMessageWithRoleBefore returns the content and index of the last message
// with the given role strictly before index limit, or ("", -1).
func lastMessageWithRoleBefore(messages []ChatMessage, role string, limit int) (string, int) {
	if limit > len(messages) {
		limit = len(messages)
	}
	for i := limit - 1; i >= 0; i-- {
		if messages[i].Role == role {
			return messages[i].Content, i
		}
	}
	return "", -1
}
