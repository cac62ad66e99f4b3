package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replyglot/replyglot/pkg/service"
)

type fakeDetector struct{ lang string }

func (f *fakeDetector) Detect(ctx context.Context, apiKey, instruction string) string {
	return f.lang
}

type fakeTranslator struct{ result string }

func (f *fakeTranslator) Translate(ctx context.Context, apiKey, text, targetLang string) (string, error) {
	return f.result, nil
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestHandler() http.Handler {
	svc := service.NewTranslateService(
		&fakeDetector{lang: "japanese"},
		&fakeTranslator{result: "こんにちは、世界！"},
		"test-key",
		newTestLogger(),
	)
	return NewHTTPServer(svc, newTestLogger(), 0).Handler()
}

func TestHandleTranslate(t *testing.T) {
	handler := newTestHandler()

	body, err := json.Marshal(service.TranslateRequest{
		Messages: []service.ChatMessage{
			{Role: service.RoleAssistant, Content: "Hello, world!"},
			{Role: service.RoleUser, Content: "translate to Japanese"},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp service.TranslateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "こんにちは、世界！", resp.Reply)
	assert.True(t, resp.Translated)
	assert.Equal(t, "japanese", resp.DetectedLanguage)
	assert.NotEmpty(t, resp.RequestID)
}

func TestHandleTranslateErrorsAreHTTP200(t *testing.T) {
	// Handler-level failures stay inside the reply string; the transport
	// still answers 200.
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate",
		strings.NewReader(`{"messages":[]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp service.TranslateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, service.MsgNoPreviousMessage, resp.Reply)
	assert.False(t, resp.Translated)
}

func TestHandleTranslateRejectsBadRequests(t *testing.T) {
	handler := newTestHandler()

	t.Run("wrong method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/translate", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", strings.NewReader("not json"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
