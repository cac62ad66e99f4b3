package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replyglot/replyglot/pkg/llm"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestTranslator(t *testing.T, handler http.HandlerFunc) *OpenAITranslator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := llm.NewClient(llm.Config{
		BaseURL: srv.URL,
		Model:   "test-model",
		Logger:  newTestLogger(),
	})
	return NewOpenAITranslator(client, newTestLogger())
}

func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	encoded, err := json.Marshal(content)
	require.NoError(t, err)
	return []byte(`{"choices":[{"message":{"role":"assistant","content":` + string(encoded) + `}}]}`)
}

func TestTranslateTrimsResponse(t *testing.T) {
	translator := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionBody(t, "\n  こんにちは、世界！  \n"))
	})

	result, err := translator.Translate(context.Background(), "test-key", "Hello, world!", "japanese")

	require.NoError(t, err)
	assert.Equal(t, "こんにちは、世界！", result)
}

func TestTranslatePromptAndPayload(t *testing.T) {
	const markdown = "# Title\n\n- Item 1\n```code\nx\n```"

	var gotReq struct {
		Messages    []llm.Message `json:"messages"`
		Temperature float64       `json:"temperature"`
	}

	translator := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write(completionBody(t, "# タイトル\n\n- 項目 1\n```code\nx\n```"))
	})

	result, err := translator.Translate(context.Background(), "test-key", markdown, "japanese")

	require.NoError(t, err)
	assert.InDelta(t, 0.3, gotReq.Temperature, 1e-9)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, "japanese")
	assert.Contains(t, gotReq.Messages[0].Content, "Markdown")
	// The source text is the sole user content, passed verbatim.
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, markdown, gotReq.Messages[1].Content)
	// Structural Markdown tokens survive in the translated output.
	assert.Contains(t, result, "# ")
	assert.Contains(t, result, "```code")
}

func TestTranslateWrapsFailures(t *testing.T) {
	translator := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := translator.Translate(context.Background(), "test-key", "Hello, world!", "japanese")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error occurred during translation")
	assert.Contains(t, err.Error(), "unexpected status 500")
}
