package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the default base URL for the chat completions API.
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultModel is the default model used for classification and translation.
	DefaultModel = "gpt-4o-mini"
	// DefaultTimeout is the default timeout for HTTP requests to the API.
	DefaultTimeout = 60 * time.Second
)

// Message is a single chat message in an API request or response.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Config holds configuration for creating a Client instance.
type Config struct {
	// BaseURL is the base URL of an OpenAI-compatible API.
	// Defaults to https://api.openai.com/v1 if not specified.
	BaseURL string
	// Model is the model identifier sent with every request.
	Model string
	// Timeout is the HTTP client timeout. Defaults to 60 seconds.
	Timeout time.Duration
	// Logger is the logger instance to use. If nil, a default logger is created.
	Logger *logrus.Logger
}

// Client is a minimal chat-completions client for OpenAI-compatible APIs.
// The API key is supplied per call rather than stored on the client: the
// credential is owned by the caller, not by this package.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new chat-completions client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: cfg.Logger,
	}
}

// Model returns the model identifier this client sends with every request.
func (c *Client) Model() string {
	return c.model
}

// chatCompletionRequest is the request payload for /chat/completions.
type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// chatCompletionResponse is the subset of the API response this client reads.
type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// ChatCompletion sends the messages to the chat-completions endpoint and
// returns the content of the first choice.
func (c *Client) ChatCompletion(ctx context.Context, apiKey string, messages []Message, temperature float64) (string, error) {
	c.logger.WithFields(logrus.Fields{
		"model":         c.model,
		"message_count": len(messages),
		"temperature":   temperature,
	}).Debug("Sending chat completion request")

	reqPayload := chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
	}

	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(&reqPayload); err != nil {
		c.logger.WithError(err).Error("Failed to encode chat completion request")
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, buf)
	if err != nil {
		c.logger.WithError(err).Error("Failed to create chat completion request")
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"url": url,
		}).Error("Chat completion request failed")
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(startTime)
	c.logger.WithFields(logrus.Fields{
		"status_code": resp.StatusCode,
		"duration_ms": duration.Milliseconds(),
	}).Debug("Chat completion request completed")

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"response":    string(bodyBytes),
		}).Error("Chat completion request returned non-OK status")
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var ccResp chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&ccResp); err != nil {
		c.logger.WithError(err).Error("Failed to decode chat completion response")
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(ccResp.Choices) == 0 {
		c.logger.Error("Chat completion response contained no choices")
		return "", fmt.Errorf("no choices in response")
	}

	return ccResp.Choices[0].Message.Content, nil
}

// CheckHealth verifies that the API is reachable and the credential is
// accepted, using the lightweight /models endpoint.
func (c *Client) CheckHealth(ctx context.Context, apiKey string) error {
	c.logger.Debug("Checking chat completions API health")

	url := c.baseURL + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.WithError(err).Error("Failed to create health check request")
		return fmt.Errorf("create health check request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"url": url,
		}).Error("Health check request failed")
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
		}).Error("Health check returned non-OK status")
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	c.logger.Debug("Chat completions API health check passed")
	return nil
}
