// Package server exposes the reply-translation service over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/replyglot/replyglot/pkg/service"
)

// HTTPServer provides the translation endpoint plus health and metrics.
type HTTPServer struct {
	service *service.TranslateService
	logger  *logrus.Logger
	port    int
	srv     *http.Server
}

// NewHTTPServer creates a new HTTP server for the translation service.
func NewHTTPServer(svc *service.TranslateService, logger *logrus.Logger, port int) *HTTPServer {
	if logger == nil {
		logger = logrus.New()
	}
	return &HTTPServer{
		service: svc,
		logger:  logger,
		port:    port,
	}
}

// Handler returns the HTTP handler tree. Exposed separately from Start so
// tests can drive it without binding a port.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// Translation endpoint (POST /api/v1/translate)
	mux.HandleFunc("/api/v1/translate", s.handleTranslate)

	// Health check endpoint
	mux.HandleFunc("/health", s.handleHealth)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// Start starts the HTTP server and blocks until it stops.
func (s *HTTPServer) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.srv = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	s.logger.WithFields(logrus.Fields{
		"port": s.port,
	}).Info("Starting HTTP server")

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// handleTranslate accepts a conversation and returns the translated reply.
// Handler-level failures (missing key, missing context, translation errors)
// are delivered as the reply string with HTTP 200: that is the plugin's wire
// contract with its callers.
func (s *HTTPServer) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req service.TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.WithError(err).Warn("Failed to decode translation request")
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	resp := s.service.TranslateReply(r.Context(), req)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.WithError(err).Error("Failed to encode translation response")
	}
}

// handleHealth provides a health check endpoint.
func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	})
}
