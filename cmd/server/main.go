package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/replyglot/replyglot/pkg/config"
	"github.com/replyglot/replyglot/pkg/language"
	"github.com/replyglot/replyglot/pkg/llm"
	"github.com/replyglot/replyglot/pkg/server"
	"github.com/replyglot/replyglot/pkg/service"
	"github.com/replyglot/replyglot/pkg/translate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	// Flags override environment configuration.
	var (
		port     = flag.Int("port", cfg.Port, "HTTP server port")
		baseURL  = flag.String("openai-base-url", cfg.OpenAIBaseURL, "Base URL for the OpenAI-compatible API")
		model    = flag.String("model", cfg.Model, "Model used for classification and translation")
		logLevel = flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	)
	flag.Parse()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.WithError(err).Warn("Invalid log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.WithFields(logrus.Fields{
		"port":      *port,
		"base_url":  *baseURL,
		"model":     *model,
		"log_level": level.String(),
	}).Info("Starting replyglot server")

	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set, translation requests will be rejected")
	}

	client := llm.NewClient(llm.Config{
		BaseURL: *baseURL,
		Model:   *model,
		Logger:  logger,
	})

	// Verify the API is reachable before serving. The server still starts on
	// failure; requests will surface errors until the API is available.
	if cfg.OpenAIAPIKey != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		logger.Info("Checking chat completions API health...")
		if err := client.CheckHealth(ctx, cfg.OpenAIAPIKey); err != nil {
			logger.WithError(err).Warn("API health check failed, but continuing anyway")
		} else {
			logger.Info("API health check passed")
		}
		cancel()
	}

	classifier := language.NewModelClassifier(client, logger)
	detector := language.NewDetector(classifier, logger)
	translator := translate.NewOpenAITranslator(client, logger)
	svc := service.NewTranslateService(detector, translator, cfg.OpenAIAPIKey, logger)
	srv := server.NewHTTPServer(svc, logger, *port)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		logger.WithError(err).Fatal("Server error")
	case sig := <-sigChan:
		logger.WithFields(logrus.Fields{
			"signal": sig.String(),
		}).Info("Received signal, shutting down gracefully...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Warn("Graceful shutdown failed")
		} else {
			logger.Info("Server stopped gracefully")
		}
	}
}
