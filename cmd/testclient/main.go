package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/replyglot/replyglot/pkg/service"
)

var (
	serverAddr  = flag.String("addr", "http://localhost:8080", "replyglot server address")
	instruction = flag.String("instruction", "translate to Japanese", "User instruction naming the target language")
	reply       = flag.String("reply", "", "Agent reply to translate")
	replyFile   = flag.String("file", "", "Path to a file holding the agent reply")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	// Read the agent reply to translate
	var replyText string
	if *replyFile != "" {
		data, err := os.ReadFile(*replyFile)
		if err != nil {
			logger.WithError(err).Fatalf("Failed to read file: %s", *replyFile)
		}
		replyText = string(data)
	} else if *reply != "" {
		replyText = *reply
	} else {
		logger.Fatal("Either -file or -reply must be provided")
	}

	req := service.TranslateRequest{
		Messages: []service.ChatMessage{
			{Role: service.RoleAssistant, Content: replyText},
			{Role: service.RoleUser, Content: *instruction},
		},
	}

	payload, err := json.Marshal(req)
	if err != nil {
		logger.WithError(err).Fatal("Failed to encode request")
	}

	logger.WithFields(logrus.Fields{
		"server":      *serverAddr,
		"instruction": *instruction,
		"text_length": len(replyText),
	}).Info("Sending translation request...")

	client := &http.Client{Timeout: 2 * time.Minute}
	httpResp, err := client.Post(*serverAddr+"/api/v1/translate", "application/json", bytes.NewReader(payload))
	if err != nil {
		logger.WithError(err).Fatal("Request failed")
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		logger.WithFields(logrus.Fields{
			"status_code": httpResp.StatusCode,
		}).Fatal("Server returned non-OK status")
	}

	var resp service.TranslateResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		logger.WithError(err).Fatal("Failed to decode response")
	}

	logger.WithFields(logrus.Fields{
		"request_id":        resp.RequestID,
		"translated":        resp.Translated,
		"detected_language": resp.DetectedLanguage,
		"source_language":   resp.SourceLanguage,
	}).Info("Translation completed")

	fmt.Println(resp.Reply)
}
