package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxErrorBodyLength caps how much of an error response is kept.
const maxErrorBodyLength = 512

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type MessageSender interface {
	Send(ctx context.Context, webhookURL string, payload Payload) error
}

type DiscordSender struct {
	client  HTTPClient
	logger  *Logger
	metrics *Metrics
}

func NewDiscordSender(config *Config, logger *Logger) *DiscordSender {
	return &DiscordSender{
		client: &http.Client{
			Timeout: config.Timeout,
		},
		logger:  logger,
		metrics: NewMetrics(),
	}
}

// Send posts the payload to the webhook exactly once. Only a 204 response
// counts as success; any other status yields an *HTTPError and a failure
// to reach the server yields a *TransportError.
func (ds *DiscordSender) Send(ctx context.Context, webhookURL string, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		ds.logger.Error("JSON marshal error", "error", err)
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(data))
	if err != nil {
		ds.logger.Error("Request creation error", "error", err)
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := ds.client.Do(req)
	if err != nil {
		ds.metrics.RecordError(0, time.Since(start))
		ds.logger.Debug("HTTP request error", "error", err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength))
		ds.metrics.RecordError(resp.StatusCode, time.Since(start))
		ds.logger.Debug("Discord API error", "status", resp.StatusCode)
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       strings.TrimSpace(string(body)),
		}
	}

	ds.metrics.RecordSent(len(data), resp.StatusCode, time.Since(start))
	ds.logger.Debug("Message sent successfully", "status", resp.StatusCode)
	return nil
}

// statusText returns the reason phrase of the response, e.g. "Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func (ds *DiscordSender) PrintMetrics(logger *Logger) {
	stats := ds.metrics.Snapshot()
	logger.Info("Metrics",
		"messages_sent", stats.MessagesSent,
		"errors", stats.MessagesError,
		"bytes_sent", stats.BytesSent,
		"last_status", stats.LastStatus,
		"elapsed", stats.Elapsed,
	)
}
