package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	calls      int
	webhookURL string
	payload    Payload
	logAtSend  string
	log        *bytes.Buffer
	err        error
}

func (f *fakeSender) Send(ctx context.Context, webhookURL string, payload Payload) error {
	f.calls++
	f.webhookURL = webhookURL
	f.payload = payload
	if f.log != nil {
		f.logAtSend = f.log.String()
	}
	return f.err
}

func TestRunDoesNotSendInvalidPayload(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name:    "missing webhook URL",
			cfg:     Config{Content: "hi"},
			wantErr: ErrMissingWebhookURL,
		},
		{
			name:    "conflicting content and embed",
			cfg:     Config{WebhookURL: testWebhookURL, Content: "hi", Embed: EmbedInputs{Description: "there"}},
			wantErr: ErrConflictingContentAndEmbed,
		},
		{
			name:    "content too long",
			cfg:     Config{WebhookURL: testWebhookURL, Content: strings.Repeat("x", MaxDiscordMessageLength+1)},
			wantErr: ErrContentTooLong,
		},
		{
			name:    "bad fields",
			cfg:     Config{WebhookURL: testWebhookURL, Embed: EmbedInputs{Fields: "not json"}},
			wantErr: ErrInvalidEmbedFieldsJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			err := run(context.Background(), tt.cfg, sender, newLogger(&bytes.Buffer{}, false), io.Discard)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, sender.calls)
		})
	}
}

func TestRunSendsOnce(t *testing.T) {
	var logs bytes.Buffer
	sender := &fakeSender{}

	err := run(context.Background(), Config{WebhookURL: testWebhookURL, Content: "Test content"}, sender, newLogger(&logs, false), &logs)
	require.NoError(t, err)

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, testWebhookURL, sender.webhookURL)
	assert.Equal(t, Payload{Content: "Test content"}, sender.payload)
	assert.Contains(t, logs.String(), "Message sent successfully")
	assert.NotContains(t, logs.String(), "Payload:")
}

func TestRunShowPayload(t *testing.T) {
	var logs bytes.Buffer
	sender := &fakeSender{log: &logs}

	cfg := Config{WebhookURL: testWebhookURL, Content: "Test content", ShowPayload: true}
	require.NoError(t, run(context.Background(), cfg, sender, newLogger(&logs, false), &logs))

	want, err := json.Marshal(Payload{Content: "Test content"})
	require.NoError(t, err)
	assert.Contains(t, sender.logAtSend, "📢 Payload: "+string(want)+"\n")
}

func TestRunReportsSendFailure(t *testing.T) {
	sender := &fakeSender{err: &HTTPError{StatusCode: 500, Status: "Internal Server Error"}}

	err := run(context.Background(), Config{WebhookURL: testWebhookURL, Content: "hi"}, sender, newLogger(&bytes.Buffer{}, false), io.Discard)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 500, httpErr.StatusCode)
	assert.Equal(t, 1, sender.calls)
}

func TestRunWarnsOnEmptyPayload(t *testing.T) {
	var logs bytes.Buffer
	sender := &fakeSender{}

	require.NoError(t, run(context.Background(), Config{WebhookURL: testWebhookURL}, sender, newLogger(&logs, false), &logs))

	assert.Equal(t, 1, sender.calls)
	assert.True(t, sender.payload.IsEmpty())
	assert.Contains(t, logs.String(), "level=WARN")
}
