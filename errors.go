package main

import (
	"errors"
	"fmt"
)

var (
	ErrMissingWebhookURL          = errors.New("no webhook URL provided, set DISCORD_WEBHOOK_URL or the webhook_url input")
	ErrInvalidWebhookURL          = errors.New("invalid webhook URL")
	ErrConflictingContentAndEmbed = errors.New("both content and embed description provided, set only one of content or embed_description")
	ErrContentTooLong             = fmt.Errorf("content exceeds %d characters", MaxDiscordMessageLength)
	ErrInvalidEmbedFieldsJSON     = errors.New("invalid JSON for embed fields, embed_fields must be an array of {name, value, inline} objects")
	ErrInvalidEmbedColor          = errors.New("invalid embed color, expected hex digits or a color scheme name")
)

// EmbedFieldTooLongError reports the first embed limit that was exceeded.
type EmbedFieldTooLongError struct {
	Field string
	Limit int
}

func (e *EmbedFieldTooLongError) Error() string {
	if e.Field == "fields" {
		return fmt.Sprintf("embed fields exceed %d field objects", e.Limit)
	}
	return fmt.Sprintf("embed %s exceeds %d characters", e.Field, e.Limit)
}

// HTTPError is returned when the webhook answers with anything but 204.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d: %s: %s", e.StatusCode, e.Status, e.Body)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// TransportError wraps a failure to get any response from the webhook.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
