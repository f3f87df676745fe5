package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/acarl005/stripansi"
)

const MaxDiscordMessageLength = 2000

const maxEmbedColor = 0xFFFFFF

// Named colors accepted in place of hex digits.
var colorSchemes = map[string]int{
	"notification": 0x3498DB,
	"warning":      0xF1C40F,
	"error":        0xE74C3C,
	"success":      0x2ECC71,
	"info":         0x1ABC9C,
}

// Payload is the webhook request body.
type Payload struct {
	Content   string  `json:"content,omitempty"`
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	TTS       bool    `json:"tts,omitempty"`
	Embeds    []Embed `json:"embeds,omitempty"`
}

// IsEmpty reports whether the payload carries neither content nor an embed.
func (p Payload) IsEmpty() bool {
	return p.Content == "" && len(p.Embeds) == 0
}

// embedFieldInput is the accepted shape of one embed_fields entry.
type embedFieldInput struct {
	Name   *string `json:"name" validate:"required"`
	Value  *string `json:"value" validate:"required"`
	Inline *bool   `json:"inline"`
}

// BuildPayload turns the resolved configuration into a webhook payload.
// Content and embed are mutually exclusive; the embed is validated before
// it is attached.
func BuildPayload(cfg Config) (Payload, error) {
	var payload Payload

	if cfg.WebhookURL == "" {
		return payload, ErrMissingWebhookURL
	}

	if cfg.Content != "" && cfg.Embed.Description != "" {
		return payload, ErrConflictingContentAndEmbed
	}

	if utf8.RuneCountInString(cfg.Content) > MaxDiscordMessageLength {
		return payload, ErrContentTooLong
	}

	if err := validateWebhookURL(cfg.WebhookURL); err != nil {
		return payload, err
	}

	if cfg.Content != "" {
		content := stripansi.Strip(expandEnv(cfg.Content, cfg.Env))
		if utf8.RuneCountInString(content) > MaxDiscordMessageLength {
			return payload, fmt.Errorf("%w after variable expansion", ErrContentTooLong)
		}
		payload.Content = content
	}

	payload.Username = cfg.Username
	payload.AvatarURL = cfg.AvatarURL
	payload.TTS = cfg.TTS

	if cfg.Content == "" && !cfg.Embed.IsZero() {
		embed, err := buildEmbed(cfg.Embed, cfg.Env)
		if err != nil {
			return Payload{}, err
		}
		if err := ValidateEmbed(embed); err != nil {
			return Payload{}, err
		}
		payload.Embeds = []Embed{embed}
	}

	return payload, nil
}

func validateWebhookURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhookURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidWebhookURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidWebhookURL)
	}
	return nil
}

func buildEmbed(in EmbedInputs, env map[string]string) (Embed, error) {
	embed := Embed{
		Title:     in.Title,
		URL:       in.URL,
		Timestamp: in.Timestamp,
	}

	if in.Description != "" {
		embed.Description = expandEnv(in.Description, env)
	}

	if in.Color != "" {
		color, err := parseColor(in.Color)
		if err != nil {
			return Embed{}, err
		}
		embed.Color = &color
	}

	if in.AuthorName != "" || in.AuthorURL != "" || in.AuthorIconURL != "" {
		embed.Author = &EmbedAuthor{
			Name:    in.AuthorName,
			URL:     in.AuthorURL,
			IconURL: in.AuthorIconURL,
		}
	}

	if in.FooterText != "" || in.FooterIconURL != "" {
		embed.Footer = &EmbedFooter{
			Text:    in.FooterText,
			IconURL: in.FooterIconURL,
		}
	}

	if in.Fields != "" {
		fields, err := parseEmbedFields(in.Fields)
		if err != nil {
			return Embed{}, err
		}
		embed.Fields = fields
	}

	return embed, nil
}

// parseEmbedFields decodes a JSON array of {name, value, inline} objects.
// name and value are required strings; inline is an optional bool.
func parseEmbedFields(raw string) ([]EmbedField, error) {
	var inputs []embedFieldInput
	if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEmbedFieldsJSON, err)
	}
	if inputs == nil {
		return nil, fmt.Errorf("%w: expected an array", ErrInvalidEmbedFieldsJSON)
	}

	fields := make([]EmbedField, 0, len(inputs))
	for i, in := range inputs {
		if err := embedValidator.Struct(in); err != nil {
			return nil, fmt.Errorf("%w: field %d must have string name and value", ErrInvalidEmbedFieldsJSON, i)
		}

		field := EmbedField{Name: *in.Name, Value: *in.Value}
		if in.Inline != nil {
			field.Inline = *in.Inline
		}
		fields = append(fields, field)
	}

	return fields, nil
}

// parseColor accepts a color scheme name or hex digits, optionally
// prefixed with "#" or "0x".
func parseColor(s string) (int, error) {
	if color, ok := colorSchemes[strings.ToLower(s)]; ok {
		return color, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) > 2 && strings.EqualFold(hex[:2], "0x") {
		hex = hex[2:]
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || value > maxEmbedColor {
		return 0, fmt.Errorf("%w: %q", ErrInvalidEmbedColor, s)
	}
	return int(value), nil
}
