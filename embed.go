package main

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Embed limits enforced by Discord.
const (
	MaxEmbedTitleLength       = 256
	MaxEmbedDescriptionLength = 4096
	MaxEmbedFields            = 25
	MaxEmbedFieldNameLength   = 256
	MaxEmbedFieldValueLength  = 1024
	MaxEmbedFooterTextLength  = 2048
	MaxEmbedAuthorNameLength  = 256
)

// Embed is a rich message block. Field order matters: validation reports
// the first violation in declaration order.
type Embed struct {
	Title       string       `json:"title,omitempty" validate:"max=256"`
	Description string       `json:"description,omitempty" validate:"max=4096"`
	URL         string       `json:"url,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Color       *int         `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty" validate:"max=25,dive"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name" validate:"max=256"`
	Value  string `json:"value" validate:"max=1024"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedFooter struct {
	Text    string `json:"text,omitempty" validate:"max=2048"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedAuthor struct {
	Name    string `json:"name,omitempty" validate:"max=256"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

var embedValidator = newEmbedValidator()

func newEmbedValidator() *validator.Validate {
	validate := validator.New()

	// Report JSON names so errors read like the wire schema.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// ValidateEmbed checks the embed against Discord's size limits and returns
// an *EmbedFieldTooLongError for the first limit exceeded.
func ValidateEmbed(embed Embed) error {
	err := embedValidator.Struct(embed)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	limit, convErr := strconv.Atoi(fe.Param())
	if convErr != nil {
		return err
	}

	return &EmbedFieldTooLongError{
		Field: strings.TrimPrefix(fe.Namespace(), "Embed."),
		Limit: limit,
	}
}
