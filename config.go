package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// inputPrefix is the prefix CI runners put in front of action inputs.
// Tagged inputs fall back to their bare name when the prefixed one is unset.
const inputPrefix = "INPUT"

const defaultTimeout = 30 * time.Second

type Config struct {
	WebhookURL  string
	Content     string
	Username    string
	AvatarURL   string
	TTS         bool
	Embed       EmbedInputs
	ShowPayload bool
	VerboseMode bool
	Timeout     time.Duration

	// Env is the environment snapshot used for ${VAR} expansion.
	Env map[string]string
}

// EmbedInputs holds the raw embed options as read from the environment.
type EmbedInputs struct {
	Title         string
	Description   string
	URL           string
	Timestamp     string
	Color         string
	AuthorName    string
	AuthorURL     string
	AuthorIconURL string
	FooterText    string
	FooterIconURL string
	Fields        string
}

// IsZero reports whether no embed option was supplied.
func (e EmbedInputs) IsZero() bool {
	return e == EmbedInputs{}
}

type ConfigFile struct {
	WebhookURL string `yaml:"webhook_url"`
	Timeout    int    `yaml:"timeout"`
	Username   string `yaml:"username"`
	AvatarURL  string `yaml:"avatar_url"`
}

// inputs mirrors the environment variables consumed by the notifier.
// Username has no envconfig tag so it is read only as INPUT_USERNAME; the
// bare USERNAME is set by the OS on many hosts.
type inputs struct {
	WebhookURL         string `envconfig:"WEBHOOK_URL"`
	Content            string `envconfig:"CONTENT"`
	Username           string
	AvatarURL          string `envconfig:"AVATAR_URL"`
	TTS                string `envconfig:"TTS"`
	EmbedTitle         string `envconfig:"EMBED_TITLE"`
	EmbedDescription   string `envconfig:"EMBED_DESCRIPTION"`
	EmbedURL           string `envconfig:"EMBED_URL"`
	EmbedTimestamp     string `envconfig:"EMBED_TIMESTAMP"`
	EmbedColor         string `envconfig:"EMBED_COLOR"`
	EmbedAuthorName    string `envconfig:"EMBED_AUTHOR_NAME"`
	EmbedAuthorURL     string `envconfig:"EMBED_AUTHOR_URL"`
	EmbedAuthorIconURL string `envconfig:"EMBED_AUTHOR_ICON_URL"`
	EmbedFooterText    string `envconfig:"EMBED_FOOTER_TEXT"`
	EmbedFooterIconURL string `envconfig:"EMBED_FOOTER_ICON_URL"`
	EmbedFields        string `envconfig:"EMBED_FIELDS"`
	ShowPayload        string `envconfig:"SHOW_PAYLOAD"`
}

func loadConfig(args []string) (*Config, error) {
	var webhookURL, configFile string
	config := &Config{
		Timeout: defaultTimeout,
	}

	fs := flag.NewFlagSet("discord-notify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&webhookURL, "u", "", "Discord Webhook URL")
	fs.BoolVar(&config.VerboseMode, "v", false, "Verbose mode")
	fs.StringVar(&configFile, "c", "", "Config file path")
	fs.DurationVar(&config.Timeout, "t", defaultTimeout, "HTTP request timeout")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	timeoutSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			timeoutSet = true
		}
	})

	in, err := resolveInputs()
	if err != nil {
		return nil, err
	}

	config.Content = in.Content
	config.Username = in.Username
	config.AvatarURL = in.AvatarURL
	config.TTS = in.TTS == "true"
	config.ShowPayload = in.ShowPayload == "true"
	config.Embed = EmbedInputs{
		Title:         in.EmbedTitle,
		Description:   in.EmbedDescription,
		URL:           in.EmbedURL,
		Timestamp:     in.EmbedTimestamp,
		Color:         in.EmbedColor,
		AuthorName:    in.EmbedAuthorName,
		AuthorURL:     in.EmbedAuthorURL,
		AuthorIconURL: in.EmbedAuthorIconURL,
		FooterText:    in.EmbedFooterText,
		FooterIconURL: in.EmbedFooterIconURL,
		Fields:        in.EmbedFields,
	}
	config.Env = envSnapshot()

	// Precedence: flag > input > DISCORD_WEBHOOK_URL > config file
	switch {
	case strings.TrimSpace(webhookURL) != "":
		config.WebhookURL = strings.TrimSpace(webhookURL)
	case in.WebhookURL != "":
		config.WebhookURL = in.WebhookURL
	default:
		config.WebhookURL = strings.TrimSpace(os.Getenv("DISCORD_WEBHOOK_URL"))
	}

	if configFile != "" {
		fileConfig, err := loadConfigFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}

		if config.WebhookURL == "" {
			config.WebhookURL = strings.TrimSpace(fileConfig.WebhookURL)
		}
		if config.Username == "" {
			config.Username = strings.TrimSpace(fileConfig.Username)
		}
		if config.AvatarURL == "" {
			config.AvatarURL = strings.TrimSpace(fileConfig.AvatarURL)
		}
		if fileConfig.Timeout > 0 && !timeoutSet {
			config.Timeout = time.Duration(fileConfig.Timeout) * time.Second
		}
	}

	return config, nil
}

// resolveInputs reads every input from the environment and trims it.
func resolveInputs() (inputs, error) {
	var in inputs
	if err := envconfig.Process(inputPrefix, &in); err != nil {
		return inputs{}, fmt.Errorf("failed to read inputs: %w", err)
	}

	for _, field := range []*string{
		&in.WebhookURL, &in.Content, &in.Username, &in.AvatarURL, &in.TTS,
		&in.EmbedTitle, &in.EmbedDescription, &in.EmbedURL, &in.EmbedTimestamp,
		&in.EmbedColor, &in.EmbedAuthorName, &in.EmbedAuthorURL, &in.EmbedAuthorIconURL,
		&in.EmbedFooterText, &in.EmbedFooterIconURL, &in.EmbedFields, &in.ShowPayload,
	} {
		*field = strings.TrimSpace(*field)
	}

	return in, nil
}

func envSnapshot() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok {
			env[name] = value
		}
	}
	return env
}

func loadConfigFile(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config ConfigFile
	err = yaml.Unmarshal(data, &config)
	return &config, err
}
