package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
)

func main() {
	config, err := loadConfig(os.Args[1:])
	if err != nil {
		slog.Error("❌ Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := NewLogger(config.VerboseMode)

	ctx, cancel := setupGracefulShutdown(logger)
	defer cancel()

	sender := NewDiscordSender(config, logger)

	err = run(ctx, *config, sender, logger, os.Stdout)
	if config.VerboseMode {
		sender.PrintMetrics(logger)
	}
	if err != nil {
		logger.Error("❌ " + err.Error())
		cancel()
		os.Exit(1)
	}
}

// run builds the payload from cfg and hands it to sender. Nothing is sent
// unless the payload is valid. With ShowPayload the raw JSON is echoed to out.
func run(ctx context.Context, cfg Config, sender MessageSender, logger *Logger, out io.Writer) error {
	logger.Info("🔍 Checking inputs...")

	payload, err := BuildPayload(cfg)
	if err != nil {
		return err
	}

	if payload.IsEmpty() {
		logger.Warn("Payload has neither content nor embed, sending it anyway")
	}

	if cfg.ShowPayload {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		fmt.Fprintf(out, "📢 Payload: %s\n", data)
	}

	logger.Info("🚀 Sending message to Discord...")
	if err := sender.Send(ctx, cfg.WebhookURL, payload); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	logger.Info("✅ Message sent successfully!")
	return nil
}
