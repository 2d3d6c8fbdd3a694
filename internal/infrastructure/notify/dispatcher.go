package notify

import (
	"context"
	"log/slog"

	"TrendDigest/internal/config"
	"TrendDigest/internal/domain"
	"TrendDigest/internal/ports"
)

// Channel delivers one rendered report to a single destination.
type Channel interface {
	Name() string
	Send(ctx context.Context, env domain.ReportEnvelope, reportType, mode string, payload *domain.DisplayPayload) error
}

// Dispatcher fans a report out to every configured channel. Per-channel
// success and failure is collected, never propagated; one failing channel
// does not stop the rest.
type Dispatcher struct {
	channels []Channel
	logger   *slog.Logger
}

var _ ports.Dispatcher = (*Dispatcher)(nil)

// NewDispatcher wires the configured channels.
func NewDispatcher(log *slog.Logger, channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels, logger: log}
}

// ChannelsFromConfig builds all channels that have enough configuration to
// operate.
func ChannelsFromConfig(cfg config.NotificationConfig) []Channel {
	var channels []Channel

	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		channels = append(channels, NewTelegramChannel(cfg.Telegram.BotToken, cfg.Telegram.ChatID))
	}

	for _, hook := range cfg.Webhooks {
		if hook.URL == "" {
			continue
		}
		channels = append(channels, NewWebhookChannel(hook.Name, hook.URL))
	}

	return channels
}

// DispatchAll sends through every channel and returns the per-channel
// outcome keyed by channel name.
func (d *Dispatcher) DispatchAll(ctx context.Context, env domain.ReportEnvelope, reportType, mode string, payload *domain.DisplayPayload) map[string]error {
	results := make(map[string]error, len(d.channels))

	for _, ch := range d.channels {
		err := ch.Send(ctx, env, reportType, mode, payload)
		results[ch.Name()] = err

		if err != nil {
			d.warn("channel dispatch failed", "channel", ch.Name(), "error", err)
		} else {
			d.debug("channel dispatch ok", "channel", ch.Name())
		}
	}

	return results
}

func (d *Dispatcher) warn(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Warn(msg, args...)
	}
}

func (d *Dispatcher) debug(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
