package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/disgo/webhook"
)

type Config struct {
	Enabled    bool   `toml:"enabled"`
	WebhookURL string `toml:"webhook_url"`
}

func (c Config) String() string {
	return fmt.Sprintf("\n Enabled: %t\n WebhookURL: %s",
		c.Enabled,
		maskWebhookURL(c.WebhookURL),
	)
}

// maskWebhookURL hides the webhook token, the last path segment of the url.
func maskWebhookURL(u string) string {
	i := strings.LastIndex(u, "/")
	if i < 0 || i == len(u)-1 {
		return u
	}
	return u[:i+1] + strings.Repeat("*", len(u)-i-1)
}

// New returns a Notifier posting to a Discord webhook, or one that does nothing when disabled.
func New(cfg Config) (*Notifier, error) {
	if !cfg.Enabled {
		return &Notifier{}, nil
	}

	client, err := webhook.NewWithURL(cfg.WebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook client: %w", err)
	}
	return &Notifier{client: client}, nil
}

type Notifier struct {
	client *webhook.Client
}

func (n *Notifier) Enabled() bool {
	return n.client != nil
}

// Notify posts message to the operators. Failures are only logged.
func (n *Notifier) Notify(ctx context.Context, message string) {
	if n.client == nil {
		slog.DebugContext(ctx, "Notifications disabled, dropping message", slog.String("message", message))
		return
	}

	content := fmt.Sprintf("%s %s", discord.NewTimestamp(discord.TimestampStyleShortDateTime, time.Now()), message)
	if _, err := n.client.CreateContent(content, rest.WithCtx(ctx)); err != nil {
		slog.ErrorContext(ctx, "Failed to send notification", slog.Any("err", err))
	}
}

func (n *Notifier) Close(ctx context.Context) {
	if n.client != nil {
		n.client.Close(ctx)
	}
}
