package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Disabled(t *testing.T) {
	n, err := New(Config{WebhookURL: "not a url"})
	require.NoError(t, err)
	assert.False(t, n.Enabled())

	n.Notify(context.Background(), "ignored")
	n.Close(context.Background())
}

func TestNew_InvalidWebhookURL(t *testing.T) {
	_, err := New(Config{Enabled: true, WebhookURL: "https://example.com/nothing"})
	assert.Error(t, err)
}

func TestConfigString_MasksToken(t *testing.T) {
	cfg := Config{Enabled: true, WebhookURL: "https://discord.com/api/webhooks/123/secret"}
	s := cfg.String()
	assert.Contains(t, s, "https://discord.com/api/webhooks/123/******")
	assert.NotContains(t, s, "secret")
}

func TestNew_Enabled(t *testing.T) {
	n, err := New(Config{Enabled: true, WebhookURL: "https://discord.com/api/webhooks/123456789012345678/secret"})
	require.NoError(t, err)
	assert.True(t, n.Enabled())
	n.Close(context.Background())
}
