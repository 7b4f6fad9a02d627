package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Feed.Timeout())
	assert.Equal(t, "auto", cfg.TUI.Theme)
	assert.NotEmpty(t, cfg.Data.Dir)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("WAYPLAN_FEED_URL", "https://example.test/feed")
	t.Setenv("WAYPLAN_FEED_TIMEOUT_SECONDS", "3")
	t.Setenv("WAYPLAN_TUI_THEME", "dark")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/feed", cfg.Feed.URL)
	assert.Equal(t, 3*time.Second, cfg.Feed.Timeout())
	assert.Equal(t, "dark", cfg.TUI.Theme)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := &Config{
		Feed: FeedConfig{TimeoutSeconds: 0},
		Data: DataConfig{Dir: ""},
		TUI:  TUIConfig{Theme: "solarized"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout_seconds")
	assert.Contains(t, err.Error(), "data.dir")
	assert.Contains(t, err.Error(), "tui.theme")
}
