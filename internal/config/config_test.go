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

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "America/Argentina/Buenos_Aires", cfg.Location().String())
	assert.Equal(t, time.Duration(0), cfg.MinAdvance())
	assert.Equal(t, "09:00", cfg.FallbackStart)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.MercadoPago.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SHOP_TIMEZONE", "UTC")
	t.Setenv("MIN_ADVANCE_MINUTES", "30")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.MinAdvance())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.Origins())
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"timezone":       {"SHOP_TIMEZONE", "Nowhere/City"},
		"negative lead":  {"MIN_ADVANCE_MINUTES", "-5"},
		"fallback order": {"SCHEDULE_FALLBACK_START", "19:00"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
