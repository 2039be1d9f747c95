package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("NOTIFICATION_LOG_LIMIT", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 200, cfg.NotificationLogLimit)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, "booking.confirmed", cfg.RabbitMQQueue)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_ACCESS_EXPIRY", "1h")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("AUTH_RATE_LIMIT", "2.5")
	t.Setenv("NOTIFICATION_LOG_LIMIT", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, time.Hour, cfg.JWTAccessExpiry)
	assert.True(t, cfg.MinIOUseSSL)
	assert.Equal(t, 2.5, cfg.AuthRateLimit)
	assert.Equal(t, 200, cfg.NotificationLogLimit)
}

func TestLocation_FallsBackToUTC(t *testing.T) {
	cfg := &Config{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.Location())
}
