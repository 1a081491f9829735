package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pkgconfig "github.com/Skotchmaster/food_order/pkg/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := LoadConfig()
	require.Equal(t, 5*time.Minute, cfg.TokenTTL)
	require.Equal(t, 60*time.Second, cfg.AdvanceInterval)
	require.Equal(t, 100, cfg.NotifyQueue)
	require.Equal(t, "no-reply@destradigital.com", cfg.MailFrom)
	require.Equal(t, ":8080", cfg.Addr())
	require.Nil(t, cfg.KafkaBrokers)
	require.Contains(t, pkgconfig.Missing(cfg.Required()), "DATABASE_URL")
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("TOKEN_TTL", "90")
	t.Setenv("ADVANCE_AFTER", "2m")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("SERVER_PORT", "127.0.0.1:9000")

	cfg := LoadConfig()
	require.Equal(t, 90*time.Second, cfg.TokenTTL)
	require.Equal(t, 2*time.Minute, cfg.AdvanceAfter)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, "127.0.0.1:9000", cfg.Addr())
}
