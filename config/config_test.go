package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "giftlink-api", cfg.AppName)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "giftlink", cfg.DBName)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 30*time.Second, cfg.SearchCacheTTL)
	assert.Empty(t, cfg.JWTSecret)
	assert.Equal(t, "gifts", cfg.ESGiftsIndex)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("MAIL_SEND_ENABLED", "false")
	t.Setenv("DB_MAX_CONNS", "25")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.False(t, cfg.MailSendEnabled)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "not-a-duration")
	t.Setenv("DB_MAX_CONNS", "lots")
	t.Setenv("MAIL_SEND_ENABLED", "definitely")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.True(t, cfg.MailSendEnabled)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		DBUser: "app", DBPassword: "pw", DBHost: "localhost",
		DBPort: "5432", DBName: "giftlink", DBSSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:pw@localhost:5432/giftlink?sslmode=disable", cfg.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " https://a.example , https://b.example,,"}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())

	cfg = &Config{}
	assert.Empty(t, cfg.CORSOrigins())
}

func TestESAddrs(t *testing.T) {
	cfg := &Config{ElasticsearchAddrs: "http://localhost:9200, http://other:9200"}
	assert.Equal(t, []string{"http://localhost:9200", "http://other:9200"}, cfg.ESAddrs())
}
