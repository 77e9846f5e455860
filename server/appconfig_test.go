package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	c := loadConfig()
	assert.Equal(t, ":8080", c.Listen)
	assert.Equal(t, "buntdb", c.Store.Backend)
	assert.Equal(t, "local", c.Env)
	assert.Equal(t, 30*24*time.Hour, c.CredentialTTL())
	assert.Equal(t, 10*time.Minute, c.NonceTTL())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("ADMIN_BACKEND__BASE_URL", "https://api.termle.example")
	t.Setenv("ADMIN_STORE__BACKEND", "valkey")
	t.Setenv("ADMIN_LOG__LEVEL", "debug")
	t.Setenv("APP_ENV", "prod")

	c := loadConfig()
	assert.Equal(t, "https://api.termle.example", c.Backend.BaseURL)
	assert.Equal(t, "valkey", c.Store.Backend)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "prod", c.Env)
}

func TestParseTTL(t *testing.T) {
	def := 10 * time.Minute
	assert.Equal(t, def, parseTTL("", def))
	assert.Equal(t, def, parseTTL("junk", def))
	assert.Equal(t, def, parseTTL("-5m", def))
	assert.Equal(t, 45*time.Second, parseTTL("45s", def))
	assert.Equal(t, 72*time.Hour, parseTTL("72h", def))
}
