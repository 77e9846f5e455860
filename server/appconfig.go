package server

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// AppConfig defines application configuration loaded from files and environment.
type AppConfig struct {
	Env     string        `koanf:"env"`
	Listen  string        `koanf:"listen"`
	Backend BackendConfig `koanf:"backend"`
	OAuth   OAuthConfig   `koanf:"oauth"`
	Store   StoreConfig   `koanf:"store"`
	Log     LogConfig     `koanf:"log"`
}

type BackendConfig struct {
	BaseURL string `koanf:"base_url"`
}

type OAuthConfig struct {
	// RedirectURL is the fixed return address registered with the backend
	// for the Google round trip, e.g. https://admin.termle.example/auth/callback.
	RedirectURL string `koanf:"redirect_url"`
}

type StoreConfig struct {
	// Backend selects the credential/nonce store: "buntdb" or "valkey".
	Backend       string `koanf:"backend"`
	Path          string `koanf:"path"`
	ValkeyAddr    string `koanf:"valkey_addr"`
	ValkeyPrefix  string `koanf:"valkey_prefix"`
	CredentialTTL string `koanf:"credential_ttl"`
	NonceTTL      string `koanf:"nonce_ttl"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

var (
	cfgOnce sync.Once
	cfgInst *AppConfig
)

// GetConfig loads and returns the singleton AppConfig. Loading order:
// 1) config/config.yaml (optional)
// 2) config/config.<APP_ENV>.yaml (optional), APP_ENV defaults to "local"
// 3) Environment variables with prefix ADMIN_ mapped using __ as nested
// separator, e.g. ADMIN_BACKEND__BASE_URL.
func GetConfig() *AppConfig {
	cfgOnce.Do(func() {
		cfgInst = loadConfig()
	})
	return cfgInst
}

func loadConfig() *AppConfig {
	k := koanf.New(".")
	// Config directory (CONFIG_DIR) default ./config
	configDir := os.Getenv("CONFIG_DIR")
	if configDir == "" {
		configDir = "config"
	}
	// Whether to load files (default: disabled to keep tests isolated)
	loadFiles := strings.EqualFold(os.Getenv("APP_CONFIG_FILES"), "1") || strings.EqualFold(os.Getenv("APP_CONFIG_FILES"), "true")
	if loadFiles {
		base := filepath.Join(configDir, "config.yaml")
		if _, err := os.Stat(base); err == nil {
			if err := k.Load(file.Provider(base), yaml.Parser()); err != nil {
				log.Printf("config: failed loading base: %v", err)
			}
		}
	}
	envName := os.Getenv("APP_ENV")
	if envName == "" {
		envName = "local"
	}
	if loadFiles {
		envFile := filepath.Join(configDir, "config."+envName+".yaml")
		if _, err := os.Stat(envFile); err == nil {
			if err := k.Load(file.Provider(envFile), yaml.Parser()); err != nil {
				log.Printf("config: failed loading env file: %v", err)
			}
		}
	}
	// ADMIN_BACKEND__BASE_URL -> backend.base_url
	_ = k.Load(env.Provider("ADMIN_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "ADMIN_")), "__", ".")
	}), nil)

	c := defaultConfig()
	if err := k.Unmarshal("", c); err != nil {
		log.Printf("config: unmarshal error: %v", err)
	}
	if c.Env == "" {
		c.Env = envName
	}
	return c
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Listen:  ":8080",
		Backend: BackendConfig{BaseURL: "http://localhost:8000"},
		OAuth:   OAuthConfig{RedirectURL: "http://localhost:8080/auth/callback"},
		Store:   StoreConfig{Backend: "buntdb", Path: "admin-console.db"},
		Log:     LogConfig{Level: "info"},
	}
}

// CredentialTTL returns the configured credential lifetime (default 30 days).
func (c *AppConfig) CredentialTTL() time.Duration {
	return parseTTL(c.Store.CredentialTTL, 30*24*time.Hour)
}

// NonceTTL returns the configured nonce lifetime (default 10 minutes),
// bounding how long a login redirect may stay outstanding.
func (c *AppConfig) NonceTTL() time.Duration {
	return parseTTL(c.Store.NonceTTL, 10*time.Minute)
}

func parseTTL(s string, def time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		log.Printf("config: invalid ttl %q, using default %s", s, def)
		return def
	}
	return d
}
