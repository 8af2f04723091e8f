package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

// Config holds the storefront settings. Values come from, in rising
// priority: built-in defaults, the TOML file named by CONFIG_FILE, and the
// environment (including a .env file).
type Config struct {
	APIURL        string        `koanf:"api_url"`
	AuthURL       string        `koanf:"auth_url"`
	Port          string        `koanf:"app_port"`
	SessionSecret string        `koanf:"session_secret"`
	SessionTTL    time.Duration `koanf:"session_ttl"`
	LoginURL      string        `koanf:"login_url"`

	LogLevel     string `koanf:"log_level"`
	LogFile      string `koanf:"log_file"`
	LogFileSize  int    `koanf:"log_file_size"`
	LogFileCount int    `koanf:"log_file_count"`
	LogCompress  bool   `koanf:"log_compress"`

	BackendTimeout time.Duration `koanf:"backend_timeout"`
	BackendRetries int           `koanf:"backend_retries"`
	BackendRPS     float64       `koanf:"backend_rps"`

	DefaultPageSize   int           `koanf:"default_page_size"`
	MaxPageSize       int           `koanf:"max_page_size"`
	CategoryCacheTTL  time.Duration `koanf:"category_cache_ttl"`
	MedicineCacheTTL  time.Duration `koanf:"medicine_cache_ttl"`
	MedicineCacheSize int           `koanf:"medicine_cache_size"`
}

// MinSecretLen is the shortest SESSION_SECRET accepted for signing the
// session cache cookie.
const MinSecretLen = 32

var defaults = map[string]interface{}{
	"app_port":            "8080",
	"session_ttl":         "2m",
	"login_url":           "/login",
	"log_level":           "info",
	"log_file":            "storefront.log",
	"log_file_size":       10,
	"log_file_count":      5,
	"log_compress":        false,
	"backend_timeout":     "10s",
	"backend_retries":     2,
	"backend_rps":         50.0,
	"default_page_size":   10,
	"max_page_size":       100,
	"category_cache_ttl":  "5m",
	"medicine_cache_ttl":  "1m",
	"medicine_cache_size": 512,
}

// Load reads the configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config decode: %w", err)
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.AuthURL = strings.TrimRight(cfg.AuthURL, "/")
	return &cfg, cfg.Validate()
}

// envKey maps API_URL to api_url and skips variables the storefront does
// not read.
func envKey(name string) string {
	key := strings.ToLower(name)
	if _, ok := defaults[key]; ok {
		return key
	}
	switch key {
	case "api_url", "auth_url", "session_secret":
		return key
	}
	return ""
}

// Validate checks the settings the storefront cannot run without.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{"API_URL": c.APIURL, "AUTH_URL": c.AuthURL} {
		if raw == "" {
			return fmt.Errorf("config: %s is required", name)
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config: %s must be an absolute http(s) URL, got %q", name, raw)
		}
	}
	if len(c.SessionSecret) < MinSecretLen {
		return fmt.Errorf("config: SESSION_SECRET must be at least %d bytes", MinSecretLen)
	}
	if c.DefaultPageSize <= 0 || c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("config: page sizes must satisfy 0 < DEFAULT_PAGE_SIZE <= MAX_PAGE_SIZE")
	}
	if c.BackendRPS <= 0 {
		return fmt.Errorf("config: BACKEND_RPS must be positive")
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string { return ":" + c.Port }
