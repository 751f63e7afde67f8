package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Host    string `json:"host"`
		Port    int    `json:"port"`
		Subpath string `json:"subpath"`
	} `json:"server"`
	API struct {
		BaseURL        string `json:"base_url"`
		Path           string `json:"path"`
		TimeoutSeconds int    `json:"timeout_seconds"`
	} `json:"api"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	View struct {
		TTLMinutes int `json:"ttl_minutes"`
	} `json:"view"`
	Display struct {
		ReflowWidth  int `json:"reflow_width"`
		DefaultLevel int `json:"default_level"`
	} `json:"display"`
	Preview struct {
		Enabled        bool   `json:"enabled"`
		UserAgent      string `json:"user_agent"`
		TimeoutSeconds int    `json:"timeout_seconds"`
		MaxPageSizeMB  int    `json:"max_page_size_mb"`
		WaitMillis     int    `json:"wait_ms"`
	} `json:"preview"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	c := &Config{}
	c.Server.Host = "127.0.0.1"
	c.Server.Port = 5173
	c.API.BaseURL = "http://127.0.0.1:8000"
	c.API.Path = "/api/summarize"
	c.View.TTLMinutes = 60
	c.Display.ReflowWidth = 30
	c.Display.DefaultLevel = 100
	c.Preview.Enabled = true
	c.Preview.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	c.Preview.TimeoutSeconds = 10
	c.Preview.MaxPageSizeMB = 5
	c.Preview.WaitMillis = 1500
	return c
}

// LoadConfig reads config.json from disk (singleton). Values in the file are
// layered over Default, then NEWSUM_* environment variables (and .env) win.
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		cfg, cfgErr = load(path, false)
	})
	return cfg, cfgErr
}

// LoadConfigOrDefault is LoadConfig but a missing file falls back to Default.
func LoadConfigOrDefault(path string) (*Config, error) {
	once.Do(func() {
		cfg, cfgErr = load(path, true)
	})
	return cfg, cfgErr
}

func load(path string, allowMissing bool) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	c := Default()
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("invalid config format: %w", err)
		}
	case allowMissing && errors.Is(err, os.ErrNotExist):
		log.Printf("[Config] %s not found, using defaults", path)
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("NEWSUM_API_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("NEWSUM_HOST"); v != "" {
		c.Server.Host = v
	}
	if v, ok := envInt("NEWSUM_PORT"); ok {
		c.Server.Port = v
	}
	if v := os.Getenv("NEWSUM_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("NEWSUM_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v, ok := envInt("NEWSUM_REFLOW_WIDTH"); ok {
		c.Display.ReflowWidth = v
	}
	if v := os.Getenv("NEWSUM_PREVIEW"); v != "" {
		c.Preview.Enabled = v == "true" || v == "1" || v == "yes"
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[Config] ignoring %s=%q: not a number", key, v)
		return 0, false
	}
	return n, true
}

// Validate checks the fields the client cannot run without.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	if c.Display.ReflowWidth <= 0 {
		return errors.New("display.reflow_width must be positive")
	}
	switch c.Display.DefaultLevel {
	case 100, 200, 300:
	default:
		return fmt.Errorf("display.default_level must be 100, 200 or 300, got %d", c.Display.DefaultLevel)
	}
	return nil
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
