package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write tmp config: %v", err)
	}
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	ResetConfigForTest()
	path := writeConfig(t, `{
		"server": {"host": "localhost", "port": 8080, "subpath": "/news"},
		"api": {"base_url": "http://localhost:8000"},
		"redis": {"addr": "localhost:6379", "db": 2},
		"display": {"reflow_width": 40, "default_level": 200}
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 || cfg.Server.Subpath != "/news" {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("unexpected api base url %q", cfg.API.BaseURL)
	}
	if cfg.API.Path != "/api/summarize" {
		t.Errorf("default api path not kept, got %q", cfg.API.Path)
	}
	if cfg.Display.ReflowWidth != 40 || cfg.Display.DefaultLevel != 200 {
		t.Errorf("unexpected display config: %+v", cfg.Display)
	}
	if GetConfig() != cfg {
		t.Errorf("GetConfig should return the loaded singleton")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	ResetConfigForTest()
	_, err := LoadConfig("no_such_config.json")
	if err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestLoadConfigOrDefault_MissingFile(t *testing.T) {
	ResetConfigForTest()
	cfg, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("expected defaults, got error: %v", err)
	}
	if cfg.Display.ReflowWidth != 30 || cfg.API.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	ResetConfigForTest()
	path := writeConfig(t, `{this is not json}`)
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("expected error for malformed JSON")
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	bad := []string{
		`{"api": {"base_url": "localhost:8000"}}`,
		`{"display": {"reflow_width": 0}}`,
		`{"display": {"default_level": 150}}`,
	}
	for _, body := range bad {
		ResetConfigForTest()
		if _, err := LoadConfig(writeConfig(t, body)); err == nil {
			t.Errorf("expected validation error for %s", body)
		}
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	ResetConfigForTest()
	t.Setenv("NEWSUM_API_BASE_URL", "http://localhost:9000")
	t.Setenv("NEWSUM_REFLOW_WIDTH", "25")
	t.Setenv("NEWSUM_PREVIEW", "false")

	cfg, err := LoadConfig(writeConfig(t, `{"api": {"base_url": "http://127.0.0.1:8000"}}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:9000" {
		t.Errorf("env should override base url, got %q", cfg.API.BaseURL)
	}
	if cfg.Display.ReflowWidth != 25 {
		t.Errorf("env should override reflow width, got %d", cfg.Display.ReflowWidth)
	}
	if cfg.Preview.Enabled {
		t.Errorf("env should disable preview")
	}
}
