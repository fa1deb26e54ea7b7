package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	if config.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", config.Server.Port)
	}
	if config.Clients.Registry.BaseURL != "https://lod.onderwijsregistratie.nl/api/rio/v2" {
		t.Errorf("default registry base URL = %q", config.Clients.Registry.BaseURL)
	}
	if got := config.Clients.Registry.GetTimeout(); got != 10*time.Second {
		t.Errorf("default registry timeout = %v, want 10s", got)
	}
	if config.Logging.Level != "info" {
		t.Errorf("default log level = %q, want info", config.Logging.Level)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rioview.toml")
	content := `
environment = "production"

[server]
port = 9090

[clients.registry]
base_url = "http://registry.test/api/v2"
timeout = "5s"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", config.Server.Port)
	}
	if config.Clients.Registry.BaseURL != "http://registry.test/api/v2" {
		t.Errorf("registry base URL = %q", config.Clients.Registry.BaseURL)
	}
	if got := config.Clients.Registry.GetTimeout(); got != 5*time.Second {
		t.Errorf("registry timeout = %v, want 5s", got)
	}
	if !config.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
	// Host untouched by the file keeps its default
	if config.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q, want default", config.Server.Host)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig("/nonexistent/rioview.toml")
	if err != nil {
		t.Fatalf("LoadConfig returned error for missing file: %v", err)
	}
	if config.Server.Port != 8080 {
		t.Errorf("port = %d, want default 8080", config.Server.Port)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RIOVIEW_PORT", "7070")
	t.Setenv("RIOVIEW_LOG_LEVEL", "debug")
	t.Setenv("RIOVIEW_REGISTRY_URL", "http://mock.registry")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", config.Server.Port)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", config.Logging.Level)
	}
	if config.Clients.Registry.BaseURL != "http://mock.registry" {
		t.Errorf("registry base URL = %q", config.Clients.Registry.BaseURL)
	}
}

func TestRegistryConfig_GetTimeout_Invalid(t *testing.T) {
	c := RegistryConfig{Timeout: "not-a-duration"}
	if got := c.GetTimeout(); got != 10*time.Second {
		t.Errorf("GetTimeout() = %v, want 10s fallback", got)
	}
}
