package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Server.Port)
	}
	if cfg.Server.SubscriberBuffer != 1 {
		t.Errorf("expected default subscriber_buffer 1, got %d", cfg.Server.SubscriberBuffer)
	}
	if cfg.View.DefaultLayout != "force" {
		t.Errorf("expected default layout %q, got %q", "force", cfg.View.DefaultLayout)
	}
	if cfg.View.CameraStandoff != 40 {
		t.Errorf("expected camera standoff 40, got %v", cfg.View.CameraStandoff)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.archmap.yml")

	original := DefaultConfig()
	original.Server.Port = 4100
	original.Server.AllowAllOrigins = true
	original.Client.URL = "http://analyzer.local:4100"
	original.Client.PollInterval = 5 * time.Second
	original.View.DefaultLayout = "radialout"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Server.Port != original.Server.Port {
		t.Errorf("port: got %d, want %d", loaded.Server.Port, original.Server.Port)
	}
	if !loaded.Server.AllowAllOrigins {
		t.Error("allow_all_origins: got false, want true")
	}
	if loaded.Client.URL != original.Client.URL {
		t.Errorf("url: got %q, want %q", loaded.Client.URL, original.Client.URL)
	}
	if loaded.Client.PollInterval != original.Client.PollInterval {
		t.Errorf("poll_interval: got %v, want %v", loaded.Client.PollInterval, original.Client.PollInterval)
	}
	if loaded.View.DefaultLayout != original.View.DefaultLayout {
		t.Errorf("default_layout: got %q, want %q", loaded.View.DefaultLayout, original.View.DefaultLayout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("ARCHMAP_SERVER__PORT", "4555")
	t.Setenv("ARCHMAP_CLIENT__POLL_INTERVAL", "750ms")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server.Port != 4555 {
		t.Errorf("env override failed: got port %d, want 4555", loaded.Server.Port)
	}
	if loaded.Client.PollInterval != 750*time.Millisecond {
		t.Errorf("env override failed: got poll interval %v, want 750ms", loaded.Client.PollInterval)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	if err := os.WriteFile(path, []byte("server: [port"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero subscriber buffer", func(c *Config) { c.Server.SubscriberBuffer = 0 }, true},
		{"negative heartbeat", func(c *Config) { c.Server.HeartbeatInterval = -time.Second }, true},
		{"empty client url", func(c *Config) { c.Client.URL = "" }, true},
		{"zero poll interval", func(c *Config) { c.Client.PollInterval = 0 }, true},
		{"fallback shorter than poll", func(c *Config) { c.Client.FallbackWindow = time.Second }, true},
		{"zero request timeout", func(c *Config) { c.Client.RequestTimeout = 0 }, true},
		{"zero standoff", func(c *Config) { c.View.CameraStandoff = 0 }, true},
		{"unknown layout", func(c *Config) { c.View.DefaultLayout = "spiral" }, true},
		{"dag layout", func(c *Config) { c.View.DefaultLayout = "zout" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"3000", 3000, false},
		{" 8080 ", 8080, false},
		{"0", 0, true},
		{"65536", 0, true},
		{"http", 0, true},
	}
	for _, tt := range tests {
		got, err := parsePort(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePort(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePort(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
