package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// envPrefix is stripped from environment overrides. A double underscore
// separates nesting levels: ARCHMAP_SERVER__PORT -> server.port.
const envPrefix = "ARCHMAP_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ARCHMAP_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validLayouts is the set of recognized layout preset ids.
var validLayouts = map[string]bool{
	"force":     true,
	"td":        true,
	"lr":        true,
	"radialout": true,
	"zout":      true,
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Log.Level != "" && !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error, fatal", c.Log.Level)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.HeartbeatInterval < 0 {
		return fmt.Errorf("server.heartbeat_interval must be non-negative")
	}
	if c.Server.SubscriberBuffer < 1 {
		return fmt.Errorf("server.subscriber_buffer must be at least 1")
	}

	if c.Client.URL == "" {
		return fmt.Errorf("client.url is required")
	}
	if c.Client.PollInterval <= 0 {
		return fmt.Errorf("client.poll_interval must be positive")
	}
	if c.Client.FallbackWindow < c.Client.PollInterval {
		return fmt.Errorf("client.fallback_window must be at least client.poll_interval")
	}
	if c.Client.RequestTimeout <= 0 {
		return fmt.Errorf("client.request_timeout must be positive")
	}

	if c.View.CameraStandoff <= 0 {
		return fmt.Errorf("view.camera_standoff must be positive")
	}
	if c.View.CameraDurationMS < 0 {
		return fmt.Errorf("view.camera_duration_ms must be non-negative")
	}
	if !validLayouts[c.View.DefaultLayout] {
		return fmt.Errorf("invalid view.default_layout %q: must be one of force, td, lr, radialout, zout", c.View.DefaultLayout)
	}

	return nil
}
