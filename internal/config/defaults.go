package config

import "time"

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = ".archmap.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Server: ServerConfig{
			Port:              3000,
			AllowAllOrigins:   false,
			HeartbeatInterval: 25 * time.Second,
			SubscriberBuffer:  1,
		},
		Client: ClientConfig{
			URL:            "http://localhost:3000",
			PollInterval:   3 * time.Second,
			FallbackWindow: 30 * time.Second,
			RequestTimeout: 10 * time.Second,
		},
		View: ViewConfig{
			CameraStandoff:   40,
			CameraDurationMS: 1000,
			DefaultLayout:    "force",
		},
	}
}
