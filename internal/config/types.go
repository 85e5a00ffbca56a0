package config

import "time"

// Config is the top-level archmap configuration, corresponding to .archmap.yml.
type Config struct {
	Log    LogConfig    `yaml:"log" koanf:"log"`
	Server ServerConfig `yaml:"server" koanf:"server"`
	Client ClientConfig `yaml:"client" koanf:"client"`
	View   ViewConfig   `yaml:"view" koanf:"view"`
}

// LogConfig controls logger verbosity.
type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
}

// ServerConfig holds settings for the report server.
type ServerConfig struct {
	Port              int           `yaml:"port" koanf:"port"`
	AllowAllOrigins   bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval" koanf:"heartbeat_interval"`
	SubscriberBuffer  int           `yaml:"subscriber_buffer" koanf:"subscriber_buffer"`
}

// ClientConfig holds settings for the sync client and the producer commands.
type ClientConfig struct {
	URL            string        `yaml:"url" koanf:"url"`
	PollInterval   time.Duration `yaml:"poll_interval" koanf:"poll_interval"`
	FallbackWindow time.Duration `yaml:"fallback_window" koanf:"fallback_window"`
	RequestTimeout time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
}

// ViewConfig holds camera and layout defaults for the graph view.
type ViewConfig struct {
	CameraStandoff   float64 `yaml:"camera_standoff" koanf:"camera_standoff"`
	CameraDurationMS int     `yaml:"camera_duration_ms" koanf:"camera_duration_ms"`
	DefaultLayout    string  `yaml:"default_layout" koanf:"default_layout"`
}
