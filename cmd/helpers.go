package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/archmap/internal/config"
	"github.com/ziadkadry99/archmap/internal/logging"
	"github.com/ziadkadry99/archmap/internal/report"
	"github.com/ziadkadry99/archmap/internal/syncclient"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `archmap init` to create a config file", err)
	}
	if serverURL != "" {
		cfg.Client.URL = strings.TrimRight(serverURL, "/")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// setup loads the config and attaches a stderr logger to the command's
// context. Stdout stays free for command output and the MCP protocol.
func setup(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	level := logging.ParseLevel(cfg.Log.Level)
	if verbose {
		level = log.DebugLevel
	}
	logger := logging.New(os.Stderr, level)
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	return cfg, logger, nil
}

// newClient builds a sync client for the configured server.
func newClient(cfg *config.Config, logger *log.Logger) (*syncclient.Client, error) {
	return syncclient.New(cfg.Client.URL,
		syncclient.WithLogger(logger),
		syncclient.WithPolling(cfg.Client.PollInterval, cfg.Client.FallbackWindow),
		syncclient.WithRequestTimeout(cfg.Client.RequestTimeout),
	)
}

// readReport reads and validates a report file.
func readReport(path string) (*report.Report, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading report: %w", err)
	}
	r, err := report.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, data, nil
}
