package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/archmap/internal/config"
)

var (
	cfgFile   string
	verbose   bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "archmap",
	Short: "Live 3D dependency map of your codebase",
	Long: `archmap keeps the latest dependency report of a project on a small HTTP
server and pushes every update to connected viewers. Producers submit
reports with push, viewers follow them over SSE or WebSocket, and the
render graph can be inspected offline, exported to SQLite or served to
AI agents via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "", "report server URL (overrides client.url)")
}
