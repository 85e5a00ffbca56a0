package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/archmap/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the latest graph to AI agents over MCP (stdio)",
	Long: `Starts an MCP server on stdin/stdout exposing the server's current
dependency graph through the get_graph_summary, get_node, list_nodes and
get_legend tools. Every tool call reads the latest report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		client, err := newClient(cfg, logger)
		if err != nil {
			return err
		}

		mcpserver.Version = Version
		srv := mcpserver.NewServer(client)

		fmt.Fprintf(os.Stderr, "archmap MCP server reading from %s\n", cfg.Client.URL)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
