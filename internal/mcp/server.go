package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/archmap/internal/report"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Fetcher reads the latest report from a running archmap server.
type Fetcher interface {
	Fetch(ctx context.Context) (*report.Report, error)
}

// Server wraps an MCP server that exposes the latest dependency graph.
type Server struct {
	src Fetcher
	mcp *server.MCPServer
}

// NewServer creates a new MCP server reading through src.
func NewServer(src Fetcher) *Server {
	s := &Server{src: src}

	s.mcp = server.NewMCPServer(
		"archmap",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(getGraphSummaryTool, s.handleGetGraphSummary)
	s.mcp.AddTool(getNodeTool, s.handleGetNode)
	s.mcp.AddTool(listNodesTool, s.handleListNodes)
	s.mcp.AddTool(getLegendTool, s.handleGetLegend)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
