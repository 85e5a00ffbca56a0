package mcp

import "github.com/mark3labs/mcp-go/mcp"

// getGraphSummaryTool defines the get_graph_summary MCP tool.
var getGraphSummaryTool = mcp.NewTool("get_graph_summary",
	mcp.WithDescription("Summarize the latest dependency graph: project name, node and link counts, nodes per role and total lines of code."),
)

// getNodeTool defines the get_node MCP tool.
var getNodeTool = mcp.NewTool("get_node",
	mcp.WithDescription("Get one module of the dependency graph with its role, size and the modules it depends on and is depended on by."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Node id, the file path as it appears in the report"),
	),
)

// listNodesTool defines the list_nodes MCP tool.
var listNodesTool = mcp.NewTool("list_nodes",
	mcp.WithDescription("List modules of the dependency graph, optionally filtered by role."),
	mcp.WithString("role",
		mcp.Description("Only list nodes with this role"),
		mcp.Enum("entry", "logic", "command", "ui", "data", "config", "unknown"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of nodes to return (default 50)"),
	),
)

// getLegendTool defines the get_legend MCP tool.
var getLegendTool = mcp.NewTool("get_legend",
	mcp.WithDescription("Get the role legend: each role with its label and colour."),
)
