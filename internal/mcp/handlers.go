package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/archmap/internal/graph"
	"github.com/ziadkadry99/archmap/internal/report"
)

const noReport = "No report has been submitted yet. Run `archmap push FILE` against the server first."

// current fetches the latest report and builds its graph. A nil report
// means none is stored.
func (s *Server) current(ctx context.Context) (*report.Report, *graph.Graph, error) {
	r, err := s.src.Fetch(ctx)
	if err != nil {
		return nil, nil, err
	}
	if r == nil {
		return nil, nil, nil
	}
	return r, graph.Build(r), nil
}

// handleGetGraphSummary describes the latest graph.
func (s *Server) handleGetGraphSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, g, err := s.current(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch report: %v", err)), nil
	}
	if r == nil {
		return mcp.NewToolResultText(noReport), nil
	}
	return mcp.NewToolResultText(formatSummary(graph.Summarize(r.ProjectName, g))), nil
}

// handleGetNode returns the node card for one id.
func (s *Server) handleGetNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	r, g, err := s.current(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch report: %v", err)), nil
	}
	if r == nil {
		return mcp.NewToolResultText(noReport), nil
	}

	d := graph.Detail(g, id)
	if d == nil {
		return mcp.NewToolResultError(fmt.Sprintf("No node %q in project %q.", id, r.ProjectName)), nil
	}
	return mcp.NewToolResultText(formatDetail(d)), nil
}

// handleListNodes lists nodes, optionally by role.
func (s *Server) handleListNodes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	role := graph.Role(request.GetString("role", ""))
	limit := request.GetInt("limit", 50)
	if limit <= 0 {
		limit = 50
	}

	r, g, err := s.current(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch report: %v", err)), nil
	}
	if r == nil {
		return mcp.NewToolResultText(noReport), nil
	}

	var sb strings.Builder
	shown, matched := 0, 0
	for _, n := range g.Nodes {
		if role != "" && n.Type != role {
			continue
		}
		matched++
		if shown >= limit {
			continue
		}
		shown++
		sb.WriteString(fmt.Sprintf("- %s (%s", n.ID, n.Type))
		if n.LOC > 0 {
			sb.WriteString(fmt.Sprintf(", %g LOC", n.LOC))
		}
		sb.WriteString(")\n")
	}
	if matched == 0 {
		return mcp.NewToolResultText("No matching nodes."), nil
	}

	header := fmt.Sprintf("%d node(s)", matched)
	if shown < matched {
		header += fmt.Sprintf(", showing first %d", shown)
	}
	return mcp.NewToolResultText(header + ":\n" + sb.String()), nil
}

// handleGetLegend lists the roles in display order.
func (s *Server) handleGetLegend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	for _, e := range graph.Legend() {
		sb.WriteString(fmt.Sprintf("- %s: %s %s\n", e.Role, e.Label, e.Color))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatSummary renders a summary for agent consumption.
func formatSummary(sum graph.Summary) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Project: %s\n", sum.ProjectName))
	sb.WriteString(fmt.Sprintf("Nodes: %d\n", sum.Nodes))
	sb.WriteString(fmt.Sprintf("Links: %d\n", sum.Links))
	if sum.TotalLOC > 0 {
		sb.WriteString(fmt.Sprintf("Lines of code: %g\n", sum.TotalLOC))
	}

	roles := make([]string, 0, len(sum.Roles))
	for role := range sum.Roles {
		roles = append(roles, string(role))
	}
	sort.Strings(roles)
	if len(roles) > 0 {
		sb.WriteString("\nRoles:\n")
		for _, role := range roles {
			sb.WriteString(fmt.Sprintf("- %s: %d\n", role, sum.Roles[graph.Role(role)]))
		}
	}
	return sb.String()
}

// formatDetail renders a node card for agent consumption.
func formatDetail(d *graph.NodeDetail) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Node: %s\n", d.Node.ID))
	sb.WriteString(fmt.Sprintf("Name: %s\n", d.Node.Name))
	sb.WriteString(fmt.Sprintf("Role: %s\n", d.Node.Type))
	if d.Node.LOC > 0 {
		sb.WriteString(fmt.Sprintf("Lines of code: %g\n", d.Node.LOC))
	}
	if d.Node.FileSize > 0 {
		sb.WriteString(fmt.Sprintf("File size: %g bytes\n", d.Node.FileSize))
	}
	sb.WriteString(fmt.Sprintf("Incoming links: %d\n", d.In))
	sb.WriteString(fmt.Sprintf("Outgoing links: %d\n", d.Out))

	writeList := func(title string, ids []string) {
		if len(ids) == 0 {
			return
		}
		sb.WriteString("\n" + title + ":\n")
		for _, id := range ids {
			sb.WriteString("- " + id + "\n")
		}
	}
	writeList("Depends on", d.DependsOn)
	writeList("Depended on by", d.Dependents)
	return sb.String()
}
