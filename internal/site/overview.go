// Package site renders a one-page overview of a report: summary tables,
// the most depended-on modules and a Mermaid flowchart, as Markdown or as
// a standalone HTML page.
package site

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/ziadkadry99/archmap/internal/diagrams"
	"github.com/ziadkadry99/archmap/internal/graph"
	"github.com/ziadkadry99/archmap/internal/report"
)

// topModules is how many modules the hub table lists.
const topModules = 10

// hub is a module ranked by how many others depend on it.
type hub struct {
	node *graph.RenderNode
	in   int
	out  int
}

// Markdown renders the overview of r laid out for dir.
func Markdown(r *report.Report, dir diagrams.Direction) string {
	g := graph.Build(r)
	name := "Untitled project"
	if r != nil && r.ProjectName != "" {
		name = r.ProjectName
	}
	sum := graph.Summarize(name, g)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeText(name))
	fmt.Fprintf(&b, "%d modules, %d dependencies", sum.Nodes, sum.Links)
	if sum.TotalLOC > 0 {
		fmt.Fprintf(&b, ", %g lines of code", sum.TotalLOC)
	}
	b.WriteString(".\n\n")

	writeRoles(&b, g, sum)
	writeHubs(&b, g)
	writeDangling(&b, g)

	b.WriteString("## Dependency graph\n\n```mermaid\n")
	b.WriteString(diagrams.Flowchart(g, dir))
	b.WriteString("```\n\n")

	b.WriteString("## Summary\n\n```json\n")
	data, _ := json.MarshalIndent(sum, "", "  ")
	b.Write(data)
	b.WriteString("\n```\n")
	return b.String()
}

func writeRoles(b *strings.Builder, g *graph.Graph, sum graph.Summary) {
	loc := map[graph.Role]float64{}
	for _, n := range g.Nodes {
		loc[n.Type] += n.LOC
	}

	b.WriteString("## Roles\n\n| Role | Modules | Lines of code |\n|---|---:|---:|\n")
	entries := graph.Legend()
	entries = append(entries, graph.LegendEntry{Role: graph.RoleUnknown, Label: "Unknown"})
	for _, e := range entries {
		if sum.Roles[e.Role] == 0 {
			continue
		}
		fmt.Fprintf(b, "| %s | %d | %g |\n", e.Label, sum.Roles[e.Role], loc[e.Role])
	}
	b.WriteString("\n")
}

func writeHubs(b *strings.Builder, g *graph.Graph) {
	hubs := make([]hub, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		in, out := graph.Degree(n.ID, g.Links)
		if in > 0 {
			hubs = append(hubs, hub{node: n, in: in, out: out})
		}
	}
	if len(hubs) == 0 {
		return
	}
	sort.SliceStable(hubs, func(i, j int) bool { return hubs[i].in > hubs[j].in })
	if len(hubs) > topModules {
		hubs = hubs[:topModules]
	}

	b.WriteString("## Most depended-on modules\n\n| Module | Role | Dependents | Dependencies |\n|---|---|---:|---:|\n")
	for _, h := range hubs {
		fmt.Fprintf(b, "| `%s` | %s | %d | %d |\n", h.node.ID, h.node.Type, h.in, h.out)
	}
	b.WriteString("\n")
}

func writeDangling(b *strings.Builder, g *graph.Graph) {
	known := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		known[n.ID] = true
	}
	var missing []string
	seen := map[string]bool{}
	for _, l := range g.Links {
		for _, id := range []string{report.ResolveID(l.Source), report.ResolveID(l.Target)} {
			if !known[id] && !seen[id] {
				seen[id] = true
				missing = append(missing, id)
			}
		}
	}
	if len(missing) == 0 {
		return
	}
	b.WriteString("## Unresolved link endpoints\n\n")
	for _, id := range missing {
		fmt.Fprintf(b, "- `%s`\n", id)
	}
	b.WriteString("\n")
}

// escapeText keeps a project name from being read as Markdown syntax.
func escapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "<", "&lt;", ">", "&gt;", "#", `\#`, "|", `\|`)
	return r.Replace(s)
}
