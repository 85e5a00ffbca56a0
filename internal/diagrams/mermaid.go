// Package diagrams renders the dependency graph as a Mermaid flowchart.
package diagrams

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/archmap/internal/graph"
	"github.com/ziadkadry99/archmap/internal/report"
)

// Direction is a Mermaid flowchart direction.
type Direction string

const (
	TopDown   Direction = "TD"
	LeftRight Direction = "LR"
)

// DirectionFor maps a layout preset onto a flowchart direction. Presets
// without a flat equivalent read best top-down.
func DirectionFor(layout string) Direction {
	if layout == "lr" {
		return LeftRight
	}
	return TopDown
}

// Flowchart renders g. Nodes keep report order and carry a class per
// role. Link endpoints that name no node are drawn as unknown nodes so the
// edge stays visible.
func Flowchart(g *graph.Graph, dir Direction) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("graph %s\n", dir))

	ids := make(map[string]string, len(g.Nodes))
	used := map[graph.Role]bool{}
	declare := func(id, label string, role graph.Role) string {
		if mid, ok := ids[id]; ok {
			return mid
		}
		mid := fmt.Sprintf("n%d", len(ids))
		ids[id] = mid
		used[role] = true
		b.WriteString(fmt.Sprintf("    %s[\"%s\"]:::%s\n", mid, escapeMermaid(label), role))
		return mid
	}

	for _, n := range g.Nodes {
		declare(n.ID, n.Name, n.Type)
	}
	for _, l := range g.Links {
		src := report.ResolveID(l.Source)
		dst := report.ResolveID(l.Target)
		from := declare(src, src, graph.RoleUnknown)
		to := declare(dst, dst, graph.RoleUnknown)
		b.WriteString(fmt.Sprintf("    %s --> %s\n", from, to))
	}

	for _, e := range graph.Legend() {
		if used[e.Role] {
			writeClassDef(&b, e.Role, e.Color)
		}
	}
	if used[graph.RoleUnknown] {
		writeClassDef(&b, graph.RoleUnknown, graph.ColorOf(graph.RoleUnknown))
	}
	return b.String()
}

func writeClassDef(b *strings.Builder, role graph.Role, color string) {
	b.WriteString(fmt.Sprintf("    classDef %s fill:%s,stroke:%s,color:#0B0F1A\n", role, color, color))
}

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "(", "#lpar;")
	s = strings.ReplaceAll(s, ")", "#rpar;")
	s = strings.ReplaceAll(s, "[", "#lsqb;")
	s = strings.ReplaceAll(s, "]", "#rsqb;")
	s = strings.ReplaceAll(s, "{", "#lbrace;")
	s = strings.ReplaceAll(s, "}", "#rbrace;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
