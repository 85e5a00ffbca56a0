package graph

import (
	"strings"

	"github.com/ziadkadry99/archmap/internal/report"
)

// TypeHint is the three-state reading of a node's optional type field.
type TypeHint struct {
	Role     Role
	Explicit bool
}

// HintOf interprets a raw node type. A missing or empty type and the
// literal "unknown" both ask for inference.
func HintOf(t *string) TypeHint {
	if t == nil || *t == "" {
		return TypeHint{}
	}
	return TypeHint{Role: Role(*t), Explicit: true}
}

// Infer reports whether the role must be inferred from the path.
func (h TypeHint) Infer() bool {
	return !h.Explicit || h.Role == RoleUnknown
}

// Resolve returns the explicit role verbatim or the inferred one.
func (h TypeHint) Resolve(id string) Role {
	if h.Infer() {
		return Classify(id)
	}
	return h.Role
}

// RenderNode is a node enriched for display. X, Y and Z belong to the
// layout engine once it has placed the node.
type RenderNode struct {
	ID       string   `json:"id"`
	Type     Role     `json:"type"`
	Name     string   `json:"name"`
	Color    string   `json:"color"`
	LOC      float64  `json:"loc"`
	FileSize float64  `json:"fileSize"`
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Z        *float64 `json:"z,omitempty"`
}

// NodeID lets a RenderNode stand in as a live link endpoint.
func (n *RenderNode) NodeID() string { return n.ID }

// Placed reports whether the layout has assigned a position.
func (n *RenderNode) Placed() bool {
	return n.X != nil && n.Y != nil && n.Z != nil
}

// SetPosition records a layout position.
func (n *RenderNode) SetPosition(x, y, z float64) {
	n.X, n.Y, n.Z = &x, &y, &z
}

// RenderLink is a dependency edge. Endpoints keep whatever shape they
// arrived in; read them with report.ResolveID.
type RenderLink struct {
	Source report.Endpoint `json:"source"`
	Target report.Endpoint `json:"target"`
}

// Graph is the render-ready model of one report.
type Graph struct {
	Nodes []*RenderNode `json:"nodes"`
	Links []RenderLink  `json:"links"`
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *RenderNode {
	if g == nil {
		return nil
	}
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Attach replaces link endpoints with live references to the graph's
// nodes, the way a layout engine does once it has ingested the graph.
// Dangling endpoints are left untouched.
func (g *Graph) Attach() {
	index := make(map[string]*RenderNode, len(g.Nodes))
	for _, n := range g.Nodes {
		index[n.ID] = n
	}
	for i := range g.Links {
		l := &g.Links[i]
		if n, ok := index[report.ResolveID(l.Source)]; ok {
			l.Source.Ref = n
		}
		if n, ok := index[report.ResolveID(l.Target)]; ok {
			l.Target.Ref = n
		}
	}
}

// Build turns a report into a render graph. A nil report, or one without
// dependencies, yields an empty graph. Node order follows the report.
func Build(r *report.Report) *Graph {
	return BuildFrom(r, nil)
}

// BuildFrom is Build that carries positions over from prev for every node
// whose id is unchanged.
func BuildFrom(r *report.Report, prev *Graph) *Graph {
	g := &Graph{Nodes: []*RenderNode{}, Links: []RenderLink{}}
	if r == nil || r.Dependencies == nil {
		return g
	}

	meta := fileIndex(r.Stats)
	var placed map[string]*RenderNode
	if prev != nil {
		placed = make(map[string]*RenderNode, len(prev.Nodes))
		for _, n := range prev.Nodes {
			if n.Placed() {
				placed[n.ID] = n
			}
		}
	}

	g.Nodes = make([]*RenderNode, 0, len(r.Dependencies.Nodes))
	for _, raw := range r.Dependencies.Nodes {
		role := HintOf(raw.Type).Resolve(raw.ID)
		n := &RenderNode{
			ID:    raw.ID,
			Type:  role,
			Name:  displayName(raw.ID),
			Color: ColorOf(role),
		}
		if fm, ok := meta[raw.ID]; ok {
			n.LOC = fm.LinesOfCode
			n.FileSize = fm.Size
		}
		if p, ok := placed[raw.ID]; ok {
			n.SetPosition(*p.X, *p.Y, *p.Z)
		}
		g.Nodes = append(g.Nodes, n)
	}

	g.Links = make([]RenderLink, 0, len(r.Dependencies.Links))
	for _, l := range r.Dependencies.Links {
		g.Links = append(g.Links, RenderLink{Source: l.Source, Target: l.Target})
	}
	return g
}

// fileIndex keys file metadata by exact path. Later duplicates win.
func fileIndex(s *report.Stats) map[string]report.FileMeta {
	if s == nil {
		return nil
	}
	idx := make(map[string]report.FileMeta, len(s.FileList))
	for _, fm := range s.FileList {
		idx[fm.Path] = fm
	}
	return idx
}

// displayName is the last path segment of id. Backslashes separate
// segments too, as in classify.
func displayName(id string) string {
	if i := strings.LastIndexAny(id, `/\`); i >= 0 {
		return id[i+1:]
	}
	return id
}
