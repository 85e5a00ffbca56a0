package scene

import "github.com/ziadkadry99/archmap/internal/graph"

// Focus is the selection and hover a scene is drawn for. Empty means none.
type Focus struct {
	Selected string `json:"selected,omitempty"`
	Hovered  string `json:"hovered,omitempty"`
}

// ActiveID is the id highlighting is computed from. Selection wins over
// hover.
func (f Focus) ActiveID() string {
	if f.Selected != "" {
		return f.Selected
	}
	return f.Hovered
}

// Scene is everything needed to draw a graph for one focus.
type Scene struct {
	Focus       Focus       `json:"focus"`
	Objects     []Object    `json:"objects"`
	Links       []LinkStyle `json:"links"`
	LinkOpacity float64     `json:"linkOpacity"`
}

// StateOf derives a node's draw state. With nothing active, no node is
// dimmed.
func StateOf(id string, f Focus, neighbors map[string]struct{}) State {
	s := State{
		Selected: f.Selected != "" && id == f.Selected,
		Active:   id != "" && (id == f.Selected || id == f.Hovered),
	}
	if f.ActiveID() != "" {
		_, near := neighbors[id]
		s.Dimmed = !near
	}
	return s
}

// BuildScene draws every node and link of g for f.
func BuildScene(g *graph.Graph, f Focus) Scene {
	sc := Scene{
		Focus:       f,
		Objects:     make([]Object, 0, len(g.Nodes)),
		Links:       make([]LinkStyle, 0, len(g.Links)),
		LinkOpacity: LinkOpacity,
	}

	var neighbors map[string]struct{}
	active := f.ActiveID()
	if active != "" {
		neighbors = graph.NeighborsOf(active, g.Links)
	}

	for _, n := range g.Nodes {
		sc.Objects = append(sc.Objects, Build(n, StateOf(n.ID, f, neighbors)))
	}
	for _, l := range g.Links {
		sc.Links = append(sc.Links, StyleLink(l, active))
	}
	return sc
}
