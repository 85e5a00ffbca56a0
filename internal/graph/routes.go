package graph

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/ziadkadry99/archmap/internal/report"
)

// Source supplies the report the graph endpoints render.
type Source interface {
	Current() *report.Report
}

// NodeDetail is the node card: the node plus its connectivity.
type NodeDetail struct {
	Node       *RenderNode `json:"node"`
	In         int         `json:"in"`
	Out        int         `json:"out"`
	DependsOn  []string    `json:"dependsOn"`
	Dependents []string    `json:"dependents"`
}

// Detail builds the node card for id, or nil when the graph has no such node.
func Detail(g *Graph, id string) *NodeDetail {
	n := g.Node(id)
	if n == nil {
		return nil
	}
	in, out := Degree(id, g.Links)
	dependsOn, dependents := Neighbors(id, g.Links)
	if dependsOn == nil {
		dependsOn = []string{}
	}
	if dependents == nil {
		dependents = []string{}
	}
	return &NodeDetail{Node: n, In: in, Out: out, DependsOn: dependsOn, Dependents: dependents}
}

// Summary is a compact description of a graph.
type Summary struct {
	ProjectName string       `json:"projectName"`
	Nodes       int          `json:"nodes"`
	Links       int          `json:"links"`
	Roles       map[Role]int `json:"roles"`
	TotalLOC    float64      `json:"totalLoc"`
}

// Summarize counts nodes per role.
func Summarize(projectName string, g *Graph) Summary {
	s := Summary{ProjectName: projectName, Nodes: len(g.Nodes), Links: len(g.Links), Roles: map[Role]int{}}
	for _, n := range g.Nodes {
		s.Roles[n.Type]++
		s.TotalLOC += n.LOC
	}
	return s
}

// RegisterRoutes mounts the read-only graph endpoints on r, which the
// server roots at /api/graph.
func RegisterRoutes(r chi.Router, src Source) {
	r.Get("/", handleGraph(src))
	r.Get("/summary", handleSummary(src))
	r.Get("/legend", handleLegend())
	r.Get("/nodes/*", handleNode(src))
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

func handleGraph(src Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cur := src.Current()
		if cur == nil {
			writeJSON(w, http.StatusOK, envelope{Success: true})
			return
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: Build(cur)})
	}
}

func handleSummary(src Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cur := src.Current()
		if cur == nil {
			writeJSON(w, http.StatusOK, envelope{Success: true})
			return
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: Summarize(cur.ProjectName, Build(cur))})
	}
}

func handleLegend() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: Legend()})
	}
}

func handleNode(src Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Node ids are file paths and may arrive with or without escaped slashes.
		id := chi.URLParam(r, "*")
		if unescaped, err := url.PathUnescape(id); err == nil {
			id = unescaped
		}

		d := Detail(Build(src.Current()), id)
		if d == nil {
			writeJSON(w, http.StatusNotFound, envelope{Message: "node not found"})
			return
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: d})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
