package scene

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/ziadkadry99/archmap/internal/graph"
)

// RegisterRoutes mounts the scene endpoints on r, which the server roots
// at /api/graph next to the graph routes.
func RegisterRoutes(r chi.Router, src graph.Source) {
	r.Get("/scene", handleScene(src))
	r.Get("/tooltip/*", handleTooltip(src))
}

func handleScene(src graph.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cur := src.Current()
		if cur == nil {
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": nil})
			return
		}
		q := r.URL.Query()
		f := Focus{Selected: q.Get("selected"), Hovered: q.Get("hovered")}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": BuildScene(graph.Build(cur), f)})
	}
}

func handleTooltip(src graph.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "*")
		if unescaped, err := url.PathUnescape(id); err == nil {
			id = unescaped
		}
		n := graph.Build(src.Current()).Node(id)
		if n == nil {
			http.Error(w, "node not found", http.StatusNotFound)
			return
		}
		html, err := Tooltip(n)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
