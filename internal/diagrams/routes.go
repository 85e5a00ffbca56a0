package diagrams

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/archmap/internal/graph"
)

// RegisterRoutes mounts the Mermaid endpoint on r, which the server roots
// at /api/graph. ?layout=lr draws left to right.
func RegisterRoutes(r chi.Router, src graph.Source) {
	r.Get("/mermaid", func(w http.ResponseWriter, r *http.Request) {
		cur := src.Current()
		if cur == nil {
			http.Error(w, "no report", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/vnd.mermaid; charset=utf-8")
		w.Write([]byte(Flowchart(graph.Build(cur), DirectionFor(r.URL.Query().Get("layout")))))
	})
}
