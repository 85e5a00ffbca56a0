package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/archmap/internal/diagrams"
	"github.com/ziadkadry99/archmap/internal/graph"
)

// RegisterRoutes mounts the overview page on r, which the server roots at
// /api/graph. ?format=md returns the Markdown source.
func RegisterRoutes(r chi.Router, src graph.Source) {
	r.Get("/overview", func(w http.ResponseWriter, r *http.Request) {
		cur := src.Current()
		if cur == nil {
			http.Error(w, "no report", http.StatusNotFound)
			return
		}
		q := r.URL.Query()
		md := Markdown(cur, diagrams.DirectionFor(q.Get("layout")))
		if q.Get("format") == "md" {
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			w.Write([]byte(md))
			return
		}
		page, err := HTML(cur.ProjectName, md)
		if err != nil {
			http.Error(w, "failed to render overview", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	})
}
