package interaction

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

// RegisterRoutes mounts the layout catalogue on r, which the server roots
// at /api/graph.
func RegisterRoutes(r chi.Router) {
	r.Get("/layouts", handleLayouts)
}

func handleLayouts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data": map[string]any{
			"layouts":    Layouts(),
			"simulation": DefaultSimulation,
		},
	})
}
