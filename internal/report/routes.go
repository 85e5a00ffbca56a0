package report

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

// MaxReportBytes bounds a submitted payload.
const MaxReportBytes = 32 << 20

// StreamOptions tunes the push endpoints.
type StreamOptions struct {
	// Heartbeat is the interval between keep-alive frames. Zero disables them.
	Heartbeat time.Duration
}

// envelope is the response body of every /api/report call.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    *any   `json:"data,omitempty"`
}

// RegisterRoutes mounts the report endpoints on the given router.
func RegisterRoutes(r chi.Router, svc *Service, opts StreamOptions) {
	r.Route("/api/report", func(r chi.Router) {
		r.Post("/", handleSubmit(svc))
		r.Get("/", handleGet(svc))
		r.Delete("/", handleClear(svc))
		r.Get("/stream", handleStream(svc, opts))
	})
	r.Get("/ws/report", handleWebSocket(svc, opts))
}

func handleSubmit(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxReportBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge, envelope{Message: "Report too large"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, envelope{Message: "Failed to process report"})
			return
		}

		if _, err := svc.Submit(body); err != nil {
			if errors.Is(err, ErrInvalidReport) {
				writeJSON(w, http.StatusBadRequest, envelope{Message: "Invalid report format"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, envelope{Message: "Failed to process report"})
			return
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Report updated successfully"})
	}
}

func handleGet(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data any
		if cur := svc.Current(); cur != nil {
			data = json.RawMessage(cur.Raw())
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Data: &data})
	}
}

func handleClear(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Clear()
		writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Report cleared successfully"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
