package report

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const wsWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleStream serves update notifications as text/event-stream. Each
// accepted report produces one `data: {"type":"update"}` frame.
func handleStream(svc *Service, opts StreamOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		sub := svc.Subscribe()
		defer sub.Close()

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		if _, err := fmt.Fprint(w, ": subscribed\n\n"); err != nil {
			return
		}
		flusher.Flush()

		heartbeat, stop := newHeartbeat(opts.Heartbeat)
		defer stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case ev, ok := <-sub.C():
				if !ok {
					return
				}
				payload, err := json.Marshal(ev)
				if err != nil {
					svc.logger.Error("encode event", "err", err)
					continue
				}
				if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
					return
				}
				flusher.Flush()
			case <-heartbeat:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

// handleWebSocket serves the same notifications as JSON text messages.
// Anything the client sends is read and discarded.
func handleWebSocket(svc *Service, opts StreamOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			svc.logger.Warn("websocket upgrade", "err", err)
			return
		}
		defer conn.Close()

		sub := svc.Subscribe()
		defer sub.Close()

		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
						svc.logger.Debug("websocket read", "err", err)
					}
					return
				}
			}
		}()

		heartbeat, stop := newHeartbeat(opts.Heartbeat)
		defer stop()

		for {
			select {
			case <-gone:
				return
			case <-r.Context().Done():
				return
			case ev, ok := <-sub.C():
				if !ok {
					conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
						time.Now().Add(wsWriteWait))
					return
				}
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-heartbeat:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return
				}
			}
		}
	}
}

// newHeartbeat returns a tick channel and its stop func. A non-positive
// interval yields a channel that never fires.
func newHeartbeat(interval time.Duration) (<-chan time.Time, func()) {
	if interval <= 0 {
		return nil, func() {}
	}
	t := time.NewTicker(interval)
	return t.C, t.Stop
}
