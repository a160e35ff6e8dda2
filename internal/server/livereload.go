package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// reloadEvent is the one message shape the livereload channel carries.
type reloadEvent struct {
	Event string `json:"event"`
}

// hub tracks connected livereload clients and fans events out to them.
type hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newHub(logger *slog.Logger) *hub {
	return &hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			// The viewer is served from arbitrary local origins during
			// authoring, so the usual same-origin check does not apply.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

func (h *hub) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Livereload upgrade failed.", "remote_addr", r.RemoteAddr, "error", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("Livereload client connected.", "remote_addr", r.RemoteAddr)

	// Clients never send anything meaningful; the read loop only notices
	// disconnects.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		h.drop(conn)
	}()
}

func (h *hub) broadcast(event string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(reloadEvent{Event: event}); err != nil {
			h.logger.Debug("Dropping livereload client.", "error", err)
			delete(h.conns, conn)
			_ = conn.Close()
		}
	}
}

func (h *hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.Close()
	}
	h.conns = make(map[*websocket.Conn]struct{})
}
