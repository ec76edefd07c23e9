package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"taskboard/internal/httputil"
	"taskboard/internal/realtime"
)

// WebSocketHandler upgrades authenticated connections and hands them to
// the realtime hub.
type WebSocketHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler creates a websocket handler
func NewWebSocketHandler(hub *realtime.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin is enforced by the CORS layer in front of the mux.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// RegisterRoutes registers the websocket endpoint on the mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/ws", h.Connect)
}

func (h *WebSocketHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	client := realtime.NewClient(h.hub, conn, userID, httputil.GetUsername(r))
	client.Start()
}
