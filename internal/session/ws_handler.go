package session

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	httperrors "github.com/barquiz/spec-trainer/pkg/http/errors"
	"github.com/barquiz/spec-trainer/pkg/http/ws"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the configured CORS origins once the web client URL settles
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HandleWebSocket upgrades GET /ws/sessions?session_id=… and subscribes the
// connection to that session's countdown and transition events.
func (h *HTTPHandlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.URL.Query().Get("session_id"))
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "session_id must be a UUID", "session_id")
		return
	}

	if _, err := h.store.Load(r.Context(), sessionID); err != nil {
		h.respondLoadError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	sub := ws.NewConnection(conn)
	h.hub.Subscribe(sessionID, sub)

	// Subscribers are listen-only; the read loop just detects disconnect.
	go func() {
		defer h.hub.Unsubscribe(sessionID, sub)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
