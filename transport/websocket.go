// Package transport exposes the core over its two surfaces: the persistent
// WebSocket session protocol and the HTTP collaborator endpoints.
package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"devconnect/domain"
	"devconnect/domain/signal"
	"devconnect/runtime"
	"devconnect/services"
)

// offlineGrace bounds the best-effort offline transition after a session's
// read loop ends; the request context is already dead at that point.
const offlineGrace = 5 * time.Second

// maxFrameBytes bounds one inbound frame. A maximum-length message text can
// arrive escaped at up to 12 bytes per rune, past the library's default
// 32 KiB read limit; oversized text must reach validation and come back as
// an error frame instead of killing the connection.
const maxFrameBytes = 128 << 10

// WebSocketHandler upgrades connections and runs one read loop per session.
// Handling within a session is serialized on purpose: send order within one
// sender session is the only delivery-order guarantee the core makes.
type WebSocketHandler struct {
	presence  *services.PresenceService
	messaging *services.MessagingService
	registry  *runtime.Registry
	log       *slog.Logger
}

func NewWebSocketHandler(presence *services.PresenceService, messaging *services.MessagingService, registry *runtime.Registry, log *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{presence: presence, messaging: messaging, registry: registry, log: log}
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Error("Failed to accept WebSocket", "error", err, "ip", r.RemoteAddr)
		return
	}
	ws.SetReadLimit(maxFrameBytes)

	sessionID := uuid.NewString()
	h.log.Info("Socket connected", "session_id", sessionID, "ip", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sess := newSession(sessionID, ws, h.log)
	h.registry.Attach(sessionID, sess)
	go sess.writeLoop(ctx)

	h.readLoop(ctx, ws, sess)

	// The session is gone; run the offline transition on a fresh context
	// so cache delete and event publish still get their chance.
	offlineCtx, offlineCancel := context.WithTimeout(context.Background(), offlineGrace)
	defer offlineCancel()
	h.presence.MarkOffline(offlineCtx, sessionID)

	if err := ws.Close(websocket.StatusNormalClosure, "session ended"); err != nil {
		h.log.Debug("Failed to close websocket", "session_id", sessionID, "error", err)
	}
	h.log.Info("Socket disconnected", "session_id", sessionID)
}

func (h *WebSocketHandler) readLoop(ctx context.Context, ws *websocket.Conn, sess *session) {
	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				h.log.Debug("WebSocket closed by client", "session_id", sess.id)
			} else if ctx.Err() == nil {
				h.log.Warn("WebSocket read error", "session_id", sess.id, "error", err)
			}
			return
		}

		var in signal.Inbound
		if err := json.Unmarshal(data, &in); err != nil {
			h.log.Debug("Dropping malformed frame", "session_id", sess.id, "error", err)
			continue
		}
		h.dispatch(ctx, sess, in)
	}
}

func (h *WebSocketHandler) dispatch(ctx context.Context, sess *session, in signal.Inbound) {
	switch in.Type {
	case signal.TypeRegister:
		if in.UserID == "" {
			h.deliver(ctx, sess, signal.NewError("userId required"))
			return
		}
		h.presence.MarkOnline(ctx, in.UserID, sess.id)

	case signal.TypePrivateMessage:
		cmd := domain.SendMessageCommand{
			FromUserID: in.FromUserID,
			ToUserID:   in.ToUserID,
			Text:       in.Message,
			SentAt:     time.Now(),
		}
		if _, err := h.messaging.Send(ctx, cmd); err != nil {
			// Only validation and store failures surface; everything
			// else already degraded silently inside the service.
			h.log.Warn("Send failed", "session_id", sess.id, "error", err)
			h.deliver(ctx, sess, signal.NewError(err.Error()))
		}

	case signal.TypePresenceQuery:
		online := h.presence.Query(ctx, in.UserID)
		h.deliver(ctx, sess, signal.NewPresenceState(in.UserID, online))

	case signal.TypePing:
		h.deliver(ctx, sess, map[string]string{"type": signal.TypePong})

	default:
		h.log.Debug("Unknown frame type", "session_id", sess.id, "type", in.Type)
	}
}

func (h *WebSocketHandler) deliver(ctx context.Context, sess *session, frame any) {
	if err := sess.Deliver(ctx, frame); err != nil {
		h.log.Debug("Reply delivery failed", "session_id", sess.id, "error", err)
	}
}
