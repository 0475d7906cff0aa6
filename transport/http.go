package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"devconnect/domain"
	devErrors "devconnect/errors"
	"devconnect/services"
)

// Handler serves the HTTP collaborator surface: the history read and the
// rate-limited connection-request send. Caller identity arrives in the
// X-User-ID header; authentication policy lives outside this core.
type Handler struct {
	messaging   *services.MessagingService
	connections *services.ConnectionService
}

func NewHandler(messaging *services.MessagingService, connections *services.ConnectionService) *Handler {
	return &Handler{messaging: messaging, connections: connections}
}

// Routes mounts every HTTP endpoint, including the WebSocket upgrade.
func Routes(h *Handler, ws *WebSocketHandler) chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/chat/{targetUserID}/history", h.History)
	r.Post("/request/send/interested/{toUserID}", h.SendConnectionRequest)
	r.Method(http.MethodGet, "/ws", ws)
	return r
}

// History returns the conversation between the caller and the target,
// oldest first, capped by the limit query parameter.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	target := chi.URLParam(r, "targetUserID")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			Error(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	messages, err := h.messaging.History(r.Context(), domain.HistoryCommand{
		UserID:       userID,
		TargetUserID: target,
		Limit:        limit,
	})
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	// The store answers newest first; the client renders oldest first.
	JSON(w, http.StatusOK, map[string]any{"data": lo.Reverse(messages)})
}

// SendConnectionRequest counts the attempt against the caller's daily tier
// limit before admitting it.
func (h *Handler) SendConnectionRequest(w http.ResponseWriter, r *http.Request) {
	cmd := domain.ConnectionRequestCommand{
		FromUserID: r.Header.Get("X-User-ID"),
		ToUserID:   chi.URLParam(r, "toUserID"),
		Tier:       strings.ToLower(r.Header.Get("X-Membership-Tier")),
	}

	used, limit, err := h.connections.SendRequest(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, devErrors.ErrDailyLimitExceeded) {
			JSON(w, http.StatusTooManyRequests, map[string]any{
				"message": "Daily request limit reached",
				"limit":   limit,
				"used":    used,
			})
			return
		}
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Connection request sent",
		"used":    used,
		"limit":   limit,
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
