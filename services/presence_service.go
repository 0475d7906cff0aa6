package services

import (
	"context"
	"log/slog"

	"devconnect/domain/event"
	"devconnect/domain/signal"
	"devconnect/runtime"
)

// PresenceService answers online/offline queries and broadcasts transitions.
// It blends the authoritative instance-local registry with the best-effort
// distributed cache: a single-instance deployment with no cache stays fully
// correct on the registry alone.
type PresenceService struct {
	registry  *runtime.Registry
	cache     PresenceCache
	publisher EventPublisher
	log       *slog.Logger
}

func NewPresenceService(registry *runtime.Registry, cache PresenceCache, publisher EventPublisher, log *slog.Logger) *PresenceService {
	return &PresenceService{registry: registry, cache: cache, publisher: publisher, log: log}
}

// MarkOnline binds the session to the user, advertises the user in the
// distributed cache so other instances see them, publishes USER_ONLINE and
// broadcasts the transition to every locally connected session. Only the
// bind is required for correctness; everything after it is best-effort.
func (s *PresenceService) MarkOnline(ctx context.Context, userID, sessionID string) {
	if orphaned, ok := s.registry.Bind(userID, sessionID); ok {
		s.log.Debug("Previous session orphaned by re-register", "user_id", userID, "session_id", orphaned)
	}

	if !s.cache.SetPresence(ctx, userID, sessionID) {
		s.log.Debug("Presence cache write skipped", "user_id", userID)
	}

	s.publisher.Publish(ctx, event.TopicUser, userID,
		event.New(event.UserOnline, userID, map[string]any{"sessionId": sessionID}))

	s.broadcast(ctx, signal.NewPresence(userID, true))
	s.log.Info("User online", "user_id", userID, "session_id", sessionID)
}

// MarkOffline reverses MarkOnline for the session's bound user, if any.
// Idempotent: a session already unbound triggers nothing, so the offline
// broadcast is emitted exactly once per transition.
func (s *PresenceService) MarkOffline(ctx context.Context, sessionID string) {
	userID, ok := s.registry.Unbind(sessionID)
	if !ok {
		return
	}

	if !s.cache.DeletePresence(ctx, userID) {
		s.log.Debug("Presence cache delete skipped", "user_id", userID)
	}

	s.publisher.Publish(ctx, event.TopicUser, userID,
		event.New(event.UserOffline, userID, map[string]any{"sessionId": sessionID}))

	s.broadcast(ctx, signal.NewPresence(userID, false))
	s.log.Info("User offline", "user_id", userID, "session_id", sessionID)
}

// Query checks the distributed cache first, covering users connected to
// other instances, and falls back to the local registry when the cache is
// away or has no entry. Never the reverse: same-instance answers must stay
// correct without any cache.
func (s *PresenceService) Query(ctx context.Context, userID string) bool {
	if s.cache.HasPresence(ctx, userID) {
		return true
	}
	_, ok := s.registry.SessionFor(userID)
	return ok
}

func (s *PresenceService) broadcast(ctx context.Context, frame any) {
	for _, sink := range s.registry.Sinks() {
		if err := sink.Deliver(ctx, frame); err != nil {
			s.log.Debug("Presence broadcast delivery failed", "error", err)
		}
	}
}
