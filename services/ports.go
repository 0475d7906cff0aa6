//go:generate go run go.uber.org/mock/mockgen -source=ports.go -destination=../mocks/mock_ports.go -package=mocks
package services

import (
	"context"
	"time"

	"devconnect/domain"
	"devconnect/domain/event"
)

// The cache and broker ports deliberately return booleans instead of
// errors: both dependencies are optional and every operation degrades to
// its "not applied" result when they are away. Callers never branch on
// availability themselves.

// PresenceCache is the distributed, best-effort half of presence.
type PresenceCache interface {
	SetPresence(ctx context.Context, userID, sessionID string) bool
	HasPresence(ctx context.Context, userID string) bool
	DeletePresence(ctx context.Context, userID string) bool
}

// MessageBuffer is the bounded recent-message shortcut for one pair.
type MessageBuffer interface {
	RecentMessages(ctx context.Context, userA, userB string) ([]domain.Message, bool)
	SetRecentMessages(ctx context.Context, userA, userB string, messages []domain.Message) bool
}

// EventPublisher emits domain events onto a topic, partitioned by key.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, e event.DomainEvent) bool
}

// RateCounter exposes increment-and-read semantics over a per-day counter.
// A return of 0 means "limit not enforceable here", not "usage is zero".
type RateCounter interface {
	IncrementDailyCounter(ctx context.Context, action, actorID string, now time.Time) int64
}
