//go:generate go run go.uber.org/mock/mockgen -source=consumers.go -destination=../../mocks/mock_consumers.go -package=mocks
package workers

import (
	"context"
	"log/slog"
	"time"

	"devconnect/domain/event"
)

// EventSubscriber registers a long-running consumer loop on one topic.
type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, handler event.Handler) error
}

// EventRepublisher lets a consumer derive and re-publish follow-up events.
type EventRepublisher interface {
	Publish(ctx context.Context, topic, key string, e event.DomainEvent) bool
}

// ActivityCache records user activity keys derived from user events.
type ActivityCache interface {
	SetLastSeen(ctx context.Context, userID string, at time.Time) bool
	DeleteLastSeen(ctx context.Context, userID string) bool
	SetLastLogin(ctx context.Context, userID string, at time.Time) bool
}

// ConsumerWorker registers every event consumer on the broker and then
// blocks until cancellation. Handlers are idempotent: the broker delivers
// at least once and a restart may replay recently processed events; every
// side effect below is a plain overwrite or a re-publish, safe to repeat.
type ConsumerWorker struct {
	log        *slog.Logger
	subscriber EventSubscriber
	publisher  EventRepublisher
	activity   ActivityCache

	// registered remembers topics whose consumer loop is already running,
	// so a supervisor restart after a partial registration does not start
	// a second consumer in the same group. Run is invoked from a single
	// supervisor goroutine, no locking needed.
	registered map[string]bool
}

func NewConsumerWorker(log *slog.Logger, subscriber EventSubscriber, publisher EventRepublisher, activity ActivityCache) *ConsumerWorker {
	return &ConsumerWorker{
		log:        log,
		subscriber: subscriber,
		publisher:  publisher,
		activity:   activity,
		registered: make(map[string]bool),
	}
}

func (w *ConsumerWorker) Run(ctx context.Context) error {
	consumers := []struct {
		topic   string
		handler event.Handler
	}{
		{event.TopicUser, w.handleUserEvent},
		{event.TopicMessage, w.handleMessageEvent},
		{event.TopicConnection, w.handleConnectionEvent},
	}
	for _, c := range consumers {
		if w.registered[c.topic] {
			continue
		}
		if err := w.subscriber.Subscribe(ctx, c.topic, c.handler); err != nil {
			return err
		}
		w.registered[c.topic] = true
	}
	w.log.Info("Event consumers registered")
	<-ctx.Done()
	return ctx.Err()
}

// handleUserEvent maintains activity keys in the cache.
func (w *ConsumerWorker) handleUserEvent(ctx context.Context, e event.DomainEvent) error {
	w.log.Debug("Processing user event", "type", e.Type, "user_id", e.UserID)
	switch e.Type {
	case event.UserOnline:
		w.activity.SetLastSeen(ctx, e.UserID, time.Now())
	case event.UserOffline:
		w.activity.DeleteLastSeen(ctx, e.UserID)
	case event.UserLogin:
		w.activity.SetLastLogin(ctx, e.UserID, time.Now())
	case event.UserSignup:
		w.log.Info("New user signup", "user_id", e.UserID)
	}
	return nil
}

// handleMessageEvent derives analytics from sent messages.
func (w *ConsumerWorker) handleMessageEvent(ctx context.Context, e event.DomainEvent) error {
	w.log.Debug("Processing message event", "type", e.Type)
	if e.Type != event.MessageSent {
		return nil
	}
	w.publisher.Publish(ctx, event.TopicAnalytics, e.UserID,
		event.New(event.MessageAnalytics, e.UserID, map[string]any{
			"messageCount": 1,
			"sourceEvent":  e.Timestamp,
		}))
	return nil
}

// handleConnectionEvent notifies the target of a new connection request.
func (w *ConsumerWorker) handleConnectionEvent(ctx context.Context, e event.DomainEvent) error {
	w.log.Debug("Processing connection event", "type", e.Type)
	if e.Type != event.ConnectionRequest {
		return nil
	}
	toUserID, _ := e.Data["toUserId"].(string)
	if toUserID == "" {
		return nil
	}
	w.publisher.Publish(ctx, event.TopicNotification, toUserID,
		event.New(event.ConnectionRequestNotification, toUserID, map[string]any{
			"fromUserId": e.UserID,
			"message":    "You have a new connection request!",
		}))
	return nil
}
