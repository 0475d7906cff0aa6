// Package event defines the domain events published on the broker and the
// topic catalog they travel on. Events are transient: nothing in this
// package is ever persisted, consumers decide what to keep.
package event

import (
	"context"
	"encoding/json"
	"time"
)

// Topic names are fixed and provisioned at startup when the broker is enabled.
const (
	TopicUser         = "user-events"
	TopicMessage      = "message-events"
	TopicConnection   = "connection-events"
	TopicNotification = "notification-events"
	TopicAnalytics    = "analytics-events"
)

// Topics lists the full catalog, in provisioning order.
func Topics() []string {
	return []string{
		TopicUser,
		TopicMessage,
		TopicConnection,
		TopicNotification,
		TopicAnalytics,
	}
}

type Type string

const (
	UserOnline  Type = "USER_ONLINE"
	UserOffline Type = "USER_OFFLINE"
	UserSignup  Type = "USER_SIGNUP"
	UserLogin   Type = "USER_LOGIN"

	MessageSent Type = "MESSAGE_SENT"

	ConnectionRequest Type = "CONNECTION_REQUEST"

	ConnectionRequestNotification Type = "CONNECTION_REQUEST_NOTIFICATION"

	MessageAnalytics Type = "MESSAGE_ANALYTICS"
)

// DomainEvent is the wire envelope shared by every topic. Timestamp is an
// ISO-8601 string so consumers in any language can parse it.
type DomainEvent struct {
	Type      Type           `json:"eventType"`
	UserID    string         `json:"userId,omitempty"`
	Timestamp string         `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// New builds an envelope stamped with the current time. userID identifies
// the subject of the event and doubles as the partition key on publish.
func New(t Type, userID string, data map[string]any) DomainEvent {
	return DomainEvent{
		Type:      t,
		UserID:    userID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	}
}

// Encode serializes the envelope for the broker.
func (e DomainEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Decode parses a broker payload back into an envelope.
func Decode(payload []byte) (DomainEvent, error) {
	var e DomainEvent
	err := json.Unmarshal(payload, &e)
	return e, err
}

// Handler consumes one decoded event. Implementations must be idempotent:
// the broker offers at-least-once delivery and a consumer restart may
// redeliver recently processed events.
type Handler func(ctx context.Context, e DomainEvent) error
