// Package signal defines the typed frames exchanged with a live transport
// session. Inbound frames come from the client read loop, outbound frames
// are pushed to the session's writer.
package signal

import "time"

// Inbound frame types.
const (
	TypeRegister       = "register"
	TypePrivateMessage = "private-message"
	TypePresenceQuery  = "presence:query"
	TypePing           = "ping"
)

// Outbound frame types.
const (
	TypePresence      = "presence"
	TypePresenceState = "presence:state"
	TypeError         = "error"
	TypePong          = "pong"
)

// Inbound is the superset of every client frame. Type selects which fields
// are meaningful.
type Inbound struct {
	Type       string `json:"type"`
	UserID     string `json:"userId,omitempty"`
	FromUserID string `json:"fromUserId,omitempty"`
	ToUserID   string `json:"toUserId,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Presence is broadcast to every connected session on an online or offline
// transition.
type Presence struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Online bool   `json:"online"`
}

func NewPresence(userID string, online bool) Presence {
	return Presence{Type: TypePresence, UserID: userID, Online: online}
}

// PresenceState answers a presence query on the querying session only.
type PresenceState struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Online bool   `json:"online"`
}

func NewPresenceState(userID string, online bool) PresenceState {
	return PresenceState{Type: TypePresenceState, UserID: userID, Online: online}
}

// PrivateMessage is pushed to exactly the sender's and recipient's sessions.
type PrivateMessage struct {
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	FromUserID string    `json:"fromUserId"`
	SentAt     time.Time `json:"ts"`
}

func NewPrivateMessage(text, fromUserID string, sentAt time.Time) PrivateMessage {
	return PrivateMessage{Type: TypePrivateMessage, Message: text, FromUserID: fromUserID, SentAt: sentAt}
}

// Error reports a validation or store failure back to the caller's session.
type Error struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

func NewError(reason string) Error {
	return Error{Type: TypeError, Reason: reason}
}
