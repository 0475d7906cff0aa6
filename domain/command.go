package domain

import (
	"time"
)

// SendMessageCommand carries an inbound "send message" signal into the
// messaging service. Validation happens in NewMessage, not here.
type SendMessageCommand struct {
	FromUserID string    `validate:"required"`
	ToUserID   string    `validate:"required"`
	Text       string    `validate:"required"`
	SentAt     time.Time
}

// HistoryCommand asks for the reverse-chronological conversation between
// two users. Limit is clamped by the messaging service.
type HistoryCommand struct {
	UserID       string `validate:"required"`
	TargetUserID string `validate:"required"`
	Limit        int
}

// ConnectionRequestCommand carries a connection-request send attempt whose
// per-day volume is tier limited.
type ConnectionRequestCommand struct {
	FromUserID string `validate:"required"`
	ToUserID   string `validate:"required"`
	Tier       string
}
