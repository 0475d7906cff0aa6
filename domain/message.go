// Package domain contains core concepts of the presence and messaging system.
// This file defines Message entities and related rules.
// Messages are immutable and validated by the domain.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"devconnect/errors"
)

// MaxTextLength bounds the text of a single direct message.
const MaxTextLength = 5000

// Message represents an immutable direct message between two users.
// It is created once by the messaging service and never mutated afterwards.
type Message struct {
	ID         uuid.UUID `json:"id"`
	FromUserID string    `json:"fromUserId"`
	ToUserID   string    `json:"toUserId"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"ts"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewMessage validates and builds a Message. The text is trimmed before
// validation, so a whitespace-only text is rejected as empty.
func NewMessage(fromUserID, toUserID, text string, sentAt time.Time) (Message, error) {
	if fromUserID == "" || toUserID == "" {
		return Message{}, errors.ErrMissingUserID
	}
	if fromUserID == toUserID {
		return Message{}, errors.ErrSelfMessage
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, errors.ErrEmptyMessage
	}
	if len([]rune(text)) > MaxTextLength {
		return Message{}, errors.ErrMessageTooLong
	}
	now := time.Now().UTC()
	return Message{
		ID:         uuid.New(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Text:       text,
		SentAt:     sentAt.UTC(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// PairKey returns the unordered conversation key for two users. Both
// directions of a conversation map to the same key, so one lookup covers
// the whole exchange.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}
