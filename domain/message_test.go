package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"devconnect/errors"
)

func TestNewMessage_Trims_And_Stamps(t *testing.T) {
	req := require.New(t)
	sentAt := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	msg, err := NewMessage("alice", "bob", "  hello  ", sentAt)

	req.NoError(err)
	req.Equal("hello", msg.Text)
	req.Equal("alice", msg.FromUserID)
	req.Equal("bob", msg.ToUserID)
	req.Equal(sentAt, msg.SentAt)
	req.False(msg.CreatedAt.IsZero())
	req.Equal(msg.CreatedAt, msg.UpdatedAt)
}

func TestNewMessage_Rejections(t *testing.T) {
	req := require.New(t)
	at := time.Now()

	cases := []struct {
		name string
		from string
		to   string
		text string
		want error
	}{
		{"missing sender", "", "bob", "hi", errors.ErrMissingUserID},
		{"missing recipient", "alice", "", "hi", errors.ErrMissingUserID},
		{"self message", "alice", "alice", "hi", errors.ErrSelfMessage},
		{"empty text", "alice", "bob", "", errors.ErrEmptyMessage},
		{"whitespace only", "alice", "bob", " \t\n ", errors.ErrEmptyMessage},
		{"over max length", "alice", "bob", strings.Repeat("a", MaxTextLength+1), errors.ErrMessageTooLong},
	}
	for _, tc := range cases {
		_, err := NewMessage(tc.from, tc.to, tc.text, at)
		req.ErrorIs(err, tc.want, tc.name)
	}
}

func TestNewMessage_Length_Counts_Runes_Not_Bytes(t *testing.T) {
	req := require.New(t)

	// Multibyte runes up to the limit are fine even though the byte count is larger
	_, err := NewMessage("alice", "bob", strings.Repeat("é", MaxTextLength), time.Now())
	req.NoError(err)

	_, err = NewMessage("alice", "bob", strings.Repeat("é", MaxTextLength+1), time.Now())
	req.ErrorIs(err, errors.ErrMessageTooLong)
}

func TestPairKey_Is_Order_Independent(t *testing.T) {
	req := require.New(t)

	req.Equal(PairKey("alice", "bob"), PairKey("bob", "alice"))
	req.Equal("alice:bob", PairKey("bob", "alice"))
	req.NotEqual(PairKey("alice", "bob"), PairKey("alice", "clara"))
}
