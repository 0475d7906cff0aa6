//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/dgraph-io/badger/v4"

	"devconnect/domain"
)

type IMessageRepository interface {
	StoreMessage(ctx context.Context, message domain.Message) error
	History(ctx context.Context, userA, userB string, limit int) ([]domain.Message, error)
}

// MessageRepository is the durable store adapter for direct messages. It is
// the only authoritative record of a conversation; caches are shortcuts.
type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// StoreMessage persists a message in BadgerDB.
// The key is formatted as "dm:{pair_key}:{inverted_timestamp}:{uuid}" to:
//  1. Group both directions of a conversation under one prefix.
//  2. Ensure newest-first ordering with a forward scan: the timestamp is
//     inverted (MaxInt64 - UnixNano) and zero padded to 19 digits so the
//     lexicographical order is reverse-chronological.
//  3. Keep both entries when two messages land on the same nanosecond,
//     with the message UUID as tiebreaker.
func (m MessageRepository) StoreMessage(ctx context.Context, message domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := messageKey(message)
	bytes, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// History retrieves the most recent messages exchanged between two users,
// newest first. Thanks to the inverted timestamp in the key a plain forward
// prefix scan returns them already sorted.
func (m MessageRepository) History(ctx context.Context, userA, userB string, limit int) ([]domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var raw [][]byte
	prefix := []byte(fmt.Sprintf("dm:%s:", domain.PairKey(userA, userB)))
	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(raw) == limit {
				m.log.Debug(fmt.Sprintf("History capped at %d messages", limit))
				break
			}
			err := it.Item().Value(func(value []byte) error {
				raw = append(raw, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(raw))
	for _, b := range raw {
		var message domain.Message
		if err = json.Unmarshal(b, &message); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func messageKey(message domain.Message) string {
	inverted := math.MaxInt64 - message.SentAt.UnixNano()
	return fmt.Sprintf("dm:%s:%019d:%s",
		domain.PairKey(message.FromUserID, message.ToUserID),
		inverted,
		message.ID,
	)
}
