package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"devconnect/domain"
	"devconnect/domain/event"
	"devconnect/domain/signal"
	"devconnect/repositories"
	"devconnect/runtime"
)

var validate = validator.New()

// History read bounds, enforced on every query.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

const defaultStoreTimeout = 5 * time.Second

// MessagingService owns the send-and-deliver path of one direct message:
//
//	Received -> Persisted -> (Cached) -> (Published) -> Delivered
//
// Persistence is the only transition the caller should treat as meaningful
// for correctness. Caching, publishing and delivery are best-effort
// enrichments: a failure in a later stage never rolls back an earlier one.
type MessagingService struct {
	repo         repositories.IMessageRepository
	buffer       MessageBuffer
	publisher    EventPublisher
	registry     *runtime.Registry
	log          *slog.Logger
	storeTimeout time.Duration
}

func NewMessagingService(
	repo repositories.IMessageRepository,
	buffer MessageBuffer,
	publisher EventPublisher,
	registry *runtime.Registry,
	log *slog.Logger,
	storeTimeout time.Duration,
) *MessagingService {
	if storeTimeout <= 0 {
		storeTimeout = defaultStoreTimeout
	}
	return &MessagingService{
		repo:         repo,
		buffer:       buffer,
		publisher:    publisher,
		registry:     registry,
		log:          log,
		storeTimeout: storeTimeout,
	}
}

// Send validates, persists, then enriches. A validation error or store
// failure is reported to the caller and leaves no partial state behind:
// no later stage runs. Each call creates exactly one new message, retries
// duplicate by design.
func (s *MessagingService) Send(ctx context.Context, cmd domain.SendMessageCommand) (domain.Message, error) {
	if err := validate.Struct(cmd); err != nil {
		return domain.Message{}, err
	}
	msg, err := domain.NewMessage(cmd.FromUserID, cmd.ToUserID, cmd.Text, cmd.SentAt)
	if err != nil {
		return domain.Message{}, err
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.repo.StoreMessage(storeCtx, msg); err != nil {
		return domain.Message{}, fmt.Errorf("store message: %w", err)
	}

	s.cacheRecent(ctx, msg)

	s.publisher.Publish(ctx, event.TopicMessage, msg.FromUserID,
		event.New(event.MessageSent, msg.FromUserID, map[string]any{
			"messageId":  msg.ID.String(),
			"fromUserId": msg.FromUserID,
			"toUserId":   msg.ToUserID,
			"text":       msg.Text,
			"ts":         msg.SentAt.UnixMilli(),
		}))

	s.deliver(ctx, msg)
	return msg, nil
}

// History returns the most recent messages between two users, newest first.
// The limit defaults to DefaultHistoryLimit and is capped at MaxHistoryLimit.
func (s *MessagingService) History(ctx context.Context, cmd domain.HistoryCommand) ([]domain.Message, error) {
	if err := validate.Struct(cmd); err != nil {
		return nil, err
	}
	limit := cmd.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	readCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.repo.History(readCtx, cmd.UserID, cmd.TargetUserID, limit)
}

// cacheRecent prepends the message to the pair's bounded buffer. Any cache
// trouble is absorbed here; the durable store already holds the message.
func (s *MessagingService) cacheRecent(ctx context.Context, msg domain.Message) {
	recent, _ := s.buffer.RecentMessages(ctx, msg.FromUserID, msg.ToUserID)
	recent = append([]domain.Message{msg}, recent...)
	if !s.buffer.SetRecentMessages(ctx, msg.FromUserID, msg.ToUserID, recent) {
		s.log.Debug("Recent-message buffer update skipped", "from", msg.FromUserID, "to", msg.ToUserID)
	}
}

// deliver pushes the payload to the sender's and recipient's live sessions
// on this instance. Absence of either session is not an error: the party is
// offline or attached elsewhere, and the message stays retrievable via
// History.
func (s *MessagingService) deliver(ctx context.Context, msg domain.Message) {
	frame := signal.NewPrivateMessage(msg.Text, msg.FromUserID, msg.SentAt)
	for _, userID := range []string{msg.FromUserID, msg.ToUserID} {
		sink, ok := s.registry.SinkFor(userID)
		if !ok {
			continue
		}
		if err := sink.Deliver(ctx, frame); err != nil {
			s.log.Debug("Live delivery failed", "user_id", userID, "error", err)
		}
	}
}
