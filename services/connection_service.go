package services

import (
	"context"
	"log/slog"
	"time"

	"devconnect/domain"
	"devconnect/domain/event"
	"devconnect/errors"
)

const connectionRequestAction = "connection-request"

// Unlimited marks a tier with no daily cap.
const Unlimited = -1

// DefaultTierLimits maps membership tier to allowed connection requests per
// calendar day.
func DefaultTierLimits() map[string]int {
	return map[string]int{
		"free":   10,
		"silver": 100,
		"gold":   Unlimited,
	}
}

// ConnectionService enforces the per-day, per-tier connection-request limit
// through the cache's rate counter and publishes the request event. When
// the cache is unavailable the counter answers 0 and the limit fails open:
// requests are admitted rather than blocking the product feature on an
// optional dependency.
type ConnectionService struct {
	counter    RateCounter
	publisher  EventPublisher
	tierLimits map[string]int
	log        *slog.Logger
}

func NewConnectionService(counter RateCounter, publisher EventPublisher, tierLimits map[string]int, log *slog.Logger) *ConnectionService {
	if tierLimits == nil {
		tierLimits = DefaultTierLimits()
	}
	return &ConnectionService{counter: counter, publisher: publisher, tierLimits: tierLimits, log: log}
}

// SendRequest counts the attempt against today's window and, if admitted,
// publishes CONNECTION_REQUEST keyed by the sender. Returns the usage seen
// inside the window and the tier's limit.
func (s *ConnectionService) SendRequest(ctx context.Context, cmd domain.ConnectionRequestCommand) (used int64, limit int, err error) {
	if err := validate.Struct(cmd); err != nil {
		return 0, 0, err
	}
	tier := cmd.Tier
	if tier == "" {
		tier = "free"
	}
	allowed, known := s.tierLimits[tier]
	if !known {
		allowed = s.tierLimits["free"]
	}

	used = s.counter.IncrementDailyCounter(ctx, connectionRequestAction, cmd.FromUserID, time.Now())
	if used == 0 {
		s.log.Debug("Rate counter unavailable, admitting request", "from", cmd.FromUserID, "tier", tier)
	}
	if allowed != Unlimited && used > int64(allowed) {
		return used, allowed, errors.ErrDailyLimitExceeded
	}

	s.publisher.Publish(ctx, event.TopicConnection, cmd.FromUserID,
		event.New(event.ConnectionRequest, cmd.FromUserID, map[string]any{
			"fromUserId": cmd.FromUserID,
			"toUserId":   cmd.ToUserID,
			"tier":       tier,
		}))
	return used, allowed, nil
}
