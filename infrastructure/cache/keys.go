package cache

import (
	"context"
	"fmt"
	"time"

	"devconnect/domain"
)

// TTLs mirror the deployment defaults: presence entries are short lived so
// a crashed instance stops advertising its users quickly, recent-message
// buffers are a read shortcut only, last-seen survives a day.
const (
	PresenceTTL       = 5 * time.Minute
	RecentMessagesTTL = time.Hour
	LastSeenTTL       = 24 * time.Hour

	// RecentMessagesCap bounds the per-pair buffer, newest first.
	RecentMessagesCap = 50
)

func presenceKey(userID string) string {
	return "presence:" + userID
}

func recentMessagesKey(userA, userB string) string {
	return "messages:" + domain.PairKey(userA, userB)
}

func lastSeenKey(userID string) string {
	return fmt.Sprintf("user:%s:last_seen", userID)
}

func lastLoginKey(userID string) string {
	return fmt.Sprintf("user:%s:last_login", userID)
}

// SetPresence advertises that userID is online on this instance, for
// cross-instance presence queries.
func (c *Client) SetPresence(ctx context.Context, userID, sessionID string) bool {
	return c.Set(ctx, presenceKey(userID), sessionID, PresenceTTL)
}

// HasPresence reports whether any instance recently advertised the user as
// online. Absence means "not known online here", never "offline for sure".
func (c *Client) HasPresence(ctx context.Context, userID string) bool {
	var sessionID string
	return c.Get(ctx, presenceKey(userID), &sessionID)
}

func (c *Client) DeletePresence(ctx context.Context, userID string) bool {
	return c.Delete(ctx, presenceKey(userID))
}

// RecentMessages reads the best-effort buffer for a conversation. The
// returned slice is newest first and at most RecentMessagesCap long.
func (c *Client) RecentMessages(ctx context.Context, userA, userB string) ([]domain.Message, bool) {
	var messages []domain.Message
	if !c.Get(ctx, recentMessagesKey(userA, userB), &messages) {
		return nil, false
	}
	return messages, true
}

// SetRecentMessages overwrites the buffer, truncating to RecentMessagesCap.
func (c *Client) SetRecentMessages(ctx context.Context, userA, userB string, messages []domain.Message) bool {
	if len(messages) > RecentMessagesCap {
		messages = messages[:RecentMessagesCap]
	}
	return c.Set(ctx, recentMessagesKey(userA, userB), messages, RecentMessagesTTL)
}

func (c *Client) SetLastSeen(ctx context.Context, userID string, at time.Time) bool {
	return c.Set(ctx, lastSeenKey(userID), at.UTC().Format(time.RFC3339), LastSeenTTL)
}

func (c *Client) DeleteLastSeen(ctx context.Context, userID string) bool {
	return c.Delete(ctx, lastSeenKey(userID))
}

func (c *Client) SetLastLogin(ctx context.Context, userID string, at time.Time) bool {
	return c.Set(ctx, lastLoginKey(userID), at.UTC().Format(time.RFC3339), LastSeenTTL)
}

// IncrementDailyCounter bumps the per-day counter for (action, actor). The
// key embeds the calendar day and the expiry is aligned to midnight UTC, so
// every counter resets at the day boundary.
func (c *Client) IncrementDailyCounter(ctx context.Context, action, actorID string, now time.Time) int64 {
	now = now.UTC()
	key := fmt.Sprintf("rate:%s:%s:%s", action, actorID, now.Format("2006-01-02"))
	midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	return c.IncrementCounter(ctx, key, midnight.Sub(now))
}
