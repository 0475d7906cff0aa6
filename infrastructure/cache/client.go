// Package cache wraps the distributed Redis cache behind a
// degrade-gracefully client: every operation returns its "no value" result
// instead of an error when the cache was never configured or the connection
// has failed. Callers must assume the cache can vanish at any time.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultOpTimeout = 2 * time.Second

// Client is safe for concurrent use. The zero value is not usable, build it
// with New.
type Client struct {
	rdb       *redis.Client
	log       *slog.Logger
	enabled   atomic.Bool
	opTimeout time.Duration
}

// New builds the client. An empty URL, an unparsable URL or a failed initial
// ping all yield a permanently disabled client; the process keeps running
// without the cache. There is no automatic reconnection: the first
// connection-level error after startup also disables the client for the
// rest of the process lifetime.
func New(ctx context.Context, url string, opTimeout time.Duration, log *slog.Logger) *Client {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	c := &Client{log: log, opTimeout: opTimeout}

	if url == "" {
		log.Warn("Cache disabled: REDIS_URL not set, running without Redis")
		return c
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Cache disabled: invalid REDIS_URL", "error", err)
		return c
	}
	c.rdb = redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := c.rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("Cache disabled: initial ping failed", "error", err)
		return c
	}
	c.enabled.Store(true)
	log.Info("Cache connected", "addr", opts.Addr)
	return c
}

// Enabled reports whether cache operations currently do anything.
func (c *Client) Enabled() bool {
	return c.enabled.Load()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// markFailed flips the capability flag off for the remainder of the process
// lifetime. redis.Nil is a normal absent result, never a failure.
func (c *Client) markFailed(op string, err error) {
	c.log.Error("Cache operation failed, disabling cache", "op", op, "error", err)
	c.enabled.Store(false)
}

func (c *Client) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.opTimeout)
}

// Set serializes value as JSON and writes it with an expiry. Returns whether
// the write was applied.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if !c.Enabled() {
		return false
	}
	payload, err := json.Marshal(value)
	if err != nil {
		c.log.Error("Cache SET serialization failed", "key", key, "error", err)
		return false
	}
	ctx, cancel := c.opContext(ctx)
	defer cancel()
	if err := c.rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		c.markFailed("SET", err)
		return false
	}
	return true
}

// Get deserializes the stored JSON into dest. A missing key and a malformed
// stored value are both reported as absent, reads are never fatal.
func (c *Client) Get(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}
	ctx, cancel := c.opContext(ctx)
	defer cancel()
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.markFailed("GET", err)
		}
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		c.log.Warn("Cache GET returned malformed value, treating as absent", "key", key, "error", err)
		return false
	}
	return true
}

// Delete removes a key. Returns whether the delete was applied.
func (c *Client) Delete(ctx context.Context, key string) bool {
	if !c.Enabled() {
		return false
	}
	ctx, cancel := c.opContext(ctx)
	defer cancel()
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.markFailed("DEL", err)
		return false
	}
	return true
}

// Exists reports whether a key is present. A disabled cache always answers
// false.
func (c *Client) Exists(ctx context.Context, key string) bool {
	if !c.Enabled() {
		return false
	}
	ctx, cancel := c.opContext(ctx)
	defer cancel()
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		c.markFailed("EXISTS", err)
		return false
	}
	return n == 1
}

// IncrementCounter atomically increments a rolling-window counter. The
// expiry is attached only on the transition from absent to 1, so the
// counter resets once the window elapses. Returns 0 when the cache is
// unavailable; callers must read 0 as "limit not enforceable here", not as
// "usage is zero".
func (c *Client) IncrementCounter(ctx context.Context, key string, ttl time.Duration) int64 {
	if !c.Enabled() {
		return 0
	}
	ctx, cancel := c.opContext(ctx)
	defer cancel()
	current, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		c.markFailed("INCR", err)
		return 0
	}
	if current == 1 {
		if err := c.rdb.Expire(ctx, key, ttl).Err(); err != nil {
			c.markFailed("EXPIRE", err)
		}
	}
	return current
}
