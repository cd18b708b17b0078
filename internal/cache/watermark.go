package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// advanceScript sets the key only if the new id is higher than the stored
// one, so a slow writer can never move the watermark backwards. The TTL is
// refreshed either way.
var advanceScript = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1]) or '0')
if tonumber(ARGV[1]) > cur then
	redis.call('SET', KEYS[1], ARGV[1], 'EX', ARGV[2])
else
	redis.call('EXPIRE', KEYS[1], ARGV[2])
end
return 1
`)

// Watermark keeps the highest message id seen per channel in Redis.
//
// Keys expire after ttl. If a write ever fails to advance a key and the
// follow-up delete fails too, the stale value ages out instead of hiding
// new messages forever.
type Watermark struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to redisURL ("redis://host:6379/0") and pings it.
func New(ctx context.Context, redisURL string, ttl time.Duration) (*Watermark, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Watermark{rdb: rdb, ttl: ttl}, nil
}

func key(channelID uuid.UUID) string {
	return "issuechat:watermark:" + channelID.String()
}

// Latest returns the cached highest message id of the channel. ok is false
// when nothing is cached.
func (w *Watermark) Latest(ctx context.Context, channelID uuid.UUID) (int64, bool, error) {
	v, err := w.rdb.Get(ctx, key(channelID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get watermark: %w", err)
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse watermark %q: %w", v, err)
	}
	return id, true, nil
}

func (w *Watermark) Advance(ctx context.Context, channelID uuid.UUID, id int64) error {
	ttl := int64(w.ttl / time.Second)
	if ttl < 1 {
		ttl = 1
	}
	if err := advanceScript.Run(ctx, w.rdb, []string{key(channelID)}, id, ttl).Err(); err != nil {
		return fmt.Errorf("advance watermark: %w", err)
	}
	return nil
}

func (w *Watermark) Forget(ctx context.Context, channelID uuid.UUID) error {
	if err := w.rdb.Del(ctx, key(channelID)).Err(); err != nil {
		return fmt.Errorf("forget watermark: %w", err)
	}
	return nil
}

func (w *Watermark) Health(ctx context.Context) error {
	return w.rdb.Ping(ctx).Err()
}

func (w *Watermark) Close() error {
	return w.rdb.Close()
}

// Nop is used when REDIS_URL is empty. It never has anything cached, so
// every poll goes to the store.
type Nop struct{}

func (Nop) Latest(context.Context, uuid.UUID) (int64, bool, error) { return 0, false, nil }
func (Nop) Advance(context.Context, uuid.UUID, int64) error       { return nil }
func (Nop) Forget(context.Context, uuid.UUID) error               { return nil }
