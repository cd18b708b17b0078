package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestWatermark(t *testing.T, ttl time.Duration) *Watermark {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	wm, err := New(context.Background(), url, ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wm.Close() })
	return wm
}

func TestWatermark(t *testing.T) {
	ctx := context.Background()

	t.Run("should report a miss for an unknown channel", func(t *testing.T) {
		req := require.New(t)
		wm := newTestWatermark(t, time.Minute)

		_, ok, err := wm.Latest(ctx, uuid.New())
		req.NoError(err)
		req.False(ok)
	})

	t.Run("should never move backwards", func(t *testing.T) {
		req := require.New(t)
		wm := newTestWatermark(t, time.Minute)
		ch := uuid.New()
		t.Cleanup(func() { _ = wm.Forget(ctx, ch) })

		req.NoError(wm.Advance(ctx, ch, 7))
		req.NoError(wm.Advance(ctx, ch, 3))

		id, ok, err := wm.Latest(ctx, ch)
		req.NoError(err)
		req.True(ok)
		req.Equal(int64(7), id)

		req.NoError(wm.Advance(ctx, ch, 9))
		id, _, err = wm.Latest(ctx, ch)
		req.NoError(err)
		req.Equal(int64(9), id)
	})

	t.Run("should drop the key on forget", func(t *testing.T) {
		req := require.New(t)
		wm := newTestWatermark(t, time.Minute)
		ch := uuid.New()

		req.NoError(wm.Advance(ctx, ch, 4))
		req.NoError(wm.Forget(ctx, ch))

		_, ok, err := wm.Latest(ctx, ch)
		req.NoError(err)
		req.False(ok)
	})

	t.Run("should set a ttl on the key", func(t *testing.T) {
		req := require.New(t)
		wm := newTestWatermark(t, time.Minute)
		ch := uuid.New()
		t.Cleanup(func() { _ = wm.Forget(ctx, ch) })

		req.NoError(wm.Advance(ctx, ch, 1))
		ttl, err := wm.rdb.TTL(ctx, key(ch)).Result()
		req.NoError(err)
		req.Greater(ttl, time.Duration(0))
		req.LessOrEqual(ttl, time.Minute)
	})
}

func TestNop(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	var n Nop

	req.NoError(n.Advance(ctx, uuid.New(), 10))
	_, ok, err := n.Latest(ctx, uuid.New())
	req.NoError(err)
	req.False(ok)
	req.NoError(n.Forget(ctx, uuid.New()))
}
