package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/config"
)

type recordingHandler struct {
	seen []string
	fail map[string]bool
}

func (h *recordingHandler) Handle(_ context.Context, msg redis.XMessage) error {
	kind, _ := msg.Values["type"].(string)
	h.seen = append(h.seen, kind)
	if h.fail[kind] {
		return errors.New("delivery failed")
	}
	return nil
}

var notificationsConfig = config.NotificationsConfig{
	Stream:        "notadez:notifications",
	Group:         "notadez-workers",
	Consumer:      "worker-test",
	ClaimInterval: 30 * time.Second,
}

func newTestConsumer(t *testing.T, handler MessageHandler) (*Consumer, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := NewConsumer(client, notificationsConfig, zerolog.Nop(), handler)
	c.block = 10 * time.Millisecond
	return c, client
}

func TestEnsureGroupIsIdempotent(t *testing.T) {
	c, _ := newTestConsumer(t, &recordingHandler{})
	ctx := context.Background()

	require.NoError(t, c.EnsureGroup(ctx))
	require.NoError(t, c.EnsureGroup(ctx))
}

func TestReadAcksOnlyHandledMessages(t *testing.T) {
	handler := &recordingHandler{fail: map[string]bool{"onboarding_reminder": true}}
	c, client := newTestConsumer(t, handler)
	ctx := context.Background()

	for _, kind := range []string{"password_recovery", "onboarding_reminder"} {
		require.NoError(t, client.XAdd(ctx, &redis.XAddArgs{
			Stream: notificationsConfig.Stream,
			Values: map[string]any{"type": kind, "userId": "1"},
		}).Err())
	}

	// The group starts at 0, so entries added before it existed are read.
	require.NoError(t, c.EnsureGroup(ctx))
	require.NoError(t, c.read(ctx))
	assert.Equal(t, []string{"password_recovery", "onboarding_reminder"}, handler.seen)

	pending, err := client.XPending(ctx, notificationsConfig.Stream, notificationsConfig.Group).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Count)
}

func TestStartStopsOnCancel(t *testing.T) {
	c, _ := newTestConsumer(t, &recordingHandler{})
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := c.Start(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
