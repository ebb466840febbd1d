package notify

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishThenDecode(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	pub := NewPublisher(client, "notadez:notifications")
	sent := Message{Type: TypePasswordRecovery, UserID: 42, Email: "ana@example.com", Token: "tok"}
	require.NoError(t, pub.Publish(context.Background(), sent))

	entries, err := client.XRange(context.Background(), "notadez:notifications", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got, err := Decode(entries[0].Values)
	require.NoError(t, err)
	assert.Equal(t, sent, got)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	_, err := Decode(map[string]any{"userId": "1"})
	assert.Error(t, err)

	_, err = Decode(map[string]any{"type": "password_recovery", "userId": "abc"})
	assert.Error(t, err)
}

func TestValuesOmitsEmptyOptionalFields(t *testing.T) {
	values := Message{Type: TypeOnboardingReminder, UserID: 3, Email: "x@example.com"}.Values()

	assert.Equal(t, "3", values["userId"])
	assert.NotContains(t, values, "token")
	assert.NotContains(t, values, "name")
}
