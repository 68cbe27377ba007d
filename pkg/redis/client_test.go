package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, environment string) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient(fmt.Sprintf("redis://%s", mr.Addr()), environment, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestClientSetGetDelete(t *testing.T) {
	client, _ := newTestClient(t, "development")
	ctx := context.Background()
	key := client.KeyBuilder.KeyCalendarConnected("user-123")

	require.NoError(t, client.Set(ctx, key, "1", time.Minute))

	val, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "1", val)

	require.NoError(t, client.Delete(ctx, key))

	_, err = client.Get(ctx, key)
	assert.Equal(t, Nil, err)
}

func TestClientGetMissingKey(t *testing.T) {
	client, _ := newTestClient(t, "development")

	_, err := client.Get(context.Background(), "never-written")
	assert.Equal(t, Nil, err)
}

func TestClientSetWithTTL(t *testing.T) {
	client, mr := newTestClient(t, "development")
	ctx := context.Background()
	key := client.KeyBuilder.KeyCalendarConnected("user-123")

	require.NoError(t, client.Set(ctx, key, "1", TTLCalendarConnected))

	mr.FastForward(TTLCalendarConnected + time.Second)
	_, err := client.Get(ctx, key)
	assert.Equal(t, Nil, err, "the flag expires with the session window")
}

func TestClientInvalidURL(t *testing.T) {
	_, err := NewClient("not-a-url", "development", zap.NewNop())
	assert.Error(t, err)
}

func TestKeyBuilderPrefixes(t *testing.T) {
	tests := []struct {
		environment string
		want        string
	}{
		{environment: "development", want: "staging:calendar:user:user-123:connected"},
		{environment: "staging", want: "staging:calendar:user:user-123:connected"},
		{environment: "production", want: "prod:calendar:user:user-123:connected"},
	}
	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			assert.Equal(t, tt.want, kb.KeyCalendarConnected("user-123"))
		})
	}
}

func TestClientHealth(t *testing.T) {
	client, mr := newTestClient(t, "development")

	require.NoError(t, client.Health(context.Background()))

	mr.Close()
	assert.Error(t, client.Health(context.Background()))
}
