package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set CHAMPA_TEST_REDIS_URL (e.g. redis://localhost:6379/15) to run.
func testRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	url := os.Getenv("CHAMPA_TEST_REDIS_URL")
	if url == "" {
		t.Skip("CHAMPA_TEST_REDIS_URL not set, skipping Redis session tests")
	}

	client, err := NewRedisClient(context.Background(), url)
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, "champa:test:"+uuid.NewString()+":", time.Minute)
}

func TestRedisStore_PutGetRemove(t *testing.T) {
	s := testRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "tok", 42))

	id, err := s.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	ttl, err := s.client.TTL(ctx, s.key("tok")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, s.Remove(ctx, "tok"))
	_, err = s.Get(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_UnknownToken(t *testing.T) {
	s := testRedisStore(t)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
