package redis

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/postboard/internal/core/domain"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestConnect(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, client.Ping(context.Background()).Err())

	mr.Close()
	_, err = Connect(context.Background(), Config{Addr: mr.Addr(), Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}

func TestResetTokenStore_SaveAndTakeOnce(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewResetTokenStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-1", 42, 72*time.Hour))
	assert.True(t, mr.Exists("forget-password:tok-1"))
	assert.Equal(t, 72*time.Hour, mr.TTL("forget-password:tok-1"))

	id, ok, err := store.Take(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok, err = store.Take(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResetTokenStore_Expired(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewResetTokenStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-2", 7, time.Hour))
	mr.FastForward(2 * time.Hour)

	_, ok, err := store.Take(ctx, "tok-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResetTokenStore_ConcurrentTakeSucceedsOnce(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewResetTokenStore(client)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "race", 1, time.Hour))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, err := store.Take(ctx, "race"); err == nil && ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestResetTokenStore_CorruptValue(t *testing.T) {
	mr, client := newTestRedis(t)
	require.NoError(t, mr.Set("forget-password:bad", "not-a-number"))

	_, _, err := NewResetTokenStore(client).Take(context.Background(), "bad")
	assert.Error(t, err)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	missing, err := store.Load(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, "sid", domain.SessionData{UserID: 9, CreatedAt: created}, time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("sess:sid"))

	got, err := store.Load(ctx, "sid")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(9), got.UserID)
	assert.True(t, created.Equal(got.CreatedAt))

	require.NoError(t, store.Delete(ctx, "sid"))
	assert.False(t, mr.Exists("sess:sid"))
}

func TestSessionStore_Expiry(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sid", domain.SessionData{UserID: 1}, time.Minute))
	mr.FastForward(time.Minute + time.Second)

	got, err := store.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Nil(t, got)
}
