package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = Close() })
	return mr
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "user:7", UserKey(7))
	assert.Equal(t, "post:12", PostKey(12))
}

func TestAside_LoadsOnceThenHits(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	loads := 0
	load := func(dest *cachedThing) func() error {
		return func() error {
			loads++
			*dest = cachedThing{ID: 1, Name: "loaded"}
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, UserKey(1), &first, UserTTL, load(&first)))
	assert.Equal(t, "loaded", first.Name)
	assert.True(t, mr.Exists(UserKey(1)))
	assert.Equal(t, UserTTL, mr.TTL(UserKey(1)))

	var second cachedThing
	require.NoError(t, Aside(ctx, UserKey(1), &second, UserTTL, load(&second)))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, loads)

	InvalidateUser(ctx, 1)
	assert.False(t, mr.Exists(UserKey(1)))
}

func TestAside_LoadErrorNotCached(t *testing.T) {
	mr := setupMiniredis(t)

	var dest cachedThing
	err := Aside(context.Background(), PostKey(3), &dest, PostTTL, func() error {
		return errors.New("db down")
	})
	assert.Error(t, err)
	assert.False(t, mr.Exists(PostKey(3)))
}

func TestGetJSON_CorruptEntryDropped(t *testing.T) {
	mr := setupMiniredis(t)
	require.NoError(t, mr.Set(PostKey(4), "{not json"))

	var dest cachedThing
	assert.False(t, GetJSON(context.Background(), PostKey(4), &dest))
	assert.False(t, mr.Exists(PostKey(4)))
}

func TestAside_WithoutClient(t *testing.T) {
	SetClient(nil)

	calls := 0
	var dest cachedThing
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(context.Background(), UserKey(9), &dest, time.Minute, func() error {
			calls++
			return nil
		}))
	}
	assert.Equal(t, 2, calls)
	assert.NoError(t, Close())
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	InitRedis("redis://" + mr.Addr() + "/0")
	require.NotNil(t, GetClient())
	require.NoError(t, Close())

	InitRedis(mr.Addr())
	require.NotNil(t, GetClient())
	require.NoError(t, Close())

	InitRedis("")
	assert.Nil(t, GetClient())

	InitRedis("redis://%zz")
	assert.Nil(t, GetClient())
}
