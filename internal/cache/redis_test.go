package cache

import (
	"context"
	"testing"

	"github.com/NUTechnolgyInc/NU-GoogleUCP-SFCC-POC/internal/catalog"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	product := &catalog.Product{
		ID:     "wool-socks",
		Name:   "Merino Wool Socks",
		Offers: &catalog.Offer{Price: "19.99", PriceCurrency: "USD"},
	}
	require.NoError(t, cache.Set(ctx, product.ID, product))

	got, err := cache.Get(ctx, "wool-socks")
	require.NoError(t, err)
	assert.Equal(t, product, got)
}

func TestRedisCache_GetMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_GetCorruptValue(t *testing.T) {
	cache, mr := newTestCache(t)
	require.NoError(t, mr.Set("product:broken", "{not json"))

	_, err := cache.Get(context.Background(), "broken")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Delete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "p1", &catalog.Product{ID: "p1"}))
	require.NoError(t, cache.Delete(ctx, "p1"))

	_, err := cache.Get(ctx, "p1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_SetAppliesTTL(t *testing.T) {
	cache, mr := newTestCache(t)

	require.NoError(t, cache.Set(context.Background(), "p1", &catalog.Product{ID: "p1"}))

	ttl := mr.TTL("product:p1")
	assert.Greater(t, ttl.Minutes(), 14.0)
}
