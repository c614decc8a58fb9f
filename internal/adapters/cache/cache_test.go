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

	"venue-route-service/internal/domain"
	"venue-route-service/internal/ports"
)

func testVenue(t *testing.T) *domain.Venue {
	t.Helper()
	g, err := domain.ParseGrid([]string{
		"B....",
		".SS#.",
		".SS..",
	})
	require.NoError(t, err)
	v, err := domain.NewVenue("hall", "Hall", g, []domain.Stall{
		{ID: "box", Name: "Box", Kind: domain.StallBox, Origin: domain.Position{X: 0, Y: 0}},
		{ID: "shop", Name: "Shop", Kind: domain.StallStore, Origin: domain.Position{X: 1, Y: 1}, Width: 2, Height: 2, Door: domain.Position{X: 2, Y: 2}},
	})
	require.NoError(t, err)
	return v
}

func newTestCache(t *testing.T, ttl time.Duration) (*RedisVenueCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisVenueCacheWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisVenueCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()
	v := testVenue(t)

	_, ok, err := c.Get(ctx, "hall")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, v))
	assert.True(t, mr.Exists("venue:hall"))

	got, ok, err := c.Get(ctx, "hall")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, v.Grid.Lines(), got.Grid.Lines())
	assert.Equal(t, v.Stalls, got.Stalls)
}

func TestRedisVenueCacheExpires(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, c.Put(ctx, testVenue(t)))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "hall")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisVenueCacheCorruptEntry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set("venue:hall", "{not json"))

	_, ok, err := c.Get(context.Background(), "hall")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewRedisVenueCacheBadURL(t *testing.T) {
	_, err := NewRedisVenueCache("not-a-url", time.Minute)
	assert.Error(t, err)
}

type countingRepo struct {
	venue *domain.Venue
	gets  int
}

func (r *countingRepo) GetVenue(_ context.Context, id string) (*domain.Venue, error) {
	r.gets++
	if r.venue == nil || r.venue.ID != id {
		return nil, ports.ErrVenueNotFound
	}
	return r.venue, nil
}

func (r *countingRepo) ListVenues(context.Context) ([]ports.VenueSummary, error) {
	return []ports.VenueSummary{{ID: r.venue.ID}}, nil
}

func TestCachedVenueRepositoryReadThrough(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	repo := &countingRepo{venue: testVenue(t)}
	cached := NewCachedVenueRepository(repo, c)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		v, err := cached.GetVenue(ctx, "hall")
		require.NoError(t, err)
		assert.Equal(t, "hall", v.ID)
	}
	assert.Equal(t, 1, repo.gets)

	_, err := cached.GetVenue(ctx, "missing")
	assert.True(t, errors.Is(err, ports.ErrVenueNotFound))

	list, err := cached.ListVenues(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCachedVenueRepositoryFallsBackWhenRedisDown(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	mr.Close()
	repo := &countingRepo{venue: testVenue(t)}
	cached := NewCachedVenueRepository(repo, c)

	v, err := cached.GetVenue(context.Background(), "hall")
	require.NoError(t, err)
	assert.Equal(t, "hall", v.ID)
	assert.Equal(t, 1, repo.gets)
}
