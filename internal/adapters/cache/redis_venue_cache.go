package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"venue-route-service/internal/domain"
	"venue-route-service/internal/platform/obs"
)

// RedisVenueCache stores encoded venue layouts in redis with a TTL.
type RedisVenueCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisVenueCache connects to the redis server at url, e.g. redis://localhost:6379/0.
func NewRedisVenueCache(url string, ttl time.Duration) (*RedisVenueCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis venue cache: parse url: %w", err)
	}
	return NewRedisVenueCacheWithClient(redis.NewClient(opt), ttl), nil
}

func NewRedisVenueCacheWithClient(rdb *redis.Client, ttl time.Duration) *RedisVenueCache {
	return &RedisVenueCache{rdb: rdb, ttl: ttl, prefix: "venue:"}
}

func (c *RedisVenueCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *RedisVenueCache) Close() error {
	return c.rdb.Close()
}

type venueRecord struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Layout []string      `json:"layout"`
	Stalls []stallRecord `json:"stalls"`
}

type stallRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	DoorX  int    `json:"door_x"`
	DoorY  int    `json:"door_y"`
}

func encodeVenue(v *domain.Venue) ([]byte, error) {
	rec := venueRecord{
		ID:     v.ID,
		Name:   v.Name,
		Layout: v.Grid.Lines(),
		Stalls: make([]stallRecord, 0, len(v.Stalls)),
	}
	for _, s := range v.Stalls {
		rec.Stalls = append(rec.Stalls, stallRecord{
			ID: s.ID, Name: s.Name, Kind: string(s.Kind),
			X: s.Origin.X, Y: s.Origin.Y, Width: s.Width, Height: s.Height,
			DoorX: s.Door.X, DoorY: s.Door.Y,
		})
	}
	return json.Marshal(rec)
}

func decodeVenue(data []byte) (*domain.Venue, error) {
	var rec venueRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	grid, err := domain.ParseGrid(rec.Layout)
	if err != nil {
		return nil, err
	}
	stalls := make([]domain.Stall, 0, len(rec.Stalls))
	for _, s := range rec.Stalls {
		stalls = append(stalls, domain.Stall{
			ID: s.ID, Name: s.Name, Kind: domain.StallKind(s.Kind),
			Origin: domain.Position{X: s.X, Y: s.Y}, Width: s.Width, Height: s.Height,
			Door: domain.Position{X: s.DoorX, Y: s.DoorY},
		})
	}
	return domain.NewVenue(rec.ID, rec.Name, grid, stalls)
}

// Get returns the cached venue. A miss is ok=false with a nil error.
func (c *RedisVenueCache) Get(ctx context.Context, id string) (_ *domain.Venue, _ bool, err error) {
	defer obs.Time(ctx, "venue.cache.Get")(&err)

	data, err := c.rdb.Get(ctx, c.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get venue cache %q: %w", id, err)
	}

	v, err := decodeVenue(data)
	if err != nil {
		return nil, false, fmt.Errorf("get venue cache %q: decode: %w", id, err)
	}
	return v, true, nil
}

// Put stores v under its id for the configured TTL.
func (c *RedisVenueCache) Put(ctx context.Context, v *domain.Venue) error {
	if v == nil || v.Grid == nil {
		return errors.New("put venue cache: venue must have a grid")
	}

	data, err := encodeVenue(v)
	if err != nil {
		return fmt.Errorf("put venue cache %q: encode: %w", v.ID, err)
	}

	if err := c.rdb.Set(ctx, c.prefix+v.ID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("put venue cache %q: %w", v.ID, err)
	}
	return nil
}
