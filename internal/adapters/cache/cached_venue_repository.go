package cache

import (
	"context"
	"log"

	"venue-route-service/internal/domain"
	"venue-route-service/internal/platform/obs"
	"venue-route-service/internal/ports"
)

// CachedVenueRepository reads venues through a VenueCache. Cache failures
// are logged and the request falls back to Repo.
type CachedVenueRepository struct {
	Repo  ports.VenueRepository
	Cache ports.VenueCache
}

func NewCachedVenueRepository(repo ports.VenueRepository, c ports.VenueCache) *CachedVenueRepository {
	return &CachedVenueRepository{Repo: repo, Cache: c}
}

func (r *CachedVenueRepository) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	v, ok, err := r.Cache.Get(ctx, id)
	if err != nil {
		log.Printf("req_id=%s venue cache get failed venue_id=%s err=%v", obs.RequestID(ctx), id, err)
	}
	if ok {
		return v, nil
	}

	v, err = r.Repo.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.Cache.Put(ctx, v); err != nil {
		log.Printf("req_id=%s venue cache put failed venue_id=%s err=%v", obs.RequestID(ctx), id, err)
	}
	return v, nil
}

func (r *CachedVenueRepository) ListVenues(ctx context.Context) ([]ports.VenueSummary, error) {
	return r.Repo.ListVenues(ctx)
}
