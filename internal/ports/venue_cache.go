package ports

import (
	"context"

	"venue-route-service/internal/domain"
)

// Contract for caching venue layouts between requests. Route results are
// never cached; every plan is computed from the layout.
type VenueCache interface {
	// Return the cached venue, or ok=false on a miss.
	Get(ctx context.Context, id string) (v *domain.Venue, ok bool, err error)
	Put(ctx context.Context, v *domain.Venue) error
}
