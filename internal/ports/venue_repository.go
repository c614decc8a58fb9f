package ports

import (
	"context"
	"errors"

	"venue-route-service/internal/domain"
)

// ErrVenueNotFound is returned when no venue exists for an id.
var ErrVenueNotFound = errors.New("venue not found")

// VenueSummary is the listing view of a venue, without its layout.
type VenueSummary struct {
	ID         string
	Name       string
	Rows       int
	Cols       int
	StallCount int
}

// Port: a boundary for retrieving venue layouts from a data source.
type VenueRepository interface {
	// Retrieve a venue with its grid and stalls. Returns ErrVenueNotFound for unknown ids.
	GetVenue(ctx context.Context, id string) (*domain.Venue, error)
	// List every venue, ordered by id.
	ListVenues(ctx context.Context) ([]VenueSummary, error)
}
