package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"venue-route-service/internal/domain"
	"venue-route-service/internal/platform/obs"
	"venue-route-service/internal/ports"
)

// SQL-backed implementation of the VenueRepository port.
type SQLVenueRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLVenueRepository(db *sql.DB, d Dialect) *SQLVenueRepository {
	return &SQLVenueRepository{DB: db, Dialect: d}
}

// Load a venue, rebuilding its grid from the stored layout.
func (s *SQLVenueRepository) GetVenue(ctx context.Context, id string) (_ *domain.Venue, err error) {
	defer obs.Time(ctx, "venues.repo.GetVenue")(&err)

	if s.DB == nil {
		return nil, errors.New("sql venue repository: DB is nil")
	}

	var name, layout string
	q := s.Dialect.Rebind(`SELECT name, layout FROM venues WHERE venue_id = ?;`)
	err = s.DB.QueryRowContext(ctx, q, id).Scan(&name, &layout)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get venue %q: %w", id, ports.ErrVenueNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get venue %q: query venues table: %w", id, err)
	}

	grid, err := domain.ParseGrid(strings.Split(layout, "\n"))
	if err != nil {
		return nil, fmt.Errorf("get venue %q: stored layout: %w", id, err)
	}

	stalls, err := s.listStalls(ctx, id)
	if err != nil {
		return nil, err
	}

	v, err := domain.NewVenue(id, name, grid, stalls)
	if err != nil {
		return nil, fmt.Errorf("get venue %q: %w", id, err)
	}
	return v, nil
}

func (s *SQLVenueRepository) listStalls(ctx context.Context, venueID string) ([]domain.Stall, error) {
	q := s.Dialect.Rebind(`
	SELECT
		stall_id, name, kind,
		origin_x, origin_y, width, height, door_x, door_y
	FROM stalls
	WHERE venue_id = ?
	ORDER BY seq;
	`)
	rows, err := s.DB.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, fmt.Errorf("get venue %q: query stalls table: %w", venueID, err)
	}
	defer rows.Close()

	stalls := make([]domain.Stall, 0, 16)
	for rows.Next() {
		var st domain.Stall
		var kind string
		err := rows.Scan(
			&st.ID, &st.Name, &kind,
			&st.Origin.X, &st.Origin.Y, &st.Width, &st.Height, &st.Door.X, &st.Door.Y,
		)
		if err != nil {
			return nil, fmt.Errorf("get venue %q: scan stall row: %w", venueID, err)
		}
		st.Kind = domain.StallKind(kind)
		stalls = append(stalls, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get venue %q: stall row iteration: %w", venueID, err)
	}

	return stalls, nil
}

// Return every venue ordered by id.
func (s *SQLVenueRepository) ListVenues(ctx context.Context) (_ []ports.VenueSummary, err error) {
	defer obs.Time(ctx, "venues.repo.ListVenues")(&err)

	if s.DB == nil {
		return nil, errors.New("sql venue repository: DB is nil")
	}

	query := `
	SELECT
		v.venue_id,
		v.name,
		v.layout,
		(SELECT COUNT(*) FROM stalls s WHERE s.venue_id = v.venue_id)
	FROM venues v
	ORDER BY v.venue_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list venues: query venues table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.VenueSummary, 0, 8)
	for rows.Next() {
		var vs ports.VenueSummary
		var layout string
		if err := rows.Scan(&vs.ID, &vs.Name, &layout, &vs.StallCount); err != nil {
			return nil, fmt.Errorf("list venues: scan row: %w", err)
		}
		lines := strings.Split(layout, "\n")
		vs.Rows = len(lines)
		if len(lines) > 0 {
			vs.Cols = len(lines[0])
		}
		out = append(out, vs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list venues: row iteration: %w", err)
	}

	return out, nil
}
