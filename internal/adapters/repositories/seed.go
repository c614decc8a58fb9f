package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"venue-route-service/internal/domain"
)

type SeedFile struct {
	Venues []VenueSeed `yaml:"venues"`
}

type VenueSeed struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Layout []string    `yaml:"layout"`
	Stalls []StallSeed `yaml:"stalls"`
}

type StallSeed struct {
	ID     string    `yaml:"id"`
	Name   string    `yaml:"name"`
	Kind   string    `yaml:"kind"`
	X      int       `yaml:"x"`
	Y      int       `yaml:"y"`
	Width  int       `yaml:"width"`
	Height int       `yaml:"height"`
	Door   *CellSeed `yaml:"door"`
}

type CellSeed struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ParseSeed decodes a seed document and validates every venue. JSON
// documents are accepted as well since they are valid YAML.
func ParseSeed(data []byte) ([]*domain.Venue, error) {
	var doc SeedFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed: decode: %w", err)
	}

	venues := make([]*domain.Venue, 0, len(doc.Venues))
	seen := make(map[string]struct{}, len(doc.Venues))
	for i, vs := range doc.Venues {
		v, err := vs.toVenue()
		if err != nil {
			return nil, fmt.Errorf("parse seed: venue at index %d: %w", i+1, err)
		}
		if _, ok := seen[v.ID]; ok {
			return nil, fmt.Errorf("parse seed: duplicate venue id %q", v.ID)
		}
		seen[v.ID] = struct{}{}
		venues = append(venues, v)
	}

	return venues, nil
}

func (vs VenueSeed) toVenue() (*domain.Venue, error) {
	grid, err := domain.ParseGrid(vs.Layout)
	if err != nil {
		return nil, err
	}

	stalls := make([]domain.Stall, 0, len(vs.Stalls))
	for _, ss := range vs.Stalls {
		s := domain.Stall{
			ID:     strings.TrimSpace(ss.ID),
			Name:   ss.Name,
			Kind:   domain.StallKind(strings.ToLower(strings.TrimSpace(ss.Kind))),
			Origin: domain.Position{X: ss.X, Y: ss.Y},
			Width:  ss.Width,
			Height: ss.Height,
		}
		if ss.Door != nil {
			s.Door = domain.Position{X: ss.Door.X, Y: ss.Door.Y}
		}
		stalls = append(stalls, s)
	}

	return domain.NewVenue(strings.TrimSpace(vs.ID), vs.Name, grid, stalls)
}

// SeedFromFile loads a seed document and upserts every venue it describes.
func SeedFromFile(db *sql.DB, d Dialect, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("seed venues: read %q: %w", path, err)
	}

	venues, err := ParseSeed(data)
	if err != nil {
		return fmt.Errorf("seed venues: %w", err)
	}

	return SaveVenues(db, d, venues)
}

// SaveVenues upserts venues and replaces their stalls in one transaction.
func SaveVenues(db *sql.DB, d Dialect, venues []*domain.Venue) error {
	if db == nil {
		return errors.New("save venues: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("save venues: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsertVenue := d.Rebind(`
	INSERT INTO venues (venue_id, name, layout)
	VALUES (?, ?, ?)
	ON CONFLICT (venue_id) DO UPDATE
	SET name = EXCLUDED.name,
		layout = EXCLUDED.layout;
	`)
	deleteStalls := d.Rebind(`DELETE FROM stalls WHERE venue_id = ?;`)
	insertStall := d.Rebind(`
	INSERT INTO stalls (
		venue_id, stall_id, seq, name, kind,
		origin_x, origin_y, width, height, door_x, door_y
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)

	for _, v := range venues {
		layout := strings.Join(v.Grid.Lines(), "\n")
		if _, err := tx.Exec(upsertVenue, v.ID, v.Name, layout); err != nil {
			return fmt.Errorf("save venues: upsert venue_id=%s: %w", v.ID, err)
		}
		if _, err := tx.Exec(deleteStalls, v.ID); err != nil {
			return fmt.Errorf("save venues: clear stalls venue_id=%s: %w", v.ID, err)
		}
		for i, s := range v.Stalls {
			_, err := tx.Exec(insertStall,
				v.ID, s.ID, i, s.Name, string(s.Kind),
				s.Origin.X, s.Origin.Y, s.Width, s.Height, s.Door.X, s.Door.Y,
			)
			if err != nil {
				return fmt.Errorf("save venues: insert stall venue_id=%s stall_id=%s: %w", v.ID, s.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save venues: commit tx: %w", err)
	}

	return nil
}
