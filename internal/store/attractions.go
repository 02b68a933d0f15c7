package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"daytrip/internal/models"
)

var (
	// ErrAttractionNotFound signals a missing attraction record.
	ErrAttractionNotFound = errors.New("attraction not found")
	// ErrInvalidAttraction indicates validation failure for attraction data.
	ErrInvalidAttraction = errors.New("invalid attraction")
)

const attractionColumns = `id, title, addr1, addr2, tel, image, mapx, mapy, areacode, overview, created_at, updated_at`

// ListAttractions returns attractions ordered by id, optionally narrowed by address.
func (s *Store) ListAttractions(ctx context.Context, filter models.AttractionFilter) ([]models.Attraction, error) {
	query := `SELECT ` + attractionColumns + ` FROM attractions WHERE 1=1`
	var args []any
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		query += ` AND addr1 ILIKE ? ESCAPE '\'`
		args = append(args, containsPattern(loc))
	}
	query += ` ORDER BY id ASC`

	attractions := []models.Attraction{}
	if err := s.x.SelectContext(ctx, &attractions, s.x.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select attractions: %w", err)
	}
	return attractions, nil
}

// AttractionByID returns a single attraction.
func (s *Store) AttractionByID(ctx context.Context, id int64) (models.Attraction, error) {
	var a models.Attraction
	err := s.x.GetContext(ctx, &a, `SELECT `+attractionColumns+` FROM attractions WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Attraction{}, ErrAttractionNotFound
		}
		return models.Attraction{}, fmt.Errorf("select attraction: %w", err)
	}
	return a, nil
}

// CreateAttraction inserts a new attraction.
func (s *Store) CreateAttraction(ctx context.Context, a models.Attraction) (models.Attraction, error) {
	a = normalizeAttraction(a)
	if err := validateAttraction(a); err != nil {
		return models.Attraction{}, err
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO attractions (title, addr1, addr2, tel, image, mapx, mapy, areacode, overview)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, a.Title, a.Addr1, a.Addr2, a.Tel, a.Image, a.MapX, a.MapY, a.AreaCode, a.Overview).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return models.Attraction{}, fmt.Errorf("insert attraction: %w", err)
	}
	return a, nil
}

// UpdateAttraction overwrites every editable field of attraction a.ID.
func (s *Store) UpdateAttraction(ctx context.Context, a models.Attraction) (models.Attraction, error) {
	a = normalizeAttraction(a)
	if err := validateAttraction(a); err != nil {
		return models.Attraction{}, err
	}

	err := s.db.QueryRowContext(ctx, `
		UPDATE attractions
		SET title = $2, addr1 = $3, addr2 = $4, tel = $5, image = $6,
		    mapx = $7, mapy = $8, areacode = $9, overview = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, a.ID, a.Title, a.Addr1, a.Addr2, a.Tel, a.Image, a.MapX, a.MapY, a.AreaCode, a.Overview).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Attraction{}, ErrAttractionNotFound
		}
		return models.Attraction{}, fmt.Errorf("update attraction: %w", err)
	}
	return a, nil
}

// DeleteAttraction removes an attraction.
func (s *Store) DeleteAttraction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM attractions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attraction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete attraction: %w", err)
	}
	if n == 0 {
		return ErrAttractionNotFound
	}
	return nil
}

func normalizeAttraction(a models.Attraction) models.Attraction {
	a.Title = strings.TrimSpace(a.Title)
	a.Addr1 = strings.TrimSpace(a.Addr1)
	a.Addr2 = strings.TrimSpace(a.Addr2)
	return a
}

func validateAttraction(a models.Attraction) error {
	if a.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidAttraction)
	}
	if a.MapY < -90 || a.MapY > 90 || a.MapX < -180 || a.MapX > 180 {
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidAttraction)
	}
	return nil
}
