package store

import (
	"context"
	"fmt"

	"daytrip/internal/models"
)

// ReplacePetTourSpots deletes every stored pet tour spot and inserts spots in
// a single transaction. Readers see either the old set or the new one.
func (s *Store) ReplacePetTourSpots(ctx context.Context, spots []models.PetTourSpot) (int, error) {
	tx, err := s.x.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pet_tour_spots`); err != nil {
		return 0, fmt.Errorf("delete pet tour spots: %w", err)
	}

	inserted := 0
	for _, spot := range spots {
		res, err := tx.NamedExecContext(ctx, `
			INSERT INTO pet_tour_spots (
				content_id, title, addr1, addr2, area_code, sigungu_code, mapx, mapy, tel,
				first_image, content_type_id, cat1, cat2, cat3, overview, created_time, modified_time
			) VALUES (
				:content_id, :title, :addr1, :addr2, :area_code, :sigungu_code, :mapx, :mapy, :tel,
				:first_image, :content_type_id, :cat1, :cat2, :cat3, :overview, :created_time, :modified_time
			)
			ON CONFLICT (content_id) DO NOTHING
		`, spot)
		if err != nil {
			return 0, fmt.Errorf("insert pet tour spot %s: %w", spot.ContentID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return inserted, nil
}
