package store

import (
	"context"
	"fmt"
	"strings"

	"daytrip/internal/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern turns s into a LIKE pattern matching s as a literal
// substring. Queries using it must declare ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// catalogWhere builds the shared address/keyword filter. Placeholders are
// written as ? and rebound by the caller.
func catalogWhere(q models.CatalogQuery) (string, []any) {
	where := " WHERE 1=1"
	var args []any
	if addr := strings.TrimSpace(q.Address); addr != "" {
		where += ` AND LOWER(addr1) LIKE ? ESCAPE '\'`
		args = append(args, containsPattern(strings.ToLower(addr)))
	}
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		like := containsPattern(strings.ToLower(kw))
		where += ` AND (LOWER(title) LIKE ? ESCAPE '\' OR LOWER(addr1) LIKE ? ESCAPE '\')`
		args = append(args, like, like)
	}
	return where, args
}

func withLimit(query string, args []any, limit int) (string, []any) {
	query += " ORDER BY id ASC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return query, args
}

// SearchAttractions returns attractions matching q.
func (s *Store) SearchAttractions(ctx context.Context, q models.CatalogQuery) ([]models.Attraction, error) {
	where, args := catalogWhere(q)
	query, args := withLimit(`SELECT `+attractionColumns+` FROM attractions`+where, args, q.Limit)

	out := []models.Attraction{}
	if err := s.x.SelectContext(ctx, &out, s.x.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("search attractions: %w", err)
	}
	return out, nil
}

// SearchFoods returns restaurants matching q.
func (s *Store) SearchFoods(ctx context.Context, q models.CatalogQuery) ([]models.Food, error) {
	where, args := catalogWhere(q)
	query, args := withLimit(`SELECT id, title, addr1, tel, image, mapx, mapy FROM foods`+where, args, q.Limit)

	out := []models.Food{}
	if err := s.x.SelectContext(ctx, &out, s.x.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("search foods: %w", err)
	}
	return out, nil
}

const petTourColumns = `id, content_id, title, addr1, addr2, area_code, sigungu_code, mapx, mapy, tel,
	first_image, content_type_id, cat1, cat2, cat3, overview, created_time, modified_time`

// SearchPetTourSpots returns pet-friendly spots matching q.
func (s *Store) SearchPetTourSpots(ctx context.Context, q models.CatalogQuery) ([]models.PetTourSpot, error) {
	where, args := catalogWhere(q)
	query, args := withLimit(`SELECT `+petTourColumns+` FROM pet_tour_spots`+where, args, q.Limit)

	out := []models.PetTourSpot{}
	if err := s.x.SelectContext(ctx, &out, s.x.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("search pet tour spots: %w", err)
	}
	return out, nil
}
