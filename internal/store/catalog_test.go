package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"daytrip/internal/models"
)

func TestSearchAttractionsByAddress(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM attractions WHERE 1=1 AND LOWER(addr1) LIKE $1 ESCAPE '\' ORDER BY id ASC LIMIT $2`)).
		WithArgs("%서울%", 20).
		WillReturnRows(sqlmock.NewRows(attractionRowColumns).
			AddRow(int64(1), "경복궁", "서울 종로구", "", "", "", 126.977, 37.579, "1", "", now, now))

	got, err := s.SearchAttractions(context.Background(), models.CatalogQuery{Address: " 서울 ", Limit: 20})
	if err != nil {
		t.Fatalf("SearchAttractions error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "경복궁" || got[0].MapY != 37.579 {
		t.Fatalf("unexpected attractions: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSearchFoodsByKeyword(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM foods WHERE 1=1 AND (LOWER(title) LIKE $1 ESCAPE '\' OR LOWER(addr1) LIKE $2 ESCAPE '\') ORDER BY id ASC LIMIT $3`)).
		WithArgs("%bbq%", "%bbq%", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "addr1", "tel", "image", "mapx", "mapy"}))

	got, err := s.SearchFoods(context.Background(), models.CatalogQuery{Keyword: "BBQ", Limit: 10})
	if err != nil {
		t.Fatalf("SearchFoods error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSearchPetTourSpotsUnfiltered(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`FROM pet_tour_spots WHERE 1=1 ORDER BY id ASC$`).
		WillReturnError(errors.New("boom"))

	if _, err := s.SearchPetTourSpots(context.Background(), models.CatalogQuery{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestSearchEscapesLikeWildcards(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM attractions WHERE 1=1 AND (LOWER(title) LIKE $1 ESCAPE '\' OR LOWER(addr1) LIKE $2 ESCAPE '\')`)).
		WithArgs(`%50\%\_off\\%`, `%50\%\_off\\%`).
		WillReturnRows(sqlmock.NewRows(attractionRowColumns))

	if _, err := s.SearchAttractions(context.Background(), models.CatalogQuery{Keyword: `50%_OFF\`}); err != nil {
		t.Fatalf("SearchAttractions error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestContainsPattern(t *testing.T) {
	tests := map[string]string{
		"서울":     "%서울%",
		"a_b":    `%a\_b%`,
		"100%":   `%100\%%`,
		`c:\dir`: `%c:\\dir%`,
	}
	for in, want := range tests {
		if got := containsPattern(in); got != want {
			t.Errorf("containsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}
