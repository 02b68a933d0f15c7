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

var attractionRowColumns = []string{
	"id", "title", "addr1", "addr2", "tel", "image", "mapx", "mapy", "areacode", "overview", "created_at", "updated_at",
}

func TestListAttractionsFiltersByLocation(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM attractions WHERE 1=1 AND addr1 ILIKE $1 ESCAPE '\' ORDER BY id ASC`)).
		WithArgs("%강릉%").
		WillReturnRows(sqlmock.NewRows(attractionRowColumns).
			AddRow(int64(1), "경포대", "강원 강릉시", "", "", "", 128.9, 37.8, "32", "", now, now))

	got, err := s.ListAttractions(context.Background(), models.AttractionFilter{Location: " 강릉 "})
	if err != nil {
		t.Fatalf("ListAttractions error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "경포대" || got[0].MapY != 37.8 {
		t.Fatalf("attractions = %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListAttractionsEmpty(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM attractions WHERE 1=1 ORDER BY id ASC`)).
		WillReturnRows(sqlmock.NewRows(attractionRowColumns))

	got, err := s.ListAttractions(context.Background(), models.AttractionFilter{})
	if err != nil {
		t.Fatalf("ListAttractions error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestAttractionByIDNotFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM attractions WHERE id = $1`)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(attractionRowColumns))

	if _, err := s.AttractionByID(context.Background(), 9); !errors.Is(err, ErrAttractionNotFound) {
		t.Fatalf("err = %v, want ErrAttractionNotFound", err)
	}
}

func TestCreateAttraction(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO attractions`)).
		WithArgs("남산타워", "서울 용산구", "", "", "", 126.98, 37.55, "1", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))

	a, err := s.CreateAttraction(context.Background(), models.Attraction{
		Title: " 남산타워 ", Addr1: "서울 용산구", MapX: 126.98, MapY: 37.55, AreaCode: "1",
	})
	if err != nil {
		t.Fatalf("CreateAttraction error: %v", err)
	}
	if a.ID != 3 || a.Title != "남산타워" {
		t.Fatalf("attraction = %+v", a)
	}
}

func TestCreateAttractionValidation(t *testing.T) {
	s, _ := newMockStore(t)

	tests := []struct {
		name string
		in   models.Attraction
	}{
		{name: "blank title", in: models.Attraction{Title: "  "}},
		{name: "latitude out of range", in: models.Attraction{Title: "x", MapY: 91}},
		{name: "longitude out of range", in: models.Attraction{Title: "x", MapX: -181}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.CreateAttraction(context.Background(), tt.in); !errors.Is(err, ErrInvalidAttraction) {
				t.Fatalf("err = %v, want ErrInvalidAttraction", err)
			}
		})
	}
}

func TestUpdateAttractionNotFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE attractions`)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	_, err := s.UpdateAttraction(context.Background(), models.Attraction{ID: 4, Title: "x"})
	if !errors.Is(err, ErrAttractionNotFound) {
		t.Fatalf("err = %v, want ErrAttractionNotFound", err)
	}
}

func TestDeleteAttraction(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM attractions WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM attractions WHERE id = $1`)).
		WithArgs(int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.DeleteAttraction(context.Background(), 5); err != nil {
		t.Fatalf("delete existing: %v", err)
	}
	if err := s.DeleteAttraction(context.Background(), 6); !errors.Is(err, ErrAttractionNotFound) {
		t.Fatalf("delete missing err = %v", err)
	}
}
