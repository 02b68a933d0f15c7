package pettour

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"daytrip/internal/models"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <header><resultCode>0000</resultCode><resultMsg>OK</resultMsg></header>
  <body>
    <items>
      <item>
        <contentid>125266</contentid>
        <title>강아지숲</title>
        <addr1>강원특별자치도 춘천시</addr1>
        <addr2></addr2>
        <areacode>32</areacode>
        <sigungucode>13</sigungucode>
        <mapx>127.7297</mapx>
        <mapy>37.8813</mapy>
        <tel>033-000-0000</tel>
        <firstimage>http://img/1.jpg</firstimage>
        <contenttypeid>12</contenttypeid>
        <cat1>A02</cat1><cat2>A0202</cat2><cat3>A02020700</cat3>
        <createdtime>20200101000000</createdtime>
        <modifiedtime>20240101000000</modifiedtime>
      </item>
      <item>
        <contentid>999</contentid>
        <title>No coordinates</title>
        <mapx></mapx>
        <mapy>bad</mapy>
      </item>
    </items>
    <numOfRows>10000</numOfRows><pageNo>1</pageNo><totalCount>2</totalCount>
  </body>
</response>`

func TestFetchAll(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/B551011/KorPetTourService/petTourSyncList" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, sampleXML)
	}))
	defer srv.Close()

	spots, err := NewClient("abc%2Bdef", srv.URL, 0).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll error: %v", err)
	}

	if !strings.HasPrefix(gotQuery, "serviceKey=abc%2Bdef&") {
		t.Fatalf("service key not passed through verbatim: %s", gotQuery)
	}
	for _, want := range []string{"numOfRows=10000", "pageNo=1", "_type=xml", "MobileOS=ETC", "MobileApp=PetTrip"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %s", gotQuery, want)
		}
	}

	if len(spots) != 2 {
		t.Fatalf("got %d spots, want 2", len(spots))
	}
	first := spots[0]
	if first.ContentID != "125266" || first.Title != "강아지숲" || first.MapX != 127.7297 || first.MapY != 37.8813 || first.Cat3 != "A02020700" {
		t.Fatalf("unexpected first spot: %+v", first)
	}
	if spots[1].MapX != 0 || spots[1].MapY != 0 {
		t.Fatalf("blank or malformed coordinates should be 0: %+v", spots[1])
	}
}

func TestFetchAllNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "SERVICE KEY IS NOT REGISTERED", http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := NewClient("k", srv.URL, 0).FetchAll(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

type stubFetcher struct {
	spots []models.PetTourSpot
	err   error
}

func (f stubFetcher) FetchAll(context.Context) ([]models.PetTourSpot, error) {
	return f.spots, f.err
}

type stubReplacer struct {
	calls int
	got   []models.PetTourSpot
	err   error
}

func (r *stubReplacer) ReplacePetTourSpots(_ context.Context, spots []models.PetTourSpot) (int, error) {
	r.calls++
	r.got = spots
	return len(spots), r.err
}

func TestSyncerRun(t *testing.T) {
	rep := &stubReplacer{}
	s := NewSyncer(stubFetcher{spots: []models.PetTourSpot{{ContentID: "1"}, {ContentID: "2"}}}, rep, zerolog.Nop())

	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Fetched != 2 || res.Stored != 2 || rep.calls != 1 {
		t.Fatalf("unexpected result %+v (replace calls %d)", res, rep.calls)
	}
}

func TestSyncerFetchFailureKeepsData(t *testing.T) {
	rep := &stubReplacer{}
	s := NewSyncer(stubFetcher{err: errors.New("timeout")}, rep, zerolog.Nop())

	if _, err := s.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if rep.calls != 0 {
		t.Fatal("replace must not run when the fetch fails")
	}
}

func TestSyncerReplaceFailure(t *testing.T) {
	rep := &stubReplacer{err: errors.New("tx aborted")}
	s := NewSyncer(stubFetcher{spots: []models.PetTourSpot{{ContentID: "1"}}}, rep, zerolog.Nop())

	if _, err := s.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
