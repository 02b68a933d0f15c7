package planner

import (
	"strings"
	"testing"

	"daytrip/internal/catalog"
)

func TestRadiusForHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  int
	}{
		{0.5, 5000},
		{1, 10000},
		{1.5, 20000},
		{2, 20000},
		{3, 30000},
		{3.5, 50000},
		{8, 50000},
	}
	for _, tc := range tests {
		if got := RadiusForHours(tc.hours); got != tc.want {
			t.Errorf("RadiusForHours(%v) = %d, want %d", tc.hours, got, tc.want)
		}
	}
}

func TestLocationTrip(t *testing.T) {
	candidates := []catalog.Place{
		place("cafe-low", catalog.CategoryCafe, 3.0),
		place("bbq", catalog.CategoryRestaurant, 4.7),
		place("palace", catalog.CategoryAttraction, 4.9),
		place("bbq", catalog.CategoryRestaurant, 4.7),
		place("cafe", catalog.CategoryCafe, 4.2),
	}

	plan := LocationTrip(candidates, LocationTripOptions{Location: "서울", Hours: 4.5, MinRating: 4.0})

	if plan.ID != "location-서울-4.5h" {
		t.Fatalf("id = %q", plan.ID)
	}
	if plan.Duration != 270 {
		t.Fatalf("duration = %d, want 270", plan.Duration)
	}
	if plan.Rating != 4.5 {
		t.Fatalf("rating = %v", plan.Rating)
	}
	if strings.Join(plan.Tags, ",") != "cafe,food,서울" {
		t.Fatalf("tags = %v", plan.Tags)
	}

	// 270 - 120 = 150; bbq 90 -> 60; cafe 60 -> 0.
	var got []string
	for i, p := range plan.Places {
		got = append(got, p.ID)
		if p.Order != i+1 {
			t.Fatalf("place %s order = %d, want %d", p.ID, p.Order, i+1)
		}
	}
	if !equalIDs(got, []string{"palace", "bbq", "cafe"}) {
		t.Fatalf("places = %v", got)
	}
	if plan.Places[0].Description != "palace is a attraction spot." {
		t.Fatalf("description = %q", plan.Places[0].Description)
	}
}

func TestLocationTripWholeHours(t *testing.T) {
	plan := LocationTrip(nil, LocationTripOptions{Location: "서울", Hours: 2})
	if plan.ID != "location-서울-2h" {
		t.Fatalf("id = %q", plan.ID)
	}
	if plan.Places == nil || len(plan.Places) != 0 {
		t.Fatalf("places = %v, want empty slice", plan.Places)
	}
}

func TestDayTrip(t *testing.T) {
	candidates := []catalog.Place{
		place("att1", catalog.CategoryAttraction, 4.5),
		place("att2", catalog.CategoryAttraction, 4.5),
		place("rest1", catalog.CategoryRestaurant, 4.3),
		place("cafe1", catalog.CategoryCafe, 4.9),
	}
	candidates[3].ImageURL = "https://img.example/cafe1.jpg"

	plan := DayTrip(candidates, DayTripOptions{
		Location:    "부산",
		Days:        2,
		Preferences: []string{"cafe"},
		Style:       StyleRelaxed,
		Companion:   CompanionFamily,
		Rand:        seqRand{},
		PlanID:      "abcd1234",
	})

	if plan.ID != "ai-trip-abcd1234" {
		t.Fatalf("id = %q", plan.ID)
	}
	if plan.Title != "부산 2-day trip" {
		t.Fatalf("title = %q", plan.Title)
	}
	if plan.Duration != 2*24*60 {
		t.Fatalf("duration = %d", plan.Duration)
	}
	if plan.ImageURL != "https://img.example/cafe1.jpg" {
		t.Fatalf("image = %q, want the best-rated candidate's image", plan.ImageURL)
	}
	if !strings.Contains(plan.Description, "relaxed itinerary with family") {
		t.Fatalf("description = %q", plan.Description)
	}
	if strings.Join(plan.Tags, ",") != "부산,slow-travel,family-trip,cafe-tour" {
		t.Fatalf("tags = %v", plan.Tags)
	}

	if len(plan.Days) != 2 {
		t.Fatalf("got %d day summaries, want 2", len(plan.Days))
	}
	perDay := map[int]int{}
	for _, p := range plan.Places {
		if p.Day < 1 || p.Day > 2 {
			t.Fatalf("place %s has day %d", p.ID, p.Day)
		}
		if p.Category == "" || p.VisitTime == "" {
			t.Fatalf("place %s is missing category or visit time: %+v", p.ID, p)
		}
		perDay[p.Day]++
	}
	// Fixed slots are not trimmed to the style's count.
	if perDay[1] != 4 || perDay[2] != 3 {
		t.Fatalf("places per day = %v, want day 1: 4, day 2: 3", perDay)
	}
}

func TestDayTripGeneratesID(t *testing.T) {
	plan := DayTrip(nil, DayTripOptions{Location: "Seoul", Days: 1, Rand: seqRand{}})
	if !strings.HasPrefix(plan.ID, "ai-trip-") || len(plan.ID) != len("ai-trip-")+8 {
		t.Fatalf("id = %q", plan.ID)
	}
	if len(plan.Places) != 0 || len(plan.Days) != 0 {
		t.Fatalf("expected an empty plan, got %+v", plan)
	}
}
