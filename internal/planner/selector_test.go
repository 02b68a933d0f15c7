package planner

import (
	"testing"

	"daytrip/internal/catalog"
)

func place(id string, category catalog.Category, rating float64) catalog.Place {
	return catalog.Place{ID: id, Name: id, Category: category, Rating: rating, VisitMinutes: category.VisitMinutes()}
}

func uniformMatrix(n, minutes int) [][]int {
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
		for j := range m[i] {
			if i != j {
				m[i][j] = minutes
			}
		}
	}
	return m
}

func ids(places []catalog.Place) []string {
	out := make([]string, len(places))
	for i, p := range places {
		out[i] = p.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSelectEmpty(t *testing.T) {
	if got := Select(nil, nil, 120); len(got) != 0 {
		t.Fatalf("Select(nil) = %v, want empty", got)
	}
}

func TestSelectRatingOrderAndBudget(t *testing.T) {
	places := []catalog.Place{
		place("cafe", catalog.CategoryCafe, 4.1),         // 60
		place("palace", catalog.CategoryAttraction, 4.9), // 120
		place("market", catalog.CategoryShopping, 4.5),   // 120
		place("bbq", catalog.CategoryRestaurant, 4.7),    // 90
	}
	// 300 - 120 (palace) = 180; bbq 90+10 -> 80; market 120+10 does not fit; cafe 60+10 -> 10; stop.
	got := Select(places, uniformMatrix(len(places), 10), 300)

	want := []string{"palace", "bbq", "cafe"}
	if !equalIDs(ids(got), want) {
		t.Fatalf("Select = %v, want %v", ids(got), want)
	}
}

func TestSelectFirstPlaceAlwaysTaken(t *testing.T) {
	places := []catalog.Place{place("palace", catalog.CategoryAttraction, 4.9), place("cafe", catalog.CategoryCafe, 4.0)}
	got := Select(places, uniformMatrix(2, 5), 30)
	if !equalIDs(ids(got), []string{"palace"}) {
		t.Fatalf("Select = %v, want only the first place", ids(got))
	}
}

func TestSelectCapsAtFive(t *testing.T) {
	var places []catalog.Place
	for i := 0; i < 12; i++ {
		places = append(places, place(string(rune('a'+i)), catalog.CategoryCafe, 4.0))
	}
	got := Select(places, uniformMatrix(len(places), 0), 10000)
	if len(got) != MaxSelected {
		t.Fatalf("len(Select) = %d, want %d", len(got), MaxSelected)
	}
	// Equal ratings keep input order.
	if !equalIDs(ids(got), []string{"a", "b", "c", "d", "e"}) {
		t.Fatalf("Select = %v", ids(got))
	}
}

func TestSelectNeverExceedsBudgetAfterFirst(t *testing.T) {
	places := []catalog.Place{
		place("a", catalog.CategoryAttraction, 5.0),
		place("b", catalog.CategoryRestaurant, 4.8),
		place("c", catalog.CategoryCafe, 4.6),
		place("d", catalog.CategoryShopping, 4.4),
		place("e", catalog.CategoryCafe, 4.2),
		place("f", catalog.CategoryRestaurant, 4.0),
	}
	matrix := [][]int{
		{0, 15, 40, 25, 5, 60},
		{15, 0, 20, 35, 10, 45},
		{40, 20, 0, 12, 30, 8},
		{25, 35, 12, 0, 18, 22},
		{5, 10, 30, 18, 0, 14},
		{60, 45, 8, 22, 14, 0},
	}

	for _, budget := range []int{60, 120, 240, 360, 480, 600} {
		got := Select(places, matrix, budget)
		if len(got) > MaxSelected {
			t.Fatalf("budget %d: %d places selected", budget, len(got))
		}

		index := map[string]int{}
		for i, p := range places {
			index[p.ID] = i
		}
		spent := 0
		for i := 1; i < len(got); i++ {
			spent += got[i].VisitMinutes + matrix[index[got[i-1].ID]][index[got[i].ID]]
		}
		if spent > budget-got[0].VisitMinutes && len(got) > 1 {
			t.Fatalf("budget %d: spent %d beyond the %d left after the first place", budget, spent, budget-got[0].VisitMinutes)
		}
	}
}

func TestSelectUsesMatrixFromLastSelected(t *testing.T) {
	places := []catalog.Place{
		place("a", catalog.CategoryCafe, 5.0),
		place("b", catalog.CategoryCafe, 4.5),
		place("c", catalog.CategoryCafe, 4.0),
	}
	// a->b is cheap, a->c is expensive but b->c is cheap.
	matrix := [][]int{
		{0, 5, 500},
		{5, 0, 5},
		{500, 5, 0},
	}
	got := Select(places, matrix, 200)
	if !equalIDs(ids(got), []string{"a", "b", "c"}) {
		t.Fatalf("Select = %v, want travel measured from the last selected place", ids(got))
	}
}

func TestSelectMalformedMatrixFallsBack(t *testing.T) {
	places := []catalog.Place{
		place("a", catalog.CategoryCafe, 5.0),
		place("b", catalog.CategoryCafe, 4.0),
	}
	// 120 - 60 = 60; b costs 60 + 30 fallback and does not fit.
	if got := Select(places, nil, 120); !equalIDs(ids(got), []string{"a"}) {
		t.Fatalf("Select = %v, want fallback travel to exclude b", ids(got))
	}
	// 160 - 60 = 100; b costs 90 and fits.
	if got := Select(places, nil, 160); !equalIDs(ids(got), []string{"a", "b"}) {
		t.Fatalf("Select = %v, want b within budget", ids(got))
	}
}

func TestSortByRatingStable(t *testing.T) {
	in := []catalog.Place{place("x", catalog.CategoryCafe, 4.0), place("y", catalog.CategoryCafe, 4.5), place("z", catalog.CategoryCafe, 4.0)}
	got := SortByRating(in)
	if !equalIDs(ids(got), []string{"y", "x", "z"}) {
		t.Fatalf("SortByRating = %v", ids(got))
	}
	if in[0].ID != "x" {
		t.Fatalf("input slice was modified")
	}
}
