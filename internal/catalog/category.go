package catalog

import "strings"

// Category is the fixed classification every Place carries.
type Category string

const (
	CategoryAttraction  Category = "attraction"
	CategoryRestaurant  Category = "restaurant"
	CategoryCafe        Category = "cafe"
	CategoryShopping    Category = "shopping"
	CategoryPetFriendly Category = "pet-friendly"
	CategoryLodging     Category = "lodging"
	CategoryOther       Category = "other"
)

type categoryRule struct {
	category Category
	tokens   []string
}

// categoryRules are evaluated in order and the first match wins, so a label
// such as "카페/음식점" resolves to cafe.
var categoryRules = []categoryRule{
	{category: CategoryCafe, tokens: []string{"카페", "cafe", "coffee"}},
	{category: CategoryRestaurant, tokens: []string{"음식점", "식당", "restaurant", "eatery"}},
	{category: CategoryAttraction, tokens: []string{"관광", "명소", "tourism", "landmark", "attraction"}},
	{category: CategoryShopping, tokens: []string{"쇼핑", "shopping"}},
	{category: CategoryLodging, tokens: []string{"숙박", "lodging", "hotel"}},
}

// Categorize maps a provider's free-text category label to a Category.
func Categorize(label string) Category {
	label = strings.ToLower(label)
	for _, rule := range categoryRules {
		for _, token := range rule.tokens {
			if strings.Contains(label, token) {
				return rule.category
			}
		}
	}
	return CategoryOther
}

// VisitMinutes is the default time spent at a place of this category.
func (c Category) VisitMinutes() int {
	switch c {
	case CategoryCafe:
		return 60
	case CategoryRestaurant:
		return 90
	case CategoryAttraction, CategoryShopping, CategoryPetFriendly:
		return 120
	default:
		return 60
	}
}

var localLabels = map[Category]string{
	CategoryAttraction:  "관광지",
	CategoryRestaurant:  "음식점",
	CategoryCafe:        "카페",
	CategoryShopping:    "쇼핑",
	CategoryPetFriendly: "반려동물 동반",
	CategoryLodging:     "숙소",
	CategoryOther:       "기타",
}

// LocalLabel is the Korean display name of the category.
func (c Category) LocalLabel() string {
	if label, ok := localLabels[c]; ok {
		return label
	}
	return localLabels[CategoryOther]
}

// Matches reports whether term is a case-insensitive substring of the
// category name or its Korean label.
func (c Category) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	return strings.Contains(string(c), term) || strings.Contains(c.LocalLabel(), term)
}
