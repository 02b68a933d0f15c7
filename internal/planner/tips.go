package planner

import "daytrip/internal/catalog"

const tipsPerPlace = 2

var categoryTips = map[catalog.Category][]string{
	catalog.CategoryAttraction: {
		"Check the opening hours before you go.",
		"Parking can be limited, so public transport is recommended.",
		"Look out for areas where photography is not allowed.",
	},
	catalog.CategoryRestaurant: {
		"Reservations are recommended.",
		"Avoid peak hours to cut down on waiting time.",
		"Check the popular dishes in advance.",
	},
	catalog.CategoryCafe: {
		"Wi-Fi is available.",
		"It is even better with a dessert.",
		"Grab a window seat and enjoy the view.",
	},
	catalog.CategoryShopping: {
		"Check whether a sale is on.",
		"Paying by card is easier than cash.",
		"Don't miss the souvenir corner.",
	},
	catalog.CategoryPetFriendly: {
		"A leash is required for your pet.",
		"Pack your pet's supplies ahead of time.",
		"Bring waste bags out of courtesy to other visitors.",
	},
}

var genericTips = []string{
	"Reading up on the place beforehand makes the visit more fun.",
	"Take a look around the nearby sights too.",
	"Reviews from other visitors can help.",
}

// Tips samples two distinct tips for the category.
func Tips(category catalog.Category, r catalog.Rand) []string {
	pool, ok := categoryTips[category]
	if !ok {
		pool = genericTips
	}
	return sample(pool, tipsPerPlace, r)
}

// sample draws k items without replacement using a partial Fisher-Yates shuffle.
func sample(pool []string, k int, r catalog.Rand) []string {
	if k >= len(pool) {
		return append([]string(nil), pool...)
	}
	shuffled := append([]string(nil), pool...)
	for i := 0; i < k; i++ {
		j := i + r.IntN(len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:k]
}
