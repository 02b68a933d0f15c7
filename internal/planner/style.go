package planner

import (
	"strings"

	"daytrip/internal/catalog"
)

// TravelStyle controls how many places a day holds.
type TravelStyle string

const (
	StyleRelaxed   TravelStyle = "relaxed"
	StyleEfficient TravelStyle = "efficient"
	StyleBalanced  TravelStyle = "balanced"
)

// ParseTravelStyle accepts the English names and the Korean labels used by
// the mobile client. Anything else is balanced.
func ParseTravelStyle(s string) TravelStyle {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "relaxed", "여유":
		return StyleRelaxed
	case "efficient", "효율":
		return StyleEfficient
	default:
		return StyleBalanced
	}
}

// PlacesPerDay is 3 for relaxed, 6 for efficient and 5 otherwise.
func (s TravelStyle) PlacesPerDay() int {
	switch s {
	case StyleRelaxed:
		return 3
	case StyleEfficient:
		return 6
	default:
		return 5
	}
}

func (s TravelStyle) phrase() string {
	switch s {
	case StyleRelaxed:
		return "relaxed itinerary"
	case StyleEfficient:
		return "efficient itinerary"
	default:
		return "balanced itinerary"
	}
}

// Companion describes who the traveller goes with.
type Companion string

const (
	CompanionNone    Companion = ""
	CompanionSolo    Companion = "solo"
	CompanionFriends Companion = "friends"
	CompanionCouple  Companion = "couple"
	CompanionFamily  Companion = "family"
)

// ParseCompanion accepts English names and the Korean labels.
func ParseCompanion(s string) Companion {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "solo", "alone", "혼자":
		return CompanionSolo
	case "friends", "friend", "친구":
		return CompanionFriends
	case "couple", "partner", "연인":
		return CompanionCouple
	case "family", "가족":
		return CompanionFamily
	default:
		return CompanionNone
	}
}

func (c Companion) phrase() string {
	switch c {
	case CompanionSolo:
		return "solo"
	case CompanionFriends:
		return "with friends"
	case CompanionCouple:
		return "with your partner"
	case CompanionFamily:
		return "with family"
	default:
		return ""
	}
}

// styleDescription combines style and companion, e.g. "relaxed itinerary with family".
func styleDescription(style TravelStyle, who Companion) string {
	if p := who.phrase(); p != "" {
		return style.phrase() + " " + p
	}
	return style.phrase()
}

var preferenceTags = []struct {
	pref string
	tag  string
}{
	{pref: "famous", tag: "popular-spots"},
	{pref: "kids", tag: "kids-zone"},
	{pref: "pet", tag: "pet-friendly"},
	{pref: "cafe", tag: "cafe-tour"},
	{pref: "food", tag: "food-tour"},
}

// tripTags starts with the location, then style, companion and preference tags.
func tripTags(location string, style TravelStyle, who Companion, prefs []string) []string {
	tags := []string{location}

	switch style {
	case StyleRelaxed:
		tags = append(tags, "slow-travel")
	case StyleEfficient:
		tags = append(tags, "efficient-travel")
	}

	switch who {
	case CompanionSolo:
		tags = append(tags, "solo-trip")
	case CompanionFriends:
		tags = append(tags, "friends-trip")
	case CompanionCouple:
		tags = append(tags, "couple-trip")
	case CompanionFamily:
		tags = append(tags, "family-trip")
	}

	for _, pt := range preferenceTags {
		if catalog.HasPreference(prefs, pt.pref) {
			tags = append(tags, pt.tag)
		}
	}
	return tags
}
