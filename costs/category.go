package costs

import (
	"strings"

	"planora/models"
)

// Spend buckets for the plan-level breakdown.
const (
	BucketAccommodation = "Accommodation"
	BucketFood          = "Food"
	BucketActivities    = "Activities"
	BucketOther         = "Other"
)

// CategoryBucket maps a location type onto one of four spend buckets,
// case-insensitively. Unknown and empty types land in Other.
func CategoryBucket(locationType string) string {
	switch strings.ToLower(locationType) {
	case "accommodation":
		return BucketAccommodation
	case "food & beverage":
		return BucketFood
	case "activities", "adventure & outdoor activities":
		return BucketActivities
	default:
		return BucketOther
	}
}

// CategorizeLocationCost adds a location's item cost to its bucket in
// breakdown. Warnings from skipped items are returned to the caller.
func CategorizeLocationCost(loc models.TripLocation, breakdown map[string]float64) []Warning {
	cost, warns := LocationItemsCost(loc)
	breakdown[CategoryBucket(loc.Type)] += cost
	return warns
}
