// Package costs is the pure cost model: every function here only reads
// its input, never fails, and is safe to call from any goroutine.
package costs

import (
	"fmt"
	"math"

	"planora/models"
)

// Warning records an item that was skipped during a cost computation.
// One malformed item must never poison a whole plan's totals.
type Warning struct {
	Location string
	Item     string
	Reason   string
}

func (w Warning) String() string {
	return fmt.Sprintf("location %q item %q: %s", w.Location, w.Item, w.Reason)
}

// LocationItemsCost sums the item prices of one location. Items whose
// price is not a finite number are skipped and reported as warnings.
func LocationItemsCost(loc models.TripLocation) (float64, []Warning) {
	var total float64
	var warns []Warning
	for _, item := range loc.Details.Items {
		if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
			warns = append(warns, Warning{
				Location: loc.Name,
				Item:     item.Name,
				Reason:   "price is not a finite number",
			})
			continue
		}
		total += item.Price
	}
	return total, warns
}

// TransportLegCost prices one dual-sided leg. The first leg of a gap
// counts both fares: its outbound price is the cost of reaching the
// stop from the previous one and is only known here. Every later leg
// shares that outbound ride, so only its return/alternate fare adds
// cost. Compatibility with stored plans depends on this exact rule.
func TransportLegCost(detail models.TransportDetail, firstLeg bool) float64 {
	if firstLeg {
		return safePrice(detail.PriceTo) + safePrice(detail.PriceFrom)
	}
	return safePrice(detail.PriceFrom)
}

// TransportTotalCost prices every leg of one transport gap.
func TransportTotalCost(details []models.TransportDetail) float64 {
	var total float64
	for i, detail := range details {
		total += TransportLegCost(detail, i == 0)
	}
	return total
}

// DayCost is the full cost of a day: all location items plus all
// transport gaps.
func DayCost(day models.ItineraryData) (float64, []Warning) {
	var total float64
	var warns []Warning
	for _, loc := range day.Locations {
		cost, w := LocationItemsCost(loc)
		total += cost
		warns = append(warns, w...)
	}
	for _, t := range day.AllTransports {
		total += TransportTotalCost(t.Details)
	}
	return total, warns
}

func safePrice(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}
