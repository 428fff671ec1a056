// Package plan owns the top-level trip product: the aggregate composing
// day itineraries, the MongoDB persistence gateway, and the HTTP
// handlers for the plan surface.
package plan

import (
	"fmt"

	"planora/itinerary"
	"planora/models"
)

// New creates an empty plan for a user with a stub first day, matching
// the shape a fresh editor starts from.
func New(userID string) *models.Plan {
	return &models.Plan{
		UserID:    userID,
		TotalDays: 1,
		Itineraries: map[int]models.ItineraryData{
			1: newDayStub(1),
		},
		ImageUrls:         []string{},
		SelectedCountries: []string{},
	}
}

func newDayStub(day int) models.ItineraryData {
	stub := models.ItineraryData{
		ItineraryID: day,
		Title:       fmt.Sprintf("Trip Day %d", day),
		Description: fmt.Sprintf("Description for Day %d", day),
	}
	stub.Normalize()
	return stub
}

// AddDay allocates the next day number as max(existing)+1, or 1 for an
// empty plan. Numbers are never reused, so a plan's day sequence only
// grows.
func AddDay(p *models.Plan) (int, error) {
	if p.Sell {
		return 0, itinerary.ErrPlanLocked
	}
	next := 1
	for day := range p.Itineraries {
		if day >= next {
			next = day + 1
		}
	}
	if p.Itineraries == nil {
		p.Itineraries = map[int]models.ItineraryData{}
	}
	p.Itineraries[next] = newDayStub(next)
	p.TotalDays = len(p.Itineraries)
	return next, nil
}

// ApplyDayCommit replaces one day with a committed snapshot and
// recomputes the plan rollup. Applying the same snapshot twice leaves
// the plan unchanged.
func ApplyDayCommit(p *models.Plan, day int, committed models.ItineraryData) error {
	if p.Sell {
		return itinerary.ErrPlanLocked
	}
	if day < 1 {
		return itinerary.ErrIndexOutOfRange
	}
	if p.Itineraries == nil {
		p.Itineraries = map[int]models.ItineraryData{}
	}
	p.Itineraries[day] = committed
	p.TotalDays = len(p.Itineraries)
	p.TotalPrice = rollup(p)
	return nil
}

// rollup recomputes plan.totalPrice as the sum of each day's committed
// totalCost.
func rollup(p *models.Plan) float64 {
	var total float64
	for _, day := range p.Itineraries {
		total += day.TotalCost
	}
	return total
}

// MarkForSale publishes the plan. Irreversible: there is no unmark
// operation, and every later mutation fails with ErrPlanLocked.
func MarkForSale(p *models.Plan) {
	p.Sell = true
}

// ToPersistablePayload flattens the day map into the gateway payload:
// plan metadata plus itineraries as a list in day order.
func ToPersistablePayload(p *models.Plan) models.InitialPlan {
	days := p.DayNumbers()
	list := make([]models.ItineraryData, 0, len(days))
	for _, day := range days {
		list = append(list, p.Itineraries[day])
	}
	meta := *p
	meta.Itineraries = nil
	return models.InitialPlan{Plan: meta, Itineraries: list}
}
