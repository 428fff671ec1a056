package preview

import (
	"planora/models"
	"planora/summary"
)

// DayPreview is a read-only rendering of one committed day.
type DayPreview struct {
	Day         int                         `json:"day"`
	Title       string                      `json:"title"`
	Description string                      `json:"description"`
	Locations   []models.TripLocation       `json:"locations"`
	Transports  []models.TransportInterface `json:"transports"`
	Cost        float64                     `json:"cost"`
}

// PlanPreview is the share/buyer view of a plan: committed days plus
// the rolled-up summary, no working buffers.
type PlanPreview struct {
	PlanID      string              `json:"planId"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Countries   []string            `json:"countries"`
	ForSale     bool                `json:"forSale"`
	Days        []DayPreview        `json:"days"`
	Summary     summary.PlanSummary `json:"summary"`
}

// Build assembles the preview from a plan and its committed days.
func Build(p *models.Plan, itineraries []models.ItineraryData) PlanPreview {
	pv := PlanPreview{
		PlanID:      p.PlanID,
		Name:        p.Name,
		Description: p.Description,
		Countries:   p.SelectedCountries,
		ForSale:     p.Sell,
		Days:        []DayPreview{},
		Summary:     summary.Summarize(itineraries),
	}
	for i, day := range itineraries {
		pv.Days = append(pv.Days, DayPreview{
			Day:         i + 1,
			Title:       day.Title,
			Description: day.Description,
			Locations:   day.Locations,
			Transports:  day.AllTransports,
			Cost:        day.TotalCost,
		})
	}
	return pv
}
