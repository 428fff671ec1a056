// Package summary derives cross-cutting rollups from a plan's days:
// totals, per-day costs, category splits, note tallies, transport-mode
// inventory and subtype histograms. All derivations are independent and
// use fresh accumulators, so the same input always yields the same
// summary.
package summary

import (
	"fmt"
	"sort"

	"planora/costs"
	"planora/models"
)

type DayCost struct {
	Day  string  `json:"day"`
	Cost float64 `json:"cost"`
}

type CategoryBreakdown struct {
	Transport     float64 `json:"transport"`
	Accommodation float64 `json:"accommodation"`
	Food          float64 `json:"food"`
	Activities    float64 `json:"activities"`
	Other         float64 `json:"other"`
}

type NoteThemeCounts struct {
	ToAvoid    int `json:"toAvoid"`
	Warning    int `json:"warning"`
	Profit     int `json:"profit"`
	DontForget int `json:"dontForget"`
}

// PlanSummary is the payload behind the global-plan view.
type PlanSummary struct {
	TotalDays       int               `json:"totalDays"`
	TotalCost       float64           `json:"totalCost"`
	DayWiseCost     []DayCost         `json:"dayWiseCost"`
	Categories      CategoryBreakdown `json:"categoryBreakdown"`
	NoteThemes      NoteThemeCounts   `json:"noteThemeCounts"`
	TransportModes  []string          `json:"transportModeInventory"`
	SubtypeCounts   map[string]int    `json:"subtypeCounts"`
	TotalLocations  int               `json:"totalLocations"`
	TotalActivities int               `json:"totalActivities"`
}

// Summarize aggregates a plan's days in the order given. Day labels are
// the 1-based position in that order, not the itineraryId field.
func Summarize(itineraries []models.ItineraryData) PlanSummary {
	s := PlanSummary{
		TotalDays:     len(itineraries),
		DayWiseCost:   make([]DayCost, 0, len(itineraries)),
		SubtypeCounts: map[string]int{},
	}

	for i, day := range itineraries {
		dayCost, _ := costs.DayCost(day)
		s.TotalCost += dayCost
		s.DayWiseCost = append(s.DayWiseCost, DayCost{
			Day:  fmt.Sprintf("Day %d", i+1),
			Cost: dayCost,
		})
	}

	s.Categories = categoryBreakdown(itineraries)
	s.NoteThemes = noteThemeCounts(itineraries)
	s.TransportModes = transportModeInventory(itineraries)

	for _, day := range itineraries {
		for _, loc := range day.Locations {
			s.TotalLocations++
			if loc.Subtype != "" {
				s.SubtypeCounts[loc.Subtype]++
			}
			if loc.Type == models.TypeAdventureOutdoor {
				s.TotalActivities++
			}
		}
	}

	return s
}

func categoryBreakdown(itineraries []models.ItineraryData) CategoryBreakdown {
	buckets := map[string]float64{}
	var transport float64
	for _, day := range itineraries {
		for _, loc := range day.Locations {
			costs.CategorizeLocationCost(loc, buckets)
		}
		for _, t := range day.AllTransports {
			transport += costs.TransportTotalCost(t.Details)
		}
	}
	return CategoryBreakdown{
		Transport:     transport,
		Accommodation: buckets[costs.BucketAccommodation],
		Food:          buckets[costs.BucketFood],
		Activities:    buckets[costs.BucketActivities],
		Other:         buckets[costs.BucketOther],
	}
}

func noteThemeCounts(itineraries []models.ItineraryData) NoteThemeCounts {
	var counts NoteThemeCounts
	tally := func(notes []models.Note) {
		for _, note := range notes {
			theme, ok := models.NormalizeNoteTheme(note.Theme)
			if !ok {
				continue
			}
			switch theme {
			case models.ThemeToAvoid:
				counts.ToAvoid++
			case models.ThemeWarning:
				counts.Warning++
			case models.ThemeProfit:
				counts.Profit++
			case models.ThemeDontForget:
				counts.DontForget++
			}
		}
	}
	for _, day := range itineraries {
		for _, loc := range day.Locations {
			tally(loc.Notes)
		}
		for _, t := range day.AllTransports {
			tally(t.Notes)
		}
	}
	return counts
}

// transportModeInventory collects the distinct typeFrom/typeTo values
// across every leg, sorted for stable output.
func transportModeInventory(itineraries []models.ItineraryData) []string {
	seen := map[string]bool{}
	for _, day := range itineraries {
		for _, t := range day.AllTransports {
			for _, detail := range t.Details {
				if detail.TypeFrom != "" {
					seen[detail.TypeFrom] = true
				}
				if detail.TypeTo != "" {
					seen[detail.TypeTo] = true
				}
			}
		}
	}
	modes := make([]string, 0, len(seen))
	for mode := range seen {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	return modes
}
