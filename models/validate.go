package models

import "fmt"

// Normalize repairs a day loaded from storage: absent collections
// become empty slices so downstream aggregation can treat them as
// empty rather than nil-check everywhere.
func (d *ItineraryData) Normalize() {
	if d.Locations == nil {
		d.Locations = []TripLocation{}
	}
	for i := range d.Locations {
		loc := &d.Locations[i]
		if loc.Images == nil {
			loc.Images = []string{}
		}
		if loc.Details.Items == nil {
			loc.Details.Items = []Item{}
		}
		if loc.Notes == nil {
			loc.Notes = []Note{}
		}
	}
	if d.AllTransports == nil {
		d.AllTransports = []TransportInterface{}
	}
	for i := range d.AllTransports {
		t := &d.AllTransports[i]
		if t.Details == nil {
			t.Details = []TransportDetail{}
		}
		if t.Notes == nil {
			t.Notes = []Note{}
		}
	}
}

// Validate rejects stored plan documents that are missing required
// fields instead of trusting stored JSON.
func (p *Plan) Validate() error {
	if p.PlanID == "" {
		return fmt.Errorf("plan: missing id")
	}
	if p.TotalDays < 0 {
		return fmt.Errorf("plan %s: negative totalDays", p.PlanID)
	}
	for i := range p.Itineraries {
		if i < 1 {
			return fmt.Errorf("plan %s: day key %d out of range", p.PlanID, i)
		}
	}
	return nil
}
