package models

import "sort"

// Item is the leaf cost unit owned by a location.
type Item struct {
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

// Note is a free-text annotation on a location or a transport gap.
// Theme is stored verbatim; only recognized themes participate in tallies.
type Note struct {
	Text  string `json:"text" bson:"text"`
	Theme string `json:"theme" bson:"theme"`
}

type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// LocationDetails carries the address text, visit times, optional
// coordinates and the priced items of a stop.
type LocationDetails struct {
	Value         string       `json:"value" bson:"value"`
	ArrivalTime   string       `json:"arrivalTime,omitempty" bson:"arrivalTime,omitempty"`
	DepartureTime string       `json:"departureTime,omitempty" bson:"departureTime,omitempty"`
	Coordinates   *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	Items         []Item       `json:"items" bson:"items"`
}

// TripLocation is one stop in a day's itinerary.
type TripLocation struct {
	Name    string          `json:"name" bson:"name"`
	Type    string          `json:"type" bson:"type"`
	Subtype string          `json:"subtype,omitempty" bson:"subtype,omitempty"`
	Images  []string        `json:"images" bson:"images"`
	Details LocationDetails `json:"details" bson:"details"`
	Notes   []Note          `json:"notes" bson:"notes"`
}

// TransportDetail is one dual-sided fare record: travel to the
// destination and the alternate/return travel in a single leg.
type TransportDetail struct {
	TypeTo      string  `json:"typeTo" bson:"typeTo"`
	NameTo      string  `json:"nameTo" bson:"nameTo"`
	PriceTo     float64 `json:"priceTo" bson:"priceTo"`
	TypeFrom    string  `json:"typeFrom" bson:"typeFrom"`
	NameFrom    string  `json:"nameFrom" bson:"nameFrom"`
	PriceFrom   float64 `json:"priceFrom" bson:"priceFrom"`
	Destination string  `json:"destination" bson:"destination"`
}

// TransportInterface is the transport gap between two consecutive
// locations of a day. allTransports[i] connects locations[i] to
// locations[i+1], so a day with N locations holds at most N-1 gaps.
type TransportInterface struct {
	Details []TransportDetail `json:"details" bson:"details"`
	Notes   []Note            `json:"notes" bson:"notes"`
}

// ItineraryData is one day of a plan.
type ItineraryData struct {
	ItineraryID   int                  `json:"itineraryId" bson:"itineraryId"`
	Title         string               `json:"title" bson:"title"`
	Description   string               `json:"description" bson:"description"`
	Locations     []TripLocation       `json:"locations" bson:"locations"`
	AllTransports []TransportInterface `json:"allTransports" bson:"allTransports"`
	TotalPrice    float64              `json:"totalPrice" bson:"totalPrice"`
	TotalCost     float64              `json:"totalCost" bson:"totalCost"`
}

// ItineraryDoc is the stored form of a day: the day payload plus the
// owning plan and its position. Days are persisted as an ordered list;
// Day is the 1-based position and is the canonical key, ItineraryID is
// informational only.
type ItineraryDoc struct {
	PlanID string        `json:"planid" bson:"planid"`
	Day    int           `json:"day" bson:"day"`
	Data   ItineraryData `json:"data" bson:"data"`
}

// Plan is the top-level sellable trip product.
type Plan struct {
	PlanID            string                `json:"id" bson:"planid"`
	UserID            string                `json:"user_id" bson:"user_id"`
	Name              string                `json:"name" bson:"name"`
	Description       string                `json:"description" bson:"description"`
	TotalDays         int                   `json:"totalDays" bson:"totalDays"`
	Itineraries       map[int]ItineraryData `json:"itineraries,omitempty" bson:"-"`
	ImageUrls         []string              `json:"imageUrls" bson:"imageUrls"`
	SelectedCountries []string              `json:"selectedCountries" bson:"selectedCountries"`
	TotalPrice        float64               `json:"totalPrice" bson:"totalPrice"`
	Cost              float64               `json:"cost" bson:"cost"`
	Sell              bool                  `json:"sell" bson:"sell"`
	// Version is bumped on every persisted update. Writes are still
	// last-write-wins; the counter lets clients detect lost updates.
	Version int64 `json:"version" bson:"version"`
}

// InitialPlan is the gateway payload shape: plan metadata plus the
// itineraries flattened to a list in day order.
type InitialPlan struct {
	Plan        Plan            `json:"plan" bson:"plan"`
	Itineraries []ItineraryData `json:"itineraries" bson:"itineraries"`
}

// DayNumbers returns the plan's day keys in ascending order.
func (p *Plan) DayNumbers() []int {
	days := make([]int, 0, len(p.Itineraries))
	for day := range p.Itineraries {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}
