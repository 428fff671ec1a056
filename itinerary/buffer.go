// Package itinerary holds the working copy of a day while it is being
// edited: an explicit edit session owns one buffer per day, every
// mutation goes through index-addressed operations, and Commit is the
// only path that produces a persistable day.
package itinerary

import (
	"fmt"
	"math"

	"planora/costs"
	"planora/models"
)

// BufferState tracks a day buffer through its edit lifecycle.
type BufferState int

const (
	Uninitialized BufferState = iota
	Loaded
	Dirty
	Committing
)

func (s BufferState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loaded:
		return "loaded"
	case Dirty:
		return "dirty"
	case Committing:
		return "committing"
	default:
		return "unknown"
	}
}

// DayBuffer is the mutable working state for a single day. It is not
// safe for concurrent use; one edit session drives one buffer at a
// time.
type DayBuffer struct {
	session *EditSession
	day     int
	state   BufferState

	title       string
	description string
	itineraryID int

	locations  []models.TripLocation
	transports []models.TransportInterface

	// suggestions are UI-only autocomplete candidates, index-aligned
	// with locations. They ride along in the working store and are
	// stripped by Commit.
	suggestions [][]string
}

// Load initializes the buffer from a persisted day, or from a fresh
// stub when none exists. A missing day is a fresh-day condition, not an
// error.
func (b *DayBuffer) Load(persisted *models.ItineraryData) {
	if persisted == nil {
		b.itineraryID = b.day
		b.locations = []models.TripLocation{}
		b.transports = []models.TransportInterface{}
		b.suggestions = [][]string{}
		b.state = Loaded
		return
	}
	day := *persisted
	day.Normalize()
	b.title = day.Title
	b.description = day.Description
	b.itineraryID = day.ItineraryID
	if b.itineraryID == 0 {
		b.itineraryID = b.day
	}
	b.locations = cloneLocations(day.Locations)
	b.transports = cloneTransports(day.AllTransports)
	b.suggestions = make([][]string, len(b.locations))
	b.state = Loaded
}

// Day returns the day number this buffer edits.
func (b *DayBuffer) Day() int { return b.day }

// State reports the buffer's lifecycle state.
func (b *DayBuffer) State() BufferState { return b.state }

// Locations returns the current working locations. Callers must not
// mutate the returned slice.
func (b *DayBuffer) Locations() []models.TripLocation { return b.locations }

// Transports returns the current working transport gaps.
func (b *DayBuffer) Transports() []models.TransportInterface { return b.transports }

func (b *DayBuffer) mutable() error {
	if b.session != nil && b.session.Locked() {
		return ErrPlanLocked
	}
	return nil
}

func (b *DayBuffer) markDirty() {
	b.state = Dirty
}

// AddLocation appends a new location with empty items, notes and
// images, returning its index. Transport gaps are created lazily once
// two adjacent locations exist.
func (b *DayBuffer) AddLocation(template models.TripLocation) (int, error) {
	if err := b.mutable(); err != nil {
		return 0, err
	}
	loc := template
	loc.Images = []string{}
	loc.Notes = []models.Note{}
	loc.Details.Items = []models.Item{}
	b.locations = append(b.locations, loc)
	b.suggestions = append(b.suggestions, []string{})
	b.markDirty()
	return len(b.locations) - 1, nil
}

// LocationPatch is a partial update of a single location; nil fields
// are left untouched.
type LocationPatch struct {
	Name        *string
	Type        *string
	Subtype     *string
	Value       *string
	Coordinates *models.Coordinates
}

// UpdateLocationField merges a patch into one location, preserving all
// fields the patch does not name.
func (b *DayBuffer) UpdateLocationField(index int, patch LocationPatch) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if index < 0 || index >= len(b.locations) {
		return ErrIndexOutOfRange
	}
	loc := &b.locations[index]
	if patch.Name != nil {
		loc.Name = *patch.Name
	}
	if patch.Type != nil {
		loc.Type = *patch.Type
	}
	if patch.Subtype != nil {
		loc.Subtype = *patch.Subtype
	}
	if patch.Value != nil {
		loc.Details.Value = *patch.Value
	}
	if patch.Coordinates != nil {
		coords := *patch.Coordinates
		loc.Details.Coordinates = &coords
	}
	b.markDirty()
	return nil
}

// AddItem appends a priced item to a location. Negative or non-finite
// prices are rejected before anything changes.
func (b *DayBuffer) AddItem(index int, item models.Item) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if index < 0 || index >= len(b.locations) {
		return ErrIndexOutOfRange
	}
	if item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
		return ErrInvalidItem
	}
	loc := &b.locations[index]
	loc.Details.Items = append(loc.Details.Items, item)
	b.markDirty()
	return nil
}

// AddNote appends a note to a location. Append-only, no dedup. Notes
// with an unrecognized theme are stored anyway and flagged with
// ErrMalformedNote so the caller can surface it.
func (b *DayBuffer) AddNote(index int, note models.Note) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if index < 0 || index >= len(b.locations) {
		return ErrIndexOutOfRange
	}
	b.locations[index].Notes = append(b.locations[index].Notes, note)
	b.markDirty()
	if _, ok := models.NormalizeNoteTheme(note.Theme); !ok {
		return ErrMalformedNote
	}
	return nil
}

// AddTransportNote appends a note to a transport gap.
func (b *DayBuffer) AddTransportNote(transportIndex int, note models.Note) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if transportIndex < 0 || transportIndex >= len(b.transports) {
		return ErrIndexOutOfRange
	}
	b.transports[transportIndex].Notes = append(b.transports[transportIndex].Notes, note)
	b.markDirty()
	if _, ok := models.NormalizeNoteTheme(note.Theme); !ok {
		return ErrMalformedNote
	}
	return nil
}

// AddTransportDetail appends a leg to the gap at transportIndex,
// growing the gap array with empty placeholders if needed. The array is
// never sparse.
func (b *DayBuffer) AddTransportDetail(transportIndex int, detail models.TransportDetail) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if transportIndex < 0 {
		return ErrIndexOutOfRange
	}
	for len(b.transports) <= transportIndex {
		b.transports = append(b.transports, models.TransportInterface{
			Details: []models.TransportDetail{},
			Notes:   []models.Note{},
		})
	}
	gap := &b.transports[transportIndex]
	gap.Details = append(gap.Details, detail)
	b.markDirty()
	return nil
}

// SetLocationType sets a location's type. Derived counts such as the
// activity total are the aggregator's job, recomputed by the caller
// after a batch of edits.
func (b *DayBuffer) SetLocationType(index int, locationType string) error {
	t := locationType
	return b.UpdateLocationField(index, LocationPatch{Type: &t})
}

func (b *DayBuffer) SetLocationSubtype(index int, subtype string) error {
	s := subtype
	return b.UpdateLocationField(index, LocationPatch{Subtype: &s})
}

func (b *DayBuffer) SetArrivalTime(index int, arrival string) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if index < 0 || index >= len(b.locations) {
		return ErrIndexOutOfRange
	}
	b.locations[index].Details.ArrivalTime = arrival
	b.markDirty()
	return nil
}

func (b *DayBuffer) SetDepartureTime(index int, departure string) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if index < 0 || index >= len(b.locations) {
		return ErrIndexOutOfRange
	}
	b.locations[index].Details.DepartureTime = departure
	b.markDirty()
	return nil
}

// SetSuggestions replaces the UI-only autocomplete candidates for one
// location. Suggestions never reach a committed day.
func (b *DayBuffer) SetSuggestions(index int, candidates []string) error {
	if index < 0 || index >= len(b.locations) {
		return ErrIndexOutOfRange
	}
	for len(b.suggestions) < len(b.locations) {
		b.suggestions = append(b.suggestions, []string{})
	}
	b.suggestions[index] = candidates
	return nil
}

// AppendImages appends uploaded image URLs to a location. Images never
// participate in cost computation, so this does not dirty totals any
// differently from other edits.
func (b *DayBuffer) AppendImages(index int, urls []string) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if index < 0 || index >= len(b.locations) {
		return ErrIndexOutOfRange
	}
	b.locations[index].Images = append(b.locations[index].Images, urls...)
	b.markDirty()
	return nil
}

// ValidateItems rejects locations carrying an item whose price is
// negative or not a finite number. AddItem enforces this at entry; this
// re-checks data that arrives from outside the buffer's mutators, such
// as client-supplied working states and gateway payloads.
func ValidateItems(locations []models.TripLocation) error {
	for _, loc := range locations {
		for _, item := range loc.Details.Items {
			if item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
				return fmt.Errorf("%w: location %q item %q", ErrInvalidItem, loc.Name, item.Name)
			}
		}
	}
	return nil
}

// Commit recomputes the day's total cost and returns an immutable
// snapshot for persistence. Transport gaps beyond len(locations)-1 are
// truncated so the positional coupling between locations and gaps holds
// in everything that leaves the buffer. Committing twice without edits
// in between yields deep-equal snapshots.
func (b *DayBuffer) Commit() (models.ItineraryData, error) {
	if b.session != nil && b.session.Locked() {
		return models.ItineraryData{}, ErrPlanLocked
	}
	if err := ValidateItems(b.locations); err != nil {
		return models.ItineraryData{}, err
	}
	b.state = Committing

	maxGaps := len(b.locations) - 1
	if maxGaps < 0 {
		maxGaps = 0
	}
	if len(b.transports) > maxGaps {
		b.transports = b.transports[:maxGaps]
	}

	day := models.ItineraryData{
		ItineraryID:   b.itineraryID,
		Title:         b.title,
		Description:   b.description,
		Locations:     cloneLocations(b.locations),
		AllTransports: cloneTransports(b.transports),
	}
	day.Normalize()
	total, _ := costs.DayCost(day)
	day.TotalCost = total
	day.TotalPrice = total

	b.state = Loaded
	return day, nil
}

func cloneLocations(locs []models.TripLocation) []models.TripLocation {
	out := make([]models.TripLocation, len(locs))
	for i, loc := range locs {
		out[i] = loc
		out[i].Images = append([]string(nil), loc.Images...)
		out[i].Notes = append([]models.Note(nil), loc.Notes...)
		out[i].Details.Items = append([]models.Item(nil), loc.Details.Items...)
		if loc.Details.Coordinates != nil {
			coords := *loc.Details.Coordinates
			out[i].Details.Coordinates = &coords
		}
	}
	return out
}

func cloneTransports(transports []models.TransportInterface) []models.TransportInterface {
	out := make([]models.TransportInterface, len(transports))
	for i, t := range transports {
		out[i].Details = append([]models.TransportDetail(nil), t.Details...)
		out[i].Notes = append([]models.Note(nil), t.Notes...)
	}
	return out
}
