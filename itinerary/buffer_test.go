package itinerary

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"planora/models"
)

func freshBuffer(t *testing.T) *DayBuffer {
	t.Helper()
	session := NewEditSession(&models.Plan{PlanID: "plan1"})
	return session.LoadDay(1, nil)
}

func TestLoadFreshDay(t *testing.T) {
	b := freshBuffer(t)

	if b.State() != Loaded {
		t.Errorf("state = %v, want Loaded", b.State())
	}
	if len(b.Locations()) != 0 {
		t.Errorf("fresh buffer has %d locations, want 0", len(b.Locations()))
	}
	if len(b.Transports()) != 0 {
		t.Errorf("fresh buffer has %d transports, want 0", len(b.Transports()))
	}
}

func TestLoadPersistedDayIsACopy(t *testing.T) {
	persisted := models.ItineraryData{
		ItineraryID: 2,
		Title:       "Coast Road",
		Locations: []models.TripLocation{
			{Name: "Lighthouse", Notes: []models.Note{{Text: "windy", Theme: "Warning"}}},
		},
	}
	session := NewEditSession(&models.Plan{PlanID: "plan1"})
	b := session.LoadDay(2, &persisted)

	if err := b.AddNote(0, models.Note{Text: "new", Theme: "Profit"}); err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if len(persisted.Locations[0].Notes) != 1 {
		t.Errorf("editing the buffer mutated the persisted day")
	}
}

func TestAddLocationInitializesCollections(t *testing.T) {
	b := freshBuffer(t)

	idx, err := b.AddLocation(models.TripLocation{Name: "Pier", Type: models.TypeAccommodation})
	if err != nil {
		t.Fatalf("AddLocation: %v", err)
	}
	if idx != 0 {
		t.Errorf("index = %d, want 0", idx)
	}

	loc := b.Locations()[0]
	if loc.Images == nil || loc.Notes == nil || loc.Details.Items == nil {
		t.Errorf("location collections not initialized: %+v", loc)
	}
	if b.State() != Dirty {
		t.Errorf("state = %v, want Dirty", b.State())
	}
}

func TestUpdateLocationFieldPartialPatch(t *testing.T) {
	b := freshBuffer(t)
	b.AddLocation(models.TripLocation{Name: "Old Name", Type: models.TypeFoodBeverage, Subtype: "Cafe"})

	name := "New Name"
	if err := b.UpdateLocationField(0, LocationPatch{Name: &name}); err != nil {
		t.Fatalf("UpdateLocationField: %v", err)
	}

	loc := b.Locations()[0]
	if loc.Name != "New Name" {
		t.Errorf("name = %q, want %q", loc.Name, "New Name")
	}
	if loc.Type != models.TypeFoodBeverage || loc.Subtype != "Cafe" {
		t.Errorf("patch clobbered untouched fields: %+v", loc)
	}
}

func TestUpdateLocationFieldOutOfRange(t *testing.T) {
	b := freshBuffer(t)
	name := "x"

	if err := b.UpdateLocationField(0, LocationPatch{Name: &name}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
	if err := b.UpdateLocationField(-1, LocationPatch{Name: &name}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("negative index err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestAddItemRejectsBadPrices(t *testing.T) {
	b := freshBuffer(t)
	b.AddLocation(models.TripLocation{Name: "Shop"})

	for _, price := range []float64{-1, math.NaN(), math.Inf(1)} {
		err := b.AddItem(0, models.Item{Name: "bad", Price: price})
		if !errors.Is(err, ErrInvalidItem) {
			t.Errorf("price %v: err = %v, want ErrInvalidItem", price, err)
		}
	}
	if n := len(b.Locations()[0].Details.Items); n != 0 {
		t.Errorf("rejected items were stored, len = %d", n)
	}

	if err := b.AddItem(0, models.Item{Name: "ok", Price: 9.5}); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}
	if n := len(b.Locations()[0].Details.Items); n != 1 {
		t.Errorf("items = %d, want 1", n)
	}
}

func TestAddNoteUnknownThemeStoredButFlagged(t *testing.T) {
	b := freshBuffer(t)
	b.AddLocation(models.TripLocation{Name: "Plaza"})

	err := b.AddNote(0, models.Note{Text: "loose thought", Theme: "musings"})
	if !errors.Is(err, ErrMalformedNote) {
		t.Errorf("err = %v, want ErrMalformedNote", err)
	}
	// The note is kept anyway; only the tallies ignore it.
	if n := len(b.Locations()[0].Notes); n != 1 {
		t.Errorf("notes = %d, want 1", n)
	}
}

func TestAddTransportDetailGrowsWithoutGaps(t *testing.T) {
	b := freshBuffer(t)

	if err := b.AddTransportDetail(2, models.TransportDetail{TypeTo: "Bus", PriceTo: 3}); err != nil {
		t.Fatalf("AddTransportDetail: %v", err)
	}
	if n := len(b.Transports()); n != 3 {
		t.Fatalf("transports = %d, want 3", n)
	}
	for i, gap := range b.Transports()[:2] {
		if gap.Details == nil || gap.Notes == nil {
			t.Errorf("placeholder %d has nil collections", i)
		}
		if len(gap.Details) != 0 {
			t.Errorf("placeholder %d not empty", i)
		}
	}
	if len(b.Transports()[2].Details) != 1 {
		t.Errorf("target gap missing the added leg")
	}
}

func TestCommitTruncatesDanglingTransports(t *testing.T) {
	b := freshBuffer(t)
	b.AddLocation(models.TripLocation{Name: "A"})
	b.AddLocation(models.TripLocation{Name: "B"})
	// Gaps at 0 (valid) and 3 (beyond the last location pair).
	b.AddTransportDetail(0, models.TransportDetail{TypeTo: "Bus", PriceTo: 5})
	b.AddTransportDetail(3, models.TransportDetail{TypeTo: "Train", PriceTo: 50})

	day, err := b.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if n := len(day.AllTransports); n != 1 {
		t.Errorf("committed transports = %d, want 1 (len(locations)-1)", n)
	}
	if day.TotalCost != 5 {
		t.Errorf("totalCost = %v, want 5 (dangling gap excluded)", day.TotalCost)
	}
}

func TestCommitComputesTotals(t *testing.T) {
	b := freshBuffer(t)
	b.AddLocation(models.TripLocation{Name: "Hotel"})
	b.AddLocation(models.TripLocation{Name: "Market"})
	b.AddItem(0, models.Item{Name: "room", Price: 70})
	b.AddItem(1, models.Item{Name: "snacks", Price: 6})
	b.AddTransportDetail(0, models.TransportDetail{PriceTo: 10, PriceFrom: 2})

	day, err := b.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if day.TotalCost != 88 {
		t.Errorf("totalCost = %v, want 88", day.TotalCost)
	}
	if day.TotalPrice != day.TotalCost {
		t.Errorf("totalPrice %v != totalCost %v", day.TotalPrice, day.TotalCost)
	}
	if b.State() != Loaded {
		t.Errorf("state after commit = %v, want Loaded", b.State())
	}
}

func TestCommitRejectsNegativePersistedPrices(t *testing.T) {
	// A negative price can only arrive from outside the mutators, via a
	// stored day or a raw client working state. Commit must refuse to
	// produce a negative total from it.
	session := NewEditSession(&models.Plan{PlanID: "plan1"})
	b := session.LoadDay(1, &models.ItineraryData{
		Locations: []models.TripLocation{
			{
				Name: "Shady Stall",
				Details: models.LocationDetails{
					Items: []models.Item{{Name: "refund", Price: -50}},
				},
			},
		},
	})

	if _, err := b.Commit(); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("Commit err = %v, want ErrInvalidItem", err)
	}
}

func TestValidateItems(t *testing.T) {
	good := []models.TripLocation{
		{Details: models.LocationDetails{Items: []models.Item{{Price: 0}, {Price: 12.5}}}},
	}
	if err := ValidateItems(good); err != nil {
		t.Errorf("valid items rejected: %v", err)
	}

	for _, price := range []float64{-1, math.NaN(), math.Inf(1)} {
		bad := []models.TripLocation{
			{Name: "L", Details: models.LocationDetails{Items: []models.Item{{Name: "i", Price: price}}}},
		}
		if err := ValidateItems(bad); !errors.Is(err, ErrInvalidItem) {
			t.Errorf("price %v: err = %v, want ErrInvalidItem", price, err)
		}
	}
}

func TestCommitIdempotentWithoutEdits(t *testing.T) {
	b := freshBuffer(t)
	b.AddLocation(models.TripLocation{Name: "Temple", Subtype: "Cultural Tours"})
	b.AddItem(0, models.Item{Name: "entry", Price: 4})

	first, err := b.Commit()
	if err != nil {
		t.Fatalf("first Commit: %v", err)
	}
	second, err := b.Commit()
	if err != nil {
		t.Fatalf("second Commit: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated commit differs:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestCommitSnapshotIsDetached(t *testing.T) {
	b := freshBuffer(t)
	b.AddLocation(models.TripLocation{Name: "Bridge"})

	day, _ := b.Commit()
	b.AddNote(0, models.Note{Text: "later edit", Theme: "Warning"})

	if len(day.Locations[0].Notes) != 0 {
		t.Errorf("later buffer edits leaked into the committed snapshot")
	}
}

func TestLockedSessionRejectsAllMutations(t *testing.T) {
	session := NewEditSession(&models.Plan{PlanID: "plan1", Sell: true})
	b := session.LoadDay(1, &models.ItineraryData{
		Locations: []models.TripLocation{{Name: "Frozen"}},
	})

	name := "x"
	checks := map[string]error{
		"AddItem":             b.AddItem(0, models.Item{Name: "i", Price: 1}),
		"AddNote":             b.AddNote(0, models.Note{Text: "n", Theme: "Warning"}),
		"AddTransportDetail":  b.AddTransportDetail(0, models.TransportDetail{}),
		"UpdateLocationField": b.UpdateLocationField(0, LocationPatch{Name: &name}),
		"SetArrivalTime":      b.SetArrivalTime(0, "09:00"),
		"AppendImages":        b.AppendImages(0, []string{"/x.jpg"}),
	}
	if _, err := b.AddLocation(models.TripLocation{}); !errors.Is(err, ErrPlanLocked) {
		t.Errorf("AddLocation err = %v, want ErrPlanLocked", err)
	}
	for name, err := range checks {
		if !errors.Is(err, ErrPlanLocked) {
			t.Errorf("%s err = %v, want ErrPlanLocked", name, err)
		}
	}
	if _, err := b.Commit(); !errors.Is(err, ErrPlanLocked) {
		t.Errorf("Commit err = %v, want ErrPlanLocked", err)
	}
	if len(b.Locations()[0].Notes) != 0 {
		t.Errorf("locked buffer was mutated")
	}
}

func TestLockMidSession(t *testing.T) {
	session := NewEditSession(&models.Plan{PlanID: "plan1"})
	b := session.LoadDay(1, nil)
	if _, err := b.AddLocation(models.TripLocation{Name: "Before"}); err != nil {
		t.Fatalf("AddLocation before lock: %v", err)
	}

	session.Lock()

	if _, err := b.AddLocation(models.TripLocation{Name: "After"}); !errors.Is(err, ErrPlanLocked) {
		t.Errorf("err after lock = %v, want ErrPlanLocked", err)
	}
	if n := len(b.Locations()); n != 1 {
		t.Errorf("locations = %d, want 1", n)
	}
}

func TestSetSuggestionsDoesNotSurviveCommit(t *testing.T) {
	b := freshBuffer(t)
	b.AddLocation(models.TripLocation{Name: "Par"})
	if err := b.SetSuggestions(0, []string{"Paris", "Parma"}); err != nil {
		t.Fatalf("SetSuggestions: %v", err)
	}

	day, err := b.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	// The committed day has no suggestions field at all; committing
	// must not have disturbed the locations either.
	if len(day.Locations) != 1 || day.Locations[0].Name != "Par" {
		t.Errorf("committed day corrupted: %+v", day)
	}
}
