package plan

import (
	"errors"
	"reflect"
	"testing"

	"planora/itinerary"
	"planora/models"
)

func TestNewPlanHasStubFirstDay(t *testing.T) {
	p := New("user1")

	if p.TotalDays != 1 {
		t.Errorf("totalDays = %d, want 1", p.TotalDays)
	}
	day, ok := p.Itineraries[1]
	if !ok {
		t.Fatal("day 1 missing from new plan")
	}
	if day.Title != "Trip Day 1" {
		t.Errorf("title = %q, want %q", day.Title, "Trip Day 1")
	}
	if day.Locations == nil || day.AllTransports == nil {
		t.Errorf("stub day has nil collections")
	}
}

func TestAddDayMonotonic(t *testing.T) {
	p := New("user1")

	for want := 2; want <= 5; want++ {
		got, err := AddDay(p)
		if err != nil {
			t.Fatalf("AddDay: %v", err)
		}
		if got != want {
			t.Errorf("AddDay = %d, want %d", got, want)
		}
	}
	if p.TotalDays != 5 {
		t.Errorf("totalDays = %d, want 5", p.TotalDays)
	}
}

func TestAddDayNeverReusesNumbers(t *testing.T) {
	// A plan whose middle days are gone still allocates past the max.
	p := &models.Plan{
		PlanID: "p1",
		Itineraries: map[int]models.ItineraryData{
			1: {}, 4: {},
		},
	}

	got, err := AddDay(p)
	if err != nil {
		t.Fatalf("AddDay: %v", err)
	}
	if got != 5 {
		t.Errorf("AddDay = %d, want 5 (max+1)", got)
	}
}

func TestAddDayOnLockedPlan(t *testing.T) {
	p := New("user1")
	MarkForSale(p)

	if _, err := AddDay(p); !errors.Is(err, itinerary.ErrPlanLocked) {
		t.Errorf("err = %v, want ErrPlanLocked", err)
	}
	if p.TotalDays != 1 {
		t.Errorf("locked plan grew to %d days", p.TotalDays)
	}
}

func TestApplyDayCommitRollsUp(t *testing.T) {
	p := New("user1")
	AddDay(p)

	if err := ApplyDayCommit(p, 1, models.ItineraryData{TotalCost: 120, TotalPrice: 120}); err != nil {
		t.Fatalf("ApplyDayCommit day 1: %v", err)
	}
	if err := ApplyDayCommit(p, 2, models.ItineraryData{TotalCost: 45, TotalPrice: 45}); err != nil {
		t.Fatalf("ApplyDayCommit day 2: %v", err)
	}

	if p.TotalPrice != 165 {
		t.Errorf("totalPrice = %v, want 165", p.TotalPrice)
	}
}

func TestApplyDayCommitIdempotent(t *testing.T) {
	p := New("user1")
	day := models.ItineraryData{Title: "Repeat", TotalCost: 33}

	ApplyDayCommit(p, 1, day)
	before := *p
	ApplyDayCommit(p, 1, day)

	if p.TotalPrice != before.TotalPrice || p.TotalDays != before.TotalDays {
		t.Errorf("repeated commit changed the plan: %+v vs %+v", before, *p)
	}
}

func TestApplyDayCommitOnLockedPlan(t *testing.T) {
	p := New("user1")
	MarkForSale(p)

	err := ApplyDayCommit(p, 1, models.ItineraryData{TotalCost: 10})
	if !errors.Is(err, itinerary.ErrPlanLocked) {
		t.Errorf("err = %v, want ErrPlanLocked", err)
	}
	if p.TotalPrice != 0 {
		t.Errorf("locked plan rollup changed to %v", p.TotalPrice)
	}
}

func TestApplyDayCommitRejectsBadDay(t *testing.T) {
	p := New("user1")

	for _, day := range []int{0, -3} {
		err := ApplyDayCommit(p, day, models.ItineraryData{})
		if !errors.Is(err, itinerary.ErrIndexOutOfRange) {
			t.Errorf("day %d: err = %v, want ErrIndexOutOfRange", day, err)
		}
	}
}

func TestToPersistablePayloadDayOrder(t *testing.T) {
	p := &models.Plan{
		PlanID: "p1",
		Itineraries: map[int]models.ItineraryData{
			3: {Title: "third"},
			1: {Title: "first"},
			2: {Title: "second"},
		},
	}

	payload := ToPersistablePayload(p)

	var titles []string
	for _, day := range payload.Itineraries {
		titles = append(titles, day.Title)
	}
	if want := []string{"first", "second", "third"}; !reflect.DeepEqual(titles, want) {
		t.Errorf("day order = %v, want %v", titles, want)
	}
	if payload.Plan.Itineraries != nil {
		t.Errorf("payload metadata still carries the day map")
	}
}

func TestMarkForSaleLocksEditSessions(t *testing.T) {
	p := New("user1")
	MarkForSale(p)

	session := itinerary.NewEditSession(p)
	if !session.Locked() {
		t.Error("session on a sold plan is not locked")
	}
}
