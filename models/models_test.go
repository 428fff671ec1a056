package models

import (
	"reflect"
	"testing"
)

func TestNormalizeNoteTheme(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"To Avoid", ThemeToAvoid, true},
		{"to avoid", ThemeToAvoid, true},
		{"Warning", ThemeWarning, true},
		{"Watch Out", ThemeWarning, true},
		{"watch out", ThemeWarning, true},
		{"Profit", ThemeProfit, true},
		{"Don't Forget", ThemeDontForget, true},
		{"dont forget", ThemeDontForget, true},
		{"  Warning  ", ThemeWarning, true},
		{"musings", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeNoteTheme(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NormalizeNoteTheme(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestIsValidLocationType(t *testing.T) {
	if !IsValidLocationType("") {
		t.Error("empty type should be valid (not yet chosen)")
	}
	if !IsValidLocationType("accommodation") {
		t.Error("known type rejected case-insensitively")
	}
	if IsValidLocationType("Spaceport") {
		t.Error("unknown type accepted")
	}
}

func TestNormalizeRepairsNilCollections(t *testing.T) {
	day := ItineraryData{
		Locations:     []TripLocation{{Name: "Stop"}},
		AllTransports: []TransportInterface{{}},
	}

	day.Normalize()

	loc := day.Locations[0]
	if loc.Images == nil || loc.Notes == nil || loc.Details.Items == nil {
		t.Errorf("location collections still nil: %+v", loc)
	}
	gap := day.AllTransports[0]
	if gap.Details == nil || gap.Notes == nil {
		t.Errorf("transport collections still nil: %+v", gap)
	}
}

func TestPlanDayNumbers(t *testing.T) {
	p := Plan{Itineraries: map[int]ItineraryData{
		4: {}, 1: {}, 2: {},
	}}

	if got := p.DayNumbers(); !reflect.DeepEqual(got, []int{1, 2, 4}) {
		t.Errorf("DayNumbers = %v, want [1 2 4]", got)
	}
}

func TestPlanValidate(t *testing.T) {
	good := Plan{PlanID: "p1", TotalDays: 2, Itineraries: map[int]ItineraryData{1: {}, 2: {}}}
	if err := good.Validate(); err != nil {
		t.Errorf("valid plan rejected: %v", err)
	}

	missing := Plan{TotalDays: 1}
	if err := missing.Validate(); err == nil {
		t.Error("plan without id accepted")
	}

	badDay := Plan{PlanID: "p2", Itineraries: map[int]ItineraryData{0: {}}}
	if err := badDay.Validate(); err == nil {
		t.Error("plan with day key 0 accepted")
	}
}

func TestUserIsSeller(t *testing.T) {
	seller := User{Role: []string{"user", "seller"}}
	if !seller.IsSeller() {
		t.Error("seller role not detected")
	}
	buyer := User{Role: []string{"user"}}
	if buyer.IsSeller() {
		t.Error("plain user treated as seller")
	}
}

func TestLocationSubtypesCoverEveryType(t *testing.T) {
	for _, lt := range LocationTypes {
		if subs, ok := LocationSubtypes[lt]; !ok || len(subs) == 0 {
			t.Errorf("type %q has no subtype list", lt)
		}
	}
}
