package itinerary

import "errors"

var (
	// ErrInvalidItem rejects items whose price is negative or not a
	// finite number. Never coerced, never partially applied.
	ErrInvalidItem = errors.New("itinerary: invalid item price")

	// ErrIndexOutOfRange is returned when a location or transport index
	// addresses beyond the buffer's current bounds. The buffer is left
	// untouched.
	ErrIndexOutOfRange = errors.New("itinerary: index out of range")

	// ErrPlanLocked is returned by every mutator once the owning plan
	// has been marked for sale.
	ErrPlanLocked = errors.New("itinerary: plan is locked for sale")

	// ErrMalformedNote flags a note whose theme is outside the
	// recognized set. The note is stored anyway; it just won't count
	// toward theme tallies.
	ErrMalformedNote = errors.New("itinerary: unrecognized note theme")
)
