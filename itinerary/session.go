package itinerary

import (
	"context"

	"planora/models"
)

// EditSession owns the day buffers of one plan edit. It replaces the
// ambient per-tab storage of the web client with an object the caller
// holds explicitly: buffers live in memory, Save pushes them to the
// working store, Discard drops them.
type EditSession struct {
	planID  string
	locked  bool
	buffers map[int]*DayBuffer
}

// NewEditSession opens an edit session for a plan. A plan already
// marked for sale produces a locked session whose buffers reject every
// mutation.
func NewEditSession(plan *models.Plan) *EditSession {
	return &EditSession{
		planID:  plan.PlanID,
		locked:  plan.Sell,
		buffers: map[int]*DayBuffer{},
	}
}

func (s *EditSession) PlanID() string { return s.planID }

// Locked reports whether the owning plan is sell-locked.
func (s *EditSession) Locked() bool { return s.locked }

// Lock marks the session sell-locked. Irreversible, mirroring the plan
// lifecycle.
func (s *EditSession) Lock() { s.locked = true }

// Day returns the buffer for a day, creating an uninitialized one on
// first access.
func (s *EditSession) Day(day int) *DayBuffer {
	if buf, ok := s.buffers[day]; ok {
		return buf
	}
	buf := &DayBuffer{session: s, day: day, state: Uninitialized}
	s.buffers[day] = buf
	return buf
}

// LoadDay initializes a day buffer from a persisted day (nil means a
// fresh stub) and returns it.
func (s *EditSession) LoadDay(day int, persisted *models.ItineraryData) *DayBuffer {
	buf := s.Day(day)
	buf.Load(persisted)
	return buf
}

// Save writes every initialized buffer to the working store.
func (s *EditSession) Save(ctx context.Context) error {
	for day, buf := range s.buffers {
		if buf.state == Uninitialized {
			continue
		}
		if err := SaveBuffer(ctx, s.planID, day, buf); err != nil {
			return err
		}
	}
	return nil
}

// Discard removes this session's working-store entries. In-memory
// buffers stay usable; reloading pulls persisted days again.
func (s *EditSession) Discard(ctx context.Context) error {
	for day := range s.buffers {
		if err := DiscardBuffer(ctx, s.planID, day); err != nil {
			return err
		}
	}
	return nil
}
