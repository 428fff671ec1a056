package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"planora/costs"
	"planora/models"
	"planora/rdx"

	"github.com/redis/go-redis/v9"
)

// Working buffers survive page reloads in Redis, keyed by plan and day.
const bufferTTL = 24 * time.Hour

// WorkingState is the uncommitted buffer shape as stored and as
// exchanged with clients. It carries UI-only suggestions and a running
// total; neither survives Commit into the canonical day.
type WorkingState struct {
	Locations     []models.TripLocation       `json:"locations"`
	AllTransports []models.TransportInterface `json:"allTransports"`
	Suggestions   [][]string                  `json:"suggestions"`
	TotalCost     float64                     `json:"totalCost"`
}

func bufferKey(planID string, day int) string {
	return fmt.Sprintf("daybuf:%s:%d", planID, day)
}

// SaveWorkingState recomputes the running total and writes the working
// state to Redis. Item prices are validated here because the state
// arrives as raw client JSON, bypassing the buffer's mutators.
func SaveWorkingState(ctx context.Context, planID string, day int, ws WorkingState) error {
	if err := ValidateItems(ws.Locations); err != nil {
		return err
	}
	snapshot := models.ItineraryData{
		Locations:     ws.Locations,
		AllTransports: ws.AllTransports,
	}
	snapshot.Normalize()
	ws.Locations = snapshot.Locations
	ws.AllTransports = snapshot.AllTransports
	ws.TotalCost, _ = costs.DayCost(snapshot)
	if ws.Suggestions == nil {
		ws.Suggestions = make([][]string, len(ws.Locations))
	}

	data, err := json.Marshal(ws)
	if err != nil {
		return err
	}
	return rdx.Conn.Set(ctx, bufferKey(planID, day), data, bufferTTL).Err()
}

// LoadWorkingState fetches a day's working state. A missing key returns
// (nil, nil): the fresh-day condition, not an error.
func LoadWorkingState(ctx context.Context, planID string, day int) (*WorkingState, error) {
	data, err := rdx.Conn.Get(ctx, bufferKey(planID, day)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ws WorkingState
	if err := json.Unmarshal(data, &ws); err != nil {
		// A corrupt working copy should not block editing; treat it as
		// absent so the persisted day takes over.
		return nil, nil
	}
	return &ws, nil
}

// SaveBuffer persists a session buffer's current state.
func SaveBuffer(ctx context.Context, planID string, day int, buf *DayBuffer) error {
	return SaveWorkingState(ctx, planID, day, WorkingState{
		Locations:     buf.locations,
		AllTransports: buf.transports,
		Suggestions:   buf.suggestions,
	})
}

// LoadBuffer restores a day buffer, preferring the working state in
// Redis over the persisted day.
func LoadBuffer(ctx context.Context, session *EditSession, day int, persisted *models.ItineraryData) (*DayBuffer, error) {
	ws, err := LoadWorkingState(ctx, session.PlanID(), day)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return session.LoadDay(day, persisted), nil
	}

	// The working state only carries the editable collections; title
	// and description ride along from the persisted day.
	restored := models.ItineraryData{
		ItineraryID:   day,
		Locations:     ws.Locations,
		AllTransports: ws.AllTransports,
	}
	if persisted != nil {
		restored.Title = persisted.Title
		restored.Description = persisted.Description
	}

	buf := session.Day(day)
	buf.Load(&restored)
	buf.suggestions = ws.Suggestions
	if buf.suggestions == nil {
		buf.suggestions = make([][]string, len(buf.locations))
	}
	return buf, nil
}

// DiscardBuffer deletes a day's working state.
func DiscardBuffer(ctx context.Context, planID string, day int) error {
	return rdx.Conn.Del(ctx, bufferKey(planID, day)).Err()
}
