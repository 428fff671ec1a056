package mq

import (
	"context"
	"encoding/json"
	"log"

	"planora/market"
	"planora/rdx"
	"planora/suggestions"
)

const planEventsChannel = "plan-events"

// PlanEvent is a marketplace message published when a plan changes
// visibility.
type PlanEvent struct {
	Method    string   `json:"method"`
	PlanID    string   `json:"plan_id"`
	PlanName  string   `json:"plan_name"`
	Countries []string `json:"countries"`
}

// EmitPlanPublished publishes a sell event to Redis. Failures are
// logged, not returned: publishing is best-effort and must never fail
// the sell request itself.
func EmitPlanPublished(planID, planName string, countries []string) {
	event := PlanEvent{
		Method:    "published",
		PlanID:    planID,
		PlanName:  planName,
		Countries: countries,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] Failed to marshal plan event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), planEventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish plan event to Redis: %v", err)
	}
}

// StartIndexingWorker consumes plan events and feeds the marketplace
// autocomplete index. Run it in its own goroutine.
func StartIndexingWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, planEventsChannel)
	ch := sub.Channel()

	log.Println("[IndexingWorker] Listening for plan events...")

	for msg := range ch {
		var event PlanEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[IndexingWorker] Failed to parse event: %v", err)
			continue
		}

		if event.Method != "published" {
			continue
		}
		market.InvalidateListing()
		if err := suggestions.AddPlanToAutocomplete(ctx, event.PlanID, event.PlanName); err != nil {
			log.Printf("[IndexingWorker] %v", err)
		}
		for _, country := range event.Countries {
			if err := suggestions.AddCountryToAutocomplete(ctx, country); err != nil {
				log.Printf("[IndexingWorker] %v", err)
			}
		}
	}
}
