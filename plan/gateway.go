package plan

import (
	"context"
	"errors"
	"fmt"

	"planora/costs"
	"planora/db"
	"planora/itinerary"
	"planora/models"
	"planora/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound means no plan exists under the requested id.
	ErrNotFound = errors.New("plan: not found")

	// ErrGatewayUnavailable wraps transient storage failures. Callers
	// decide whether to retry; the gateway never retries on its own.
	ErrGatewayUnavailable = errors.New("plan: persistence gateway unavailable")
)

// LoadPlan fetches a plan and its days. Days are stored as an ordered
// list; they are re-keyed into the plan's day map by 1-based position.
// The stored itineraryId is informational only and never used as the
// key.
func LoadPlan(ctx context.Context, planID string) (*models.Plan, []models.ItineraryData, error) {
	var p models.Plan
	err := db.PlansCollection.FindOne(ctx, bson.M{"planid": planID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	opts := options.Find().SetSort(bson.M{"day": 1})
	cursor, err := db.ItinerariesCollection.Find(ctx, bson.M{"planid": planID}, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer cursor.Close(ctx)

	var docs []models.ItineraryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	list := make([]models.ItineraryData, 0, len(docs))
	p.Itineraries = map[int]models.ItineraryData{}
	for i, doc := range docs {
		day := doc.Data
		day.Normalize()
		list = append(list, day)
		p.Itineraries[i+1] = day
	}
	p.TotalDays = len(p.Itineraries)
	return &p, list, nil
}

// normalizeDays prepares payload days for storage: collections are
// repaired, item prices validated, and each day's totalCost recomputed
// from its contents. A stored day never carries a client-claimed total;
// the returned sum is the only value totalPrice may take.
func normalizeDays(days []models.ItineraryData) ([]models.ItineraryData, float64, error) {
	out := make([]models.ItineraryData, len(days))
	var sum float64
	for i, day := range days {
		day.Normalize()
		if err := itinerary.ValidateItems(day.Locations); err != nil {
			return nil, 0, err
		}
		total, _ := costs.DayCost(day)
		day.TotalCost = total
		day.TotalPrice = total
		out[i] = day
		sum += total
	}
	return out, sum, nil
}

// CreatePlan persists a new plan and its days. The payload shape is the
// same one UpdatePlan accepts; create is just the id-less case.
func CreatePlan(ctx context.Context, userID string, payload models.InitialPlan) (*models.Plan, error) {
	days, total, err := normalizeDays(payload.Itineraries)
	if err != nil {
		return nil, err
	}

	p := payload.Plan
	p.UserID = userID
	if p.PlanID == "" {
		p.PlanID = utils.GetUUID()
	}
	p.TotalDays = len(days)
	p.TotalPrice = total
	p.Version = 1
	p.Itineraries = nil
	if p.ImageUrls == nil {
		p.ImageUrls = []string{}
	}
	if p.SelectedCountries == nil {
		p.SelectedCountries = []string{}
	}

	if _, err := db.PlansCollection.InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	if err := replaceDays(ctx, p.PlanID, days); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePlan overwrites a stored plan last-write-wins and bumps its
// version. A plan already marked for sale rejects the write.
func UpdatePlan(ctx context.Context, planID string, payload models.InitialPlan) (*models.Plan, error) {
	var stored models.Plan
	err := db.PlansCollection.FindOne(ctx, bson.M{"planid": planID}).Decode(&stored)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	if stored.Sell {
		return nil, itinerary.ErrPlanLocked
	}

	days, total, err := normalizeDays(payload.Itineraries)
	if err != nil {
		return nil, err
	}

	p := payload.Plan
	update := bson.M{
		"$set": bson.M{
			"name":              p.Name,
			"description":       p.Description,
			"totalDays":         len(days),
			"imageUrls":         p.ImageUrls,
			"selectedCountries": p.SelectedCountries,
			"totalPrice":        total,
			"cost":              p.Cost,
			"sell":              p.Sell,
		},
		"$inc": bson.M{"version": 1},
	}
	if _, err := db.PlansCollection.UpdateOne(ctx, bson.M{"planid": planID}, update); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	if err := replaceDays(ctx, planID, days); err != nil {
		return nil, err
	}

	updated := stored
	updated.Name = p.Name
	updated.Description = p.Description
	updated.TotalDays = len(days)
	updated.ImageUrls = p.ImageUrls
	updated.SelectedCountries = p.SelectedCountries
	updated.TotalPrice = total
	updated.Cost = p.Cost
	updated.Sell = p.Sell
	updated.Version = stored.Version + 1
	return &updated, nil
}

// replaceDays rewrites the full day list for a plan. Days are stored in
// list order; their position is the canonical day key. Callers pass
// days through normalizeDays first.
func replaceDays(ctx context.Context, planID string, days []models.ItineraryData) error {
	if _, err := db.ItinerariesCollection.DeleteMany(ctx, bson.M{"planid": planID}); err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	if len(days) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(days))
	for i, day := range days {
		docs = append(docs, models.ItineraryDoc{
			PlanID: planID,
			Day:    i + 1,
			Data:   day,
		})
	}
	if _, err := db.ItinerariesCollection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	return nil
}
