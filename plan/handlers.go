package plan

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"planora/db"
	"planora/globals"
	"planora/itinerary"
	"planora/models"
	"planora/mq"
	"planora/summary"
	"planora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func requestUserID(r *http.Request) string {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	return userID
}

func writePlanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
	case errors.Is(err, itinerary.ErrPlanLocked):
		utils.RespondWithError(w, http.StatusConflict, "Plan is locked for sale")
	case errors.Is(err, itinerary.ErrInvalidItem):
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid item price")
	case errors.Is(err, itinerary.ErrIndexOutOfRange):
		utils.RespondWithError(w, http.StatusBadRequest, "Index out of range")
	case errors.Is(err, ErrGatewayUnavailable):
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Storage unavailable, retry later")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal error")
	}
}

// POST /api/plans
func CreatePlanHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := requestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload models.InitialPlan
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := CreatePlan(ctx, userID, payload)
	if err != nil {
		writePlanError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// GET /api/plans/:planid
func GetPlanHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, list, err := LoadPlan(ctx, ps.ByName("planid"))
	if err != nil {
		writePlanError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"plan":        p,
		"itineraries": list,
	})
}

// PUT /api/plans/:planid
func UpdatePlanHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := requestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	planID := ps.ByName("planid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stored, _, err := LoadPlan(ctx, planID)
	if err != nil {
		writePlanError(w, err)
		return
	}
	if stored.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var payload models.InitialPlan
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := UpdatePlan(ctx, planID, payload)
	if err != nil {
		writePlanError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// PUT /api/plans/:planid/sell
func SellPlanHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := requestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	planID := ps.ByName("planid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var stored models.Plan
	err := db.PlansCollection.FindOne(ctx, bson.M{"planid": planID, "user_id": userID}).Decode(&stored)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}
	if err != nil {
		writePlanError(w, ErrGatewayUnavailable)
		return
	}

	update := bson.M{
		"$set": bson.M{"sell": true},
		"$inc": bson.M{"version": 1},
	}
	if _, err := db.PlansCollection.UpdateOne(ctx, bson.M{"planid": planID}, update); err != nil {
		writePlanError(w, ErrGatewayUnavailable)
		return
	}

	mq.EmitPlanPublished(planID, stored.Name, stored.SelectedCountries)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Plan marked for sale"})
}

// POST /api/plans/:planid/days
func AddDayHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := requestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	planID := ps.ByName("planid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, _, err := LoadPlan(ctx, planID)
	if err != nil {
		writePlanError(w, err)
		return
	}
	if p.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	day, err := AddDay(p)
	if err != nil {
		writePlanError(w, err)
		return
	}
	if _, err := UpdatePlan(ctx, planID, ToPersistablePayload(p)); err != nil {
		writePlanError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"day": day, "totalDays": p.TotalDays})
}

// GET /api/user/:userid/plans
func GetUserPlansHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := requestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if ps.ByName("userid") != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	plans, err := utils.FindAndDecode[models.Plan](ctx, db.PlansCollection, bson.M{"user_id": userID})
	if err != nil {
		writePlanError(w, ErrGatewayUnavailable)
		return
	}
	if plans == nil {
		plans = []models.Plan{}
	}
	utils.RespondWithJSON(w, http.StatusOK, plans)
}

// GET /api/plans/:planid/summary
func PlanSummaryHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, list, err := LoadPlan(ctx, ps.ByName("planid"))
	if err != nil {
		writePlanError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, summary.Summarize(list))
}

func dayParam(ps httprouter.Params) (int, bool) {
	day, err := strconv.Atoi(ps.ByName("day"))
	if err != nil || day < 1 {
		return 0, false
	}
	return day, true
}

// GET /api/plans/:planid/days/:day/buffer
func GetDayBufferHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("planid")
	day, ok := dayParam(ps)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid day")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ws, err := itinerary.LoadWorkingState(ctx, planID, day)
	if err != nil {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Buffer store unavailable")
		return
	}
	if ws == nil {
		// Fresh-day condition: fall back to the persisted day, or an
		// empty stub when the day has never been committed.
		p, _, err := LoadPlan(ctx, planID)
		if err != nil {
			writePlanError(w, err)
			return
		}
		persisted, exists := p.Itineraries[day]
		fresh := itinerary.WorkingState{
			Locations:     []models.TripLocation{},
			AllTransports: []models.TransportInterface{},
			Suggestions:   [][]string{},
		}
		if exists {
			fresh.Locations = persisted.Locations
			fresh.AllTransports = persisted.AllTransports
			fresh.Suggestions = make([][]string, len(persisted.Locations))
			fresh.TotalCost = persisted.TotalCost
		}
		utils.RespondWithJSON(w, http.StatusOK, fresh)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ws)
}

// PUT /api/plans/:planid/days/:day/buffer
func SaveDayBufferHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := requestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	planID := ps.ByName("planid")
	day, ok := dayParam(ps)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid day")
		return
	}

	var ws itinerary.WorkingState
	if err := json.NewDecoder(r.Body).Decode(&ws); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, _, err := LoadPlan(ctx, planID)
	if err != nil {
		writePlanError(w, err)
		return
	}
	if p.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}
	if p.Sell {
		writePlanError(w, itinerary.ErrPlanLocked)
		return
	}

	if err := itinerary.SaveWorkingState(ctx, planID, day, ws); err != nil {
		if errors.Is(err, itinerary.ErrInvalidItem) {
			writePlanError(w, err)
			return
		}
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Buffer store unavailable")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Buffer saved"})
}

// DELETE /api/plans/:planid/days/:day/buffer
func DiscardDayBufferHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := requestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	planID := ps.ByName("planid")
	day, ok := dayParam(ps)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid day")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := itinerary.DiscardBuffer(ctx, planID, day); err != nil {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Buffer store unavailable")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Buffer discarded"})
}

// POST /api/plans/:planid/days/:day/commit
func CommitDayHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := requestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	planID := ps.ByName("planid")
	day, ok := dayParam(ps)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid day")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, _, err := LoadPlan(ctx, planID)
	if err != nil {
		writePlanError(w, err)
		return
	}
	if p.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	session := itinerary.NewEditSession(p)
	var persisted *models.ItineraryData
	if existing, exists := p.Itineraries[day]; exists {
		persisted = &existing
	}
	buf, err := itinerary.LoadBuffer(ctx, session, day, persisted)
	if err != nil {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Buffer store unavailable")
		return
	}

	committed, err := buf.Commit()
	if err != nil {
		writePlanError(w, err)
		return
	}
	if err := ApplyDayCommit(p, day, committed); err != nil {
		writePlanError(w, err)
		return
	}
	if _, err := UpdatePlan(ctx, planID, ToPersistablePayload(p)); err != nil {
		writePlanError(w, err)
		return
	}
	if err := itinerary.DiscardBuffer(ctx, planID, day); err != nil {
		log.Printf("discard buffer for plan %s day %d: %v", planID, day, err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"day":        committed,
		"totalPrice": p.TotalPrice,
	})
}
