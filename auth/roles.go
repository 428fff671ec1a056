package auth

import (
	"context"
	"net/http"
	"time"

	"planora/db"
	"planora/globals"
	"planora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PUT /api/user/:userid/role
// Self-service seller upgrade. Any registered user may start selling;
// the new role takes effect on the next issued token.
func UpgradeToSeller(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	if userID == "" {
		sendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if ps.ByName("userid") != userID {
		sendError(w, http.StatusForbidden, "Forbidden")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{
			"$addToSet": bson.M{"role": "seller"},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		sendError(w, http.StatusServiceUnavailable, "Storage unavailable, retry later")
		return
	}
	if result.MatchedCount == 0 {
		sendError(w, http.StatusNotFound, "User not found")
		return
	}

	var updated struct {
		Role []string `bson:"role"`
	}
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&updated); err != nil && err != mongo.ErrNoDocuments {
		sendError(w, http.StatusServiceUnavailable, "Storage unavailable, retry later")
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]any{
		"userid": userID,
		"role":   updated.Role,
	}, "Seller role granted", nil)
}
