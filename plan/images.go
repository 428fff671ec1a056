package plan

import (
	"context"
	"errors"
	"net/http"
	"time"

	"planora/db"
	"planora/filemgr"
	"planora/itinerary"
	"planora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// POST /api/plans/:planid/images
func UploadPlanImagesHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := requestUserID(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	planID := ps.ByName("planid")

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No images provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
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

	var saved []string
	for _, fh := range files {
		url, err := filemgr.SavePlanImage(fh)
		if err != nil {
			for _, u := range saved {
				filemgr.RemovePlanImage(u)
			}
			if errors.Is(err, filemgr.ErrUnsupportedImage) {
				utils.RespondWithError(w, http.StatusBadRequest, "Unsupported image format")
			} else {
				utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store image")
			}
			return
		}
		saved = append(saved, url)
	}

	update := bson.M{
		"$push": bson.M{"imageUrls": bson.M{"$each": saved}},
		"$inc":  bson.M{"version": 1},
	}
	if _, err := db.PlansCollection.UpdateOne(ctx, bson.M{"planid": planID}, update); err != nil {
		for _, u := range saved {
			filemgr.RemovePlanImage(u)
		}
		writePlanError(w, ErrGatewayUnavailable)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"imageUrls": saved})
}
