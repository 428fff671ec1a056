package market

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"planora/models"
	"planora/rdx"
	"planora/utils"

	"github.com/julienschmidt/httprouter"
)

const listingCacheKey = "market:listing"

// GET /api/market/plans
func ListMarketPlansHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	f := ParseFilters(r.URL.Query())

	// Cache only the unfiltered default listing, the common landing view.
	cacheable := f.cacheable()
	if cacheable {
		if cached, _ := rdx.RdxGet(listingCacheKey); cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	plans, err := ListPlans(ctx, f)
	if err != nil {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Storage unavailable, retry later")
		return
	}
	if plans == nil {
		plans = []models.Plan{}
	}

	if cacheable {
		if data, err := json.Marshal(plans); err == nil {
			rdx.RdxSetTTL(listingCacheKey, string(data), 2*time.Minute)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, plans)
}

// InvalidateListing drops the cached landing page after a plan is
// published or updated.
func InvalidateListing() {
	rdx.RdxDel(listingCacheKey)
}
