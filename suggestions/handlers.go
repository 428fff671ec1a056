package suggestions

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"planora/utils"

	"github.com/julienschmidt/httprouter"
)

func parseLimit(r *http.Request) int64 {
	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit <= 0 || limit > 50 {
		return 10
	}
	return limit
}

// GET /api/suggestions/plans?q=
func SuggestPlansHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query().Get("q")
	if query == "" {
		utils.RespondWithJSON(w, http.StatusOK, []map[string]string{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	matches, err := SearchPlans(ctx, query, parseLimit(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch suggestions")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, matches)
}

// GET /api/suggestions/countries?q=
func SuggestCountriesHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query().Get("q")
	if query == "" {
		utils.RespondWithJSON(w, http.StatusOK, []string{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	matches, err := SearchCountries(ctx, query, parseLimit(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch suggestions")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, matches)
}
