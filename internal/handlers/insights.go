package handlers

import (
	"net/http"
)

// Patterns reports eating patterns for {user_id}. Mount behind RequireSameUser.
func Patterns(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, err, "Failed to fetch meal patterns")
		return
	}
	patterns, err := reporter.Patterns(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "Failed to fetch meal patterns")
		return
	}
	writeJSON(w, http.StatusOK, patterns)
}

// NutritionInsights reports calories and swap suggestions for {user_id}.
// Mount behind RequireSameUser.
func NutritionInsights(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, err, "Failed to fetch nutrition insights")
		return
	}
	report, err := reporter.Nutrition(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "Failed to fetch nutrition insights")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
