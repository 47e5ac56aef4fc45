package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// WeeklyTracker returns the {user_id} tracker for ?week_start= or the current week.
func WeeklyTracker(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, err, "Failed to fetch weekly tracker")
		return
	}
	week, err := tracker.Weekly(r.Context(), userID, strings.TrimSpace(r.URL.Query().Get("week_start")))
	if err != nil {
		writeError(w, r, err, "Failed to fetch weekly tracker")
		return
	}
	writeJSON(w, http.StatusOK, week)
}

// WeeklyHistory returns up to ?limit= weeks, newest first.
func WeeklyHistory(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, err, "Failed to fetch weekly history")
		return
	}
	// Unparseable limits fall back to the default.
	limit, _ := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("limit")))

	history, err := tracker.History(r.Context(), userID, limit)
	if err != nil {
		writeError(w, r, err, "Failed to fetch weekly history")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// DailyMeals lists logged meals between ?start_date= and ?end_date=.
func DailyMeals(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, err, "Failed to fetch daily meals")
		return
	}
	query := r.URL.Query()
	entries, err := tracker.Daily(r.Context(), userID,
		strings.TrimSpace(query.Get("start_date")),
		strings.TrimSpace(query.Get("end_date")))
	if err != nil {
		writeError(w, r, err, "Failed to fetch daily meals")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Stats returns the dashboard summary for {user_id}.
func Stats(w http.ResponseWriter, r *http.Request) {
	if !servicesReady(w, r) {
		return
	}
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, r, err, "Failed to fetch stats")
		return
	}
	stats, err := reporter.Stats(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "Failed to fetch stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
