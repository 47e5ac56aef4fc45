package handlers

import (
	"errors"
	"net/http"

	"ecobite/internal/apperr"
	applog "ecobite/internal/log"
	"ecobite/internal/views/pages"
)

// Dashboard renders the signed-in user's tracking overview.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !servicesReady(w, r) {
		return
	}
	userID, ok := currentUserID(r)
	if !ok {
		redirectToLogin(w, r)
		return
	}

	user, err := catalog.User(r.Context(), userID)
	if errors.Is(err, apperr.ErrNotFound) {
		applog.Info(r.Context(), "session refers to a missing user", "userID", userID)
		if err := sessionManager.Destroy(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to destroy session", "error", err)
		}
		redirectToLogin(w, r)
		return
	}
	if err != nil {
		applog.Error(r.Context(), "failed to load dashboard user", "error", err, "userID", userID)
		http.Error(w, "We were unable to load your dashboard. Please try again.", http.StatusInternalServerError)
		return
	}

	stats, err := reporter.Stats(r.Context(), userID)
	if err != nil {
		applog.Error(r.Context(), "failed to load dashboard stats", "error", err, "userID", userID)
		http.Error(w, "We were unable to load your dashboard. Please try again.", http.StatusInternalServerError)
		return
	}
	recent, err := tracker.Daily(r.Context(), userID, "", "")
	if err != nil {
		applog.Error(r.Context(), "failed to load recent meals", "error", err, "userID", userID)
		http.Error(w, "We were unable to load your dashboard. Please try again.", http.StatusInternalServerError)
		return
	}

	data := pages.DashboardData{
		UserName:        user.Name,
		WeekStart:       stats.CurrentWeek.WeekStartDate,
		WeekCarbon:      stats.CurrentWeek.TotalCarbonFootprint,
		WeekMeals:       stats.CurrentWeek.TotalMeals,
		WeekAverage:     stats.CurrentWeek.AverageCarbonPerMeal,
		LastSevenCarbon: stats.LastSevenDays.TotalCarbonFootprint,
		LastSevenMeals:  stats.LastSevenDays.MealCount,
		AllTimeCarbon:   stats.AllTime.TotalCarbonFootprint,
		AllTimeMeals:    stats.AllTime.MealCount,
		WeeklyAverage:   stats.WeeklyAverage,
	}
	for _, entry := range recent {
		data.Recent = append(data.Recent, pages.RecentMeal{Date: entry.Date, Name: entry.MealName, Carbon: entry.CarbonFootprint})
	}

	renderPage(w, r, http.StatusOK, pages.Dashboard(data))
}
