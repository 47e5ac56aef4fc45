package server

import (
	"context"
	"net/http"

	"ecobite/internal/handlers"
	applog "ecobite/internal/log"
)

type route struct {
	pattern string
	handler http.Handler
}

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	protected := func(h http.HandlerFunc) http.Handler {
		return handlers.RequireAuthentication(h)
	}
	sameUser := func(h http.HandlerFunc) http.Handler {
		return handlers.RequireSameUser(h)
	}

	routes := []route{
		{"GET /healthz", http.HandlerFunc(handlers.Health)},
		{"GET /login", http.HandlerFunc(handlers.Login)},
		{"POST /login", http.HandlerFunc(handlers.Login)},
		{"GET /signup", http.HandlerFunc(handlers.Signup)},
		{"POST /signup", http.HandlerFunc(handlers.Signup)},
		{"POST /logout", http.HandlerFunc(handlers.Logout)},
		{"GET /app", protected(handlers.Dashboard)},
		{"GET /{$}", http.RedirectHandler("/app", http.StatusSeeOther)},

		{"GET /api/ingredients", http.HandlerFunc(handlers.ListIngredients)},
		{"GET /api/ingredients/{id}", http.HandlerFunc(handlers.ShowIngredient)},
		{"GET /api/ingredients/search/{query}", http.HandlerFunc(handlers.SearchIngredients)},

		{"POST /api/calculator/meal", http.HandlerFunc(handlers.CalculateMeal)},
		{"POST /api/calculator/ingredient", http.HandlerFunc(handlers.CalculateIngredient)},

		{"GET /api/recommendations/alternatives/{id}", http.HandlerFunc(handlers.Alternatives)},
		{"POST /api/recommendations/meal", http.HandlerFunc(handlers.MealRecommendations)},

		{"GET /api/meals", http.HandlerFunc(handlers.ListMeals)},
		{"POST /api/meals", http.HandlerFunc(handlers.CreateMeal)},
		{"GET /api/meals/{id}", http.HandlerFunc(handlers.ShowMeal)},
		{"POST /api/meals/{id}/log", http.HandlerFunc(handlers.LogMeal)},

		{"GET /api/tracker/weekly/{user_id}", http.HandlerFunc(handlers.WeeklyTracker)},
		{"GET /api/tracker/weekly/{user_id}/history", http.HandlerFunc(handlers.WeeklyHistory)},
		{"GET /api/tracker/daily/{user_id}", http.HandlerFunc(handlers.DailyMeals)},
		{"GET /api/tracker/stats/{user_id}", http.HandlerFunc(handlers.Stats)},

		{"GET /api/insights/patterns/{user_id}", sameUser(handlers.Patterns)},
		{"GET /api/insights/nutrition/{user_id}", sameUser(handlers.NutritionInsights)},
	}

	for _, rt := range routes {
		mux.Handle(rt.pattern, rt.handler)
		applog.Debug(context.Background(), "route registered", "pattern", rt.pattern)
	}
	return mux
}
