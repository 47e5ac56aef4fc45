package server

import (
	"context"
	"time"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"ecobite/internal/footprint"
	"ecobite/internal/handlers"
	"ecobite/internal/insights"
	applog "ecobite/internal/log"
	"ecobite/internal/meals"
	"ecobite/internal/store"
	"ecobite/internal/substitution"
	"ecobite/internal/tracking"
)

// newDependencies wires the calculator, substitution, meal, tracking and
// insight services over one store. Without a database only sessions are set.
func newDependencies(sm *scs.SessionManager, database *gorm.DB, location *time.Location, now func() time.Time) handlers.Dependencies {
	deps := handlers.Dependencies{Sessions: sm, Database: database}
	if database == nil {
		applog.Info(context.Background(), "no database configured, api routes will answer 503")
		return deps
	}

	catalog := store.New(database)
	calendar := tracking.NewService(catalog, location)
	if now != nil {
		calendar = calendar.WithClock(now)
	}
	alternatives := substitution.NewService(catalog)

	deps.Store = catalog
	deps.Calculator = footprint.NewService(catalog)
	deps.Substitutes = alternatives
	deps.Meals = meals.NewService(catalog)
	deps.Tracker = calendar
	deps.Insights = insights.NewService(catalog, alternatives, calendar)
	return deps
}
