package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"ecobite/internal/apperr"
	"ecobite/internal/footprint"
	"ecobite/internal/insights"
	applog "ecobite/internal/log"
	"ecobite/internal/meals"
	"ecobite/internal/store"
	"ecobite/internal/substitution"
	"ecobite/internal/tracking"
)

const maxBodyBytes = 1 << 20

var (
	sessionManager *scs.SessionManager
	database       *gorm.DB

	catalog     *store.Store
	calculator  *footprint.Service
	substitutes *substitution.Service
	mealBook    *meals.Service
	tracker     *tracking.Service
	reporter    *insights.Service
)

// Dependencies are the collaborators shared by every handler. Services may be
// nil when no database is configured; API handlers then answer 503.
type Dependencies struct {
	Sessions    *scs.SessionManager
	Database    *gorm.DB
	Store       *store.Store
	Calculator  *footprint.Service
	Substitutes *substitution.Service
	Meals       *meals.Service
	Tracker     *tracking.Service
	Insights    *insights.Service
}

// Install replaces the dependencies used by the HTTP handlers.
func Install(deps Dependencies) {
	sessionManager = deps.Sessions
	database = deps.Database
	catalog = deps.Store
	calculator = deps.Calculator
	substitutes = deps.Substitutes
	mealBook = deps.Meals
	tracker = deps.Tracker
	reporter = deps.Insights
}

func installed() Dependencies {
	return Dependencies{
		Sessions:    sessionManager,
		Database:    database,
		Store:       catalog,
		Calculator:  calculator,
		Substitutes: substitutes,
		Meals:       mealBook,
		Tracker:     tracker,
		Insights:    reporter,
	}
}

// servicesReady reports whether a database is configured and answers 503 otherwise.
func servicesReady(w http.ResponseWriter, r *http.Request) bool {
	if database == nil || catalog == nil {
		applog.Debug(r.Context(), "api request without database", "path", r.URL.Path)
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeError maps domain errors to HTTP statuses. fallback is the message
// shown for unexpected failures, whose details are only logged.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var invalid *apperr.InvalidInputError
	switch {
	case errors.Is(err, gorm.ErrInvalidDB):
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
	case errors.Is(err, apperr.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &invalid):
		writeJSONError(w, http.StatusBadRequest, invalid.Reason)
	case errors.Is(err, apperr.ErrAggregationConsistency):
		applog.Error(r.Context(), "meal log was rolled back", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "The meal could not be logged. Please try again.")
	default:
		applog.Error(r.Context(), fallback, "error", err, "path", r.URL.Path)
		writeJSONError(w, http.StatusInternalServerError, fallback)
	}
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Invalid("request body is required")
		}
		return apperr.Invalid("malformed JSON body: %v", err)
	}
	return nil
}

// pathID parses a positive integer path parameter.
func pathID(r *http.Request, name string) (uint, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, apperr.Invalid("%s must be a positive integer", name)
	}
	return uint(value), nil
}

// queryID parses an optional positive integer query parameter.
func queryID(r *http.Request, name string) (*uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return nil, apperr.Invalid("%s must be a positive integer", name)
	}
	id := uint(value)
	return &id, nil
}

func isJSONBody(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "application/json")
}

// wantsJSON distinguishes API clients from browsers submitting forms.
func wantsJSON(r *http.Request) bool {
	return isJSONBody(r) || strings.Contains(strings.ToLower(r.Header.Get("Accept")), "application/json")
}
