package handlers

import (
	"errors"
	"net/http"
	"strings"

	"ecobite/internal/apperr"
	applog "ecobite/internal/log"
	"ecobite/internal/views/pages"
)

// Signup displays the account creation form and processes new registrations.
func Signup(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling signup request", "method", r.Method, "json", wantsJSON(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			redirectToApp(w, r)
			return
		}
		renderPage(w, r, http.StatusOK, pages.Signup("", "", ""))
	case http.MethodPost:
		if sessionManager == nil || database == nil {
			applog.Debug(r.Context(), "registration dependencies unavailable", "hasSession", sessionManager != nil, "hasDatabase", database != nil)
			writeJSONError(w, http.StatusServiceUnavailable, "registration not available")
			return
		}
		creds, err := readCredentials(w, r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid submission")
			return
		}

		fail := func(status int, message string) {
			if wantsJSON(r) {
				writeJSONError(w, status, message)
				return
			}
			renderPage(w, r, status, pages.Signup(message, creds.Name, creds.Email))
		}

		if creds.Email == "" || !strings.Contains(creds.Email, "@") {
			fail(http.StatusBadRequest, "Please provide a valid email address.")
			return
		}
		if len(creds.Password) < 8 {
			fail(http.StatusBadRequest, "Password must be at least 8 characters long.")
			return
		}
		if creds.ConfirmPassword != "" && creds.Password != creds.ConfirmPassword {
			fail(http.StatusBadRequest, "Passwords do not match.")
			return
		}

		if _, err := findUserByEmail(r, creds.Email); err == nil {
			applog.Debug(r.Context(), "signup attempted with existing email", "email", strings.ToLower(creds.Email))
			fail(http.StatusConflict, "An account with that email already exists.")
			return
		} else if !errors.Is(err, apperr.ErrNotFound) {
			applog.Error(r.Context(), "failed to check existing user", "error", err)
			fail(http.StatusInternalServerError, "We couldn't create your account right now. Please try again.")
			return
		}

		user, err := createUser(r, creds.Email, creds.Name, creds.Password)
		if err != nil {
			applog.Error(r.Context(), "failed to create user", "error", err)
			fail(http.StatusInternalServerError, "We couldn't create your account right now. Please try again.")
			return
		}

		if err := establishSession(r, user); err != nil {
			applog.Error(r.Context(), "failed to establish session after signup", "error", err)
			fail(http.StatusInternalServerError, "We couldn't sign you in after creating your account. Please try again.")
			return
		}

		applog.Info(r.Context(), "user registered", "userID", user.ID)
		if wantsJSON(r) {
			writeJSON(w, http.StatusCreated, map[string]any{"user": projectUser(user)})
			return
		}
		redirectToApp(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
