package handlers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	applog "ecobite/internal/log"
	"ecobite/internal/views/pages"
)

type credentials struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// readCredentials accepts either a JSON body or a form submission.
func readCredentials(w http.ResponseWriter, r *http.Request) (credentials, error) {
	var creds credentials
	if isJSONBody(r) {
		if err := decodeJSON(w, r, &creds); err != nil {
			return credentials{}, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return credentials{}, err
		}
		creds = credentials{
			Name:            r.PostFormValue("name"),
			Email:           r.PostFormValue("email"),
			Password:        r.PostFormValue("password"),
			ConfirmPassword: r.PostFormValue("confirm_password"),
		}
	}
	creds.Name = strings.TrimSpace(creds.Name)
	creds.Email = strings.TrimSpace(creds.Email)
	return creds, nil
}

// Login renders the sign-in form and processes sign-in submissions, either
// as a form post (redirecting to the dashboard) or as JSON.
func Login(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling login request", "method", r.Method, "json", wantsJSON(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			applog.Debug(r.Context(), "active session detected, redirecting to app")
			redirectToApp(w, r)
			return
		}
		message := ""
		if sessionManager != nil {
			message = sessionManager.PopString(r.Context(), sessionLoginMessageKey)
		}
		renderPage(w, r, http.StatusOK, pages.Login(message, ""))
	case http.MethodPost:
		if sessionManager == nil || database == nil {
			applog.Debug(r.Context(), "authentication dependencies unavailable", "hasSession", sessionManager != nil, "hasDatabase", database != nil)
			writeJSONError(w, http.StatusServiceUnavailable, "authentication not available")
			return
		}
		creds, err := readCredentials(w, r)
		if err != nil {
			applog.Debug(r.Context(), "failed to parse login submission", "error", err)
			writeJSONError(w, http.StatusBadRequest, "invalid submission")
			return
		}

		if creds.Email == "" || creds.Password == "" {
			loginFailed(w, r, "Email and password are required.", creds.Email, http.StatusBadRequest)
			return
		}

		user := authenticate(r, creds.Email, creds.Password)
		if user == nil {
			applog.Debug(r.Context(), "authentication failed", "email", strings.ToLower(creds.Email))
			message := sessionManager.PopString(r.Context(), sessionLoginMessageKey)
			if message == "" {
				message = "We were unable to sign you in. Please try again."
			}
			loginFailed(w, r, message, creds.Email, http.StatusUnauthorized)
			return
		}

		applog.Info(r.Context(), "user signed in", "userID", user.ID)
		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, map[string]any{"user": projectUser(user)})
			return
		}
		redirectToApp(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func loginFailed(w http.ResponseWriter, r *http.Request, message, email string, status int) {
	if wantsJSON(r) {
		writeJSONError(w, status, message)
		return
	}
	renderPage(w, r, status, pages.Login(message, email))
}

func renderPage(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render page", "error", err, "path", r.URL.Path)
	}
}
