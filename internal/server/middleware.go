package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	applog "ecobite/internal/log"
)

const requestIDHeader = "X-Request-ID"

// withRequestID tags every request with an ID that is echoed in the response
// and attached to log records. A well-formed inbound ID is reused.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := applog.WithRequestID(r.Context(), id)
		applog.Debug(ctx, "request received", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
