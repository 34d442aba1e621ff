package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/vyrodovalexey/ariproxy/internal/observability"
)

// RequestIDHeader is the header carrying the request id in both directions.
const RequestIDHeader = HeaderXRequestID

// maxRequestIDLength bounds incoming ids that are echoed back and logged.
const maxRequestIDLength = 128

// RequestID returns a middleware that stores a request id in the request
// context for log correlation. A well-formed incoming X-Request-ID is
// reused, otherwise a UUID is generated.
func RequestID() func(http.Handler) http.Handler {
	return RequestIDWithGenerator(uuid.NewString)
}

// RequestIDWithGenerator is RequestID with a custom id generator.
func RequestIDWithGenerator(generate func() string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if !validRequestID(id) {
				id = generate()
			}

			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(observability.ContextWithRequestID(r.Context(), id)))
		})
	}
}

// validRequestID accepts non-empty printable ASCII without spaces.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
