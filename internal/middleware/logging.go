package middleware

import (
	"net/http"
	"time"

	"github.com/vyrodovalexey/ariproxy/internal/observability"
	"github.com/vyrodovalexey/ariproxy/internal/util"
)

// Logging returns a middleware that logs HTTP requests together with the
// command type and correlation id found in the request context.
func Logging(logger observability.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := util.ContextWithStartTime(r.Context(), start)
			r = r.WithContext(ctx)

			rw := util.NewCapturingResponseWriter(w, 0)

			next.ServeHTTP(rw, r)

			fields := []observability.Field{
				observability.String("method", r.Method),
				observability.String("path", r.URL.Path),
				observability.Int("status", rw.StatusCode),
				observability.Int64("size", rw.BytesWritten),
				observability.Duration("duration", util.ElapsedTime(ctx)),
				observability.String("remote_addr", r.RemoteAddr),
			}
			if commandType := util.CommandTypeFromContext(ctx); commandType != "" {
				fields = append(fields, observability.CommandType(commandType))
			}
			if source := util.IDSourceFromContext(ctx); source != "" {
				fields = append(fields, observability.IDSource(source))
			}

			//nolint:contextcheck // Using request context is correct here
			logger.WithContext(ctx).Info("http request", fields...)
		})
	}
}
