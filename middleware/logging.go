package middleware

import (
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"laptop-gallery/logging"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger puts a request-scoped logger into the context and logs one
// line per request once the handler returns.
func RequestLogger(base *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get(HeaderRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, rid)

			l := base.With(
				"request_id", rid,
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
			r = r.WithContext(logging.IntoContext(r.Context(), l))

			m := httpsnoop.CaptureMetrics(next, w, r)

			switch {
			case m.Code >= 500:
				l.Error("request completed", "status", m.Code, "duration_ms", m.Duration.Milliseconds())
			case m.Code >= 400:
				l.Warn("request completed", "status", m.Code, "duration_ms", m.Duration.Milliseconds())
			default:
				l.Info("request completed", "status", m.Code, "duration_ms", m.Duration.Milliseconds(), "bytes", m.Written)
			}
		})
	}
}
