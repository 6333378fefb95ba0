package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/AntonStoeckl/library-records-go/library/shell"
)

const headerCorrelationID = "X-Correlation-ID"

const (
	logMsgRequestHandled = "http.request"
	logMsgRequestFailed  = "http.request_failed"
	logMsgAuthFailed     = "security.auth_failed"

	logAttrMethod   = "method"
	logAttrPath     = "path"
	logAttrRoute    = "route"
	logAttrStatus   = "status"
	logAttrDuration = "duration_ms"
	logAttrError    = "error"
	logAttrReason   = "reason"
	logAttrRemote   = "remote"
	logAttrUser     = "user"
)

// correlationMiddleware takes the correlation id from the request or creates one, and echoes it back.
func (s *Server) correlationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get(headerCorrelationID)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		w.Header().Set(headerCorrelationID, correlationID)

		next.ServeHTTP(w, r.WithContext(shell.WithCorrelationID(r.Context(), correlationID)))
	})
}

// metricsMiddleware records and logs every routed request, labeled with its route template.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var done func(method, route string, status int, duration time.Duration)
		if s.httpMetrics != nil {
			done = s.httpMetrics.Started()
		}

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		route := routeTemplate(r)

		if done != nil {
			done(r.Method, route, wrapped.statusCode, duration)
		}

		if s.logger != nil {
			s.logger.DebugContext(r.Context(), logMsgRequestHandled,
				logAttrMethod, r.Method,
				logAttrRoute, route,
				logAttrStatus, wrapped.statusCode,
				logAttrDuration, duration.Milliseconds(),
			)
		}
	})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}

	return r.URL.Path
}

// responseWriter captures the status code written by the wrapped handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}

	return rw.ResponseWriter.Write(b)
}
