package rest

import (
	"net/http"
	"rental-search-service/internal/contextkeys"
	"rental-search-service/internal/core/port"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const traceHeader = "X-Trace-ID"

// LoggerMiddleware gives every request a trace id (kept from X-Trace-ID when it is a uuid)
// and a trace-scoped logger in its context. The finish record carries the matched chi
// route, so /api/v1/listings/{listingID} aggregates across ids, plus the raw search query.
func LoggerMiddleware(logger port.LoggerPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(traceHeader)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.New().String()
			}
			w.Header().Set(traceHeader, traceID)

			requestLogger := logger.WithFields(port.Fields{"trace_id": traceID})
			ctx := contextkeys.ContextWithTraceID(contextkeys.ContextWithLogger(r.Context(), requestLogger), traceID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			startTime := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := port.Fields{
				"http_method":   r.Method,
				"http_path":     r.URL.Path,
				"route":         routePattern(r),
				"status_code":   status,
				"bytes_written": ww.BytesWritten(),
				"duration_ms":   time.Since(startTime).Milliseconds(),
				"remote_addr":   r.RemoteAddr,
			}
			if r.URL.RawQuery != "" {
				fields["query"] = r.URL.RawQuery
			}

			switch {
			case status >= http.StatusInternalServerError:
				requestLogger.Error("Request failed", nil, fields)
			case status >= http.StatusBadRequest && status != http.StatusNotFound:
				requestLogger.Warn("Request rejected", fields)
			default:
				requestLogger.Info("Request finished", fields)
			}
		})
	}
}

// routePattern is filled in by chi while routing, so it is only complete after next returns.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
