package middleware

import (
	"context"
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RequestIDHeader is the correlation-id header, echoed back on every
// response so one request can be traced across client, server, and logs.
const RequestIDHeader = "X-Request-Id"

const RequestIDCtxKey contextKey = "requestID"

// RequestID assigns each request a correlation identifier - the inbound
// header value when supplied, a fresh UUID otherwise - sets it on the
// response, and scopes the logger in the request context to it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		reqLogger := log.With().Str("request_id", requestID).Logger()
		ctx := context.WithValue(r.Context(), RequestIDCtxKey, requestID)
		ctx = reqLogger.WithContext(ctx)

		reqLogger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("incoming request")

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		reqLogger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

// GetRequestID returns the correlation id assigned to the request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDCtxKey).(string)
	return id
}
