package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"letterwriter-backend/internal/requestctx"
)

const RequestIDHeader = requestctx.RequestIDHeader

// RequestID reuses an inbound X-Request-ID or generates one, and exposes it
// on the request context and the response headers. The client IP resolved
// by RealIP is stored alongside it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := requestctx.WithRequestID(r.Context(), id)
		ctx = requestctx.WithClientIP(ctx, clientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID extracts the request ID from context
func GetRequestID(ctx context.Context) string {
	return requestctx.RequestID(ctx)
}
