package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation ID on tuid API requests and
// responses.
const RequestIDHeader = "X-Tuid-Request-Id"

type ctxKeyRequestID struct{}

// RequestID tags each request with a correlation ID, reusing the caller's
// value when one is supplied and echoing it back on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, reqID)
		w.Header().Set(RequestIDHeader, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the correlation ID injected by RequestID, falling
// back to the request header for handlers mounted outside the chain.
func GetRequestID(r *http.Request) string {
	if id, ok := r.Context().Value(ctxKeyRequestID{}).(string); ok {
		return id
	}
	return r.Header.Get(RequestIDHeader)
}
