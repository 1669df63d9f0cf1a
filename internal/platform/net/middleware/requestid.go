package middleware

import (
	"net/http"

	"gamedex/internal/platform/logger"
	gnet "gamedex/internal/platform/net"

	"github.com/google/uuid"
)

// requestIDHeader is propagated when the caller supplies one, minted otherwise
const requestIDHeader = "X-Request-ID"

// RequestID attaches or propagates X-Request-ID and stores it on context
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			ctx := gnet.WithRequestID(r.Context(), id)
			ctx = logger.WithRequest(ctx, id)
			w.Header().Set(requestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
