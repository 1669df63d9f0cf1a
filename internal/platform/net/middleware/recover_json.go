package middleware

import (
	"net/http"
	"runtime/debug"

	perr "gamedex/internal/platform/errors"
	"gamedex/internal/platform/logger"
	phttp "gamedex/internal/platform/net/http"
)

// RecoverJSON catches panics and replies with the standard JSON envelope
// instead of chi's text 500
func RecoverJSON() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.C(r.Context()).Error().
						Interface("panic", rec).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")
					phttp.RespondError(w, r, perr.PanicErrf("internal error"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
