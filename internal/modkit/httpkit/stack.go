package httpkit

import (
	"net/http"
	"time"

	mw "gamedex/internal/platform/net/middleware"
)

// CommonStack is the default middleware bundle for API mounts
func CommonStack() []func(http.Handler) http.Handler {
	stack := mw.Defaults()
	stack = append(stack,
		mw.CORS(mw.CORSOptions{AllowedOrigins: []string{"*"}}),
		mw.AccessLog(mw.AccessLogOptions{Slow: 2 * time.Second}),
	)
	return stack
}
