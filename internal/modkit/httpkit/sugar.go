package httpkit

import (
	"net/http"

	phttp "gamedex/internal/platform/net/http"
)

// GetJSON mounts a pure JSON handler under GET
func GetJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Get(path, phttp.JSONHandler(h))
}

// PostJSON mounts a pure JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// PutJSON mounts a pure JSON handler under PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, phttp.JSONHandler(h))
}

// Get registers a no-body handler and wraps the result in the envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.JSONHandlerNoBody(h))
}

// Post registers a no-body handler and wraps the result in the envelope
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, phttp.JSONHandlerNoBody(h))
}

// MountAPIV1 mounts fn under /api/v1 with the given middleware stack
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, fn func(api Router)) {
	r.Route("/api/v1", func(api Router) {
		api.Use(mw...)
		fn(api)
	})
}
