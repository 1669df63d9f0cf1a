// Package module holds the cross-module registry used for port lookups
package module

import (
	"fmt"
	"sync"

	phttp "gamedex/internal/platform/net/http"
)

// Module mirrors modkit.Module without importing it (avoids a cycle)
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

var (
	mu       sync.RWMutex
	registry = map[string]any{}
)

// Register stores a module's ports under its name
func Register(name string, ports any) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = ports
}

// PortsOf returns the ports registered under name
func PortsOf(name string) (any, bool) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := registry[name]
	return p, ok
}

// MustPortsOf extracts a module's ports as T, panicking on wiring mistakes
func MustPortsOf[T any](m Module) T {
	p, ok := m.Ports().(T)
	if !ok {
		panic(fmt.Sprintf("module %q: ports are %T, not %T", m.Name(), m.Ports(), *new(T)))
	}
	return p
}
