// Package flight collapses concurrent identical requests into one shared
// execution. An entry lives exactly as long as its execution: it is inserted
// under the registry lock before the producer runs and removed before any
// waiter is released, so a settled key never lingers and a failed execution
// never poisons the next call
package flight

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Delimiter joins the fingerprint segments produced by Key
const Delimiter = ":"

// Key builds a canonical request fingerprint from service, method, and the
// defined (non-nil) arguments in call order
func Key(service, method string, args ...any) string {
	parts := make([]string, 0, 2+len(args))
	parts = append(parts, service, method)
	for _, a := range args {
		if a == nil {
			continue
		}
		switch v := a.(type) {
		case string:
			parts = append(parts, v)
		case *string:
			if v == nil {
				continue
			}
			parts = append(parts, *v)
		case *int:
			if v == nil {
				continue
			}
			parts = append(parts, fmt.Sprintf("%d", *v))
		case *int64:
			if v == nil {
				continue
			}
			parts = append(parts, fmt.Sprintf("%d", *v))
		default:
			parts = append(parts, fmt.Sprintf("%v", v))
		}
	}
	return strings.Join(parts, Delimiter)
}

// Stats is a snapshot of the group's counters
type Stats struct {
	// Requests counts every Do call
	Requests int64 `json:"requests"`
	// Started counts executions actually run
	Started int64 `json:"started"`
	// Deduped counts calls satisfied by an already in-flight execution
	Deduped int64 `json:"deduped"`
	// Keys counts distinct keys seen since the last Reset
	Keys int64 `json:"keys"`
	// HitsByKey holds per-key dedup hits since the last Reset
	HitsByKey map[string]int64 `json:"hits_by_key"`
}

// call is one in-flight execution shared by all waiters with the same key
type call struct {
	done    chan struct{}
	val     any
	err     error
	key     string
	created time.Time
	// detached is set by Invalidate so settlement does not delete a
	// newer entry registered under the same key
	detached bool
}

// Group is the in-flight registry. The zero value is not usable; construct
// with New so instances stay isolated and testable
type Group struct {
	mu       sync.Mutex
	inFlight map[string]*call

	requests int64
	started  int64
	deduped  int64
	seen     map[string]struct{}
	hits     map[string]int64
}

// New constructs an empty Group
func New() *Group {
	return &Group{
		inFlight: make(map[string]*call),
		seen:     make(map[string]struct{}),
		hits:     make(map[string]int64),
	}
}

// Do returns the result of fn for key, sharing one execution among all
// concurrent callers with the same key. Lookup-and-insert is a single
// atomic decision under the registry lock. A waiter whose ctx expires
// abandons the wait; the execution itself continues for the others
func (g *Group) Do(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	g.mu.Lock()
	g.requests++
	if _, ok := g.seen[key]; !ok {
		g.seen[key] = struct{}{}
	}

	if c, ok := g.inFlight[key]; ok {
		g.deduped++
		g.hits[key]++
		g.mu.Unlock()

		select {
		case <-c.done:
			return c.val, c.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c := &call{done: make(chan struct{}), key: key, created: time.Now()}
	g.inFlight[key] = c
	g.started++
	g.mu.Unlock()

	c.val, c.err = fn(ctx)

	// remove before releasing waiters so the key never outlives the execution
	g.mu.Lock()
	if !c.detached {
		if cur, ok := g.inFlight[key]; ok && cur == c {
			delete(g.inFlight, key)
		}
	}
	g.mu.Unlock()
	close(c.done)

	return c.val, c.err
}

// Do is the typed wrapper over Group.Do
func Do[T any](g *Group, ctx context.Context, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := g.Do(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("flight: unexpected result type %T for key %q", v, key)
	}
	return out, nil
}

// Invalidate removes in-flight entries matching pattern from the registry and
// returns the count removed. A trailing '*' matches any key with the prefix
// before it; otherwise the match is exact. Executions already running are not
// aborted, but the next Do with a matching key starts fresh
func (g *Group) Invalidate(pattern string) int {
	exact := pattern
	prefix := ""
	wildcard := strings.HasSuffix(pattern, "*")
	if wildcard {
		prefix = strings.TrimSuffix(pattern, "*")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	n := 0
	for k, c := range g.inFlight {
		if wildcard {
			if !strings.HasPrefix(k, prefix) {
				continue
			}
		} else if k != exact {
			continue
		}
		c.detached = true
		delete(g.inFlight, k)
		n++
	}
	return n
}

// InFlight reports the number of live entries (test and debug aid)
func (g *Group) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.inFlight)
}

// Snapshot returns a copy of the counters
func (g *Group) Snapshot() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	hits := make(map[string]int64, len(g.hits))
	for k, v := range g.hits {
		hits[k] = v
	}
	return Stats{
		Requests:  g.requests,
		Started:   g.started,
		Deduped:   g.deduped,
		Keys:      int64(len(g.seen)),
		HitsByKey: hits,
	}
}

// Reset zeroes the counters without touching in-flight entries
func (g *Group) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests, g.started, g.deduped = 0, 0, 0
	g.seen = make(map[string]struct{})
	g.hits = make(map[string]int64)
}
