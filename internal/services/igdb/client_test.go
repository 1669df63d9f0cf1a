package igdb

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gamedex/internal/core/catalog"
	"gamedex/internal/platform/logger"
)

func testCfg(url string) Config {
	return Config{
		BaseURL:    url,
		ClientID:   "cid",
		Token:      "tok",
		RatePerSec: 100,
		Burst:      100,
		Timeout:    time.Second,
	}
}

func TestFetch_MapsRows(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/games" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Client-ID") != "cid" || r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("auth headers missing: %v", r.Header)
		}
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 42, "name": "Pokémon Blue", "slug": "pokemon-blue", "category": 0,
			 "first_release_date": 824428800, "total_rating": 85.5, "total_rating_count": 900,
			 "follows": 12000, "updated_at": 1755000000},
			{"id": 43, "name": "Blue Expansion", "category": 2}
		]`))
	}))
	defer srv.Close()

	c := New(testCfg(srv.URL), *logger.Get())
	rows, err := c.Fetch(context.Background(), "pokemon blue", 25)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	g := rows[0]
	if g.IGDBID == nil || *g.IGDBID != 42 {
		t.Fatalf("IGDBID = %v", g.IGDBID)
	}
	if g.Name != "Pokémon Blue" || g.Category != catalog.CategoryMain {
		t.Fatalf("mapped row wrong: %+v", g)
	}
	if g.ReleaseDate == nil || g.ReleaseDate.Year() != 1996 {
		t.Fatalf("release date wrong: %v", g.ReleaseDate)
	}
	if g.Rating == nil || *g.Rating != 85.5 {
		t.Fatalf("rating wrong: %v", g.Rating)
	}
	if rows[1].Category != catalog.CategoryExpansion {
		t.Fatalf("category 2 should map to expansion, got %v", rows[1].Category)
	}

	if !strings.Contains(gotBody, `search "pokemon blue"`) || !strings.Contains(gotBody, "limit 25") {
		t.Fatalf("unexpected query body: %q", gotBody)
	}
}

func TestFetch_BudgetExhaustedDegradesToEmpty(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := testCfg(srv.URL)
	cfg.RatePerSec = 0.0001
	cfg.Burst = 1
	c := New(cfg, *logger.Get())

	if _, err := c.Fetch(context.Background(), "zelda", 10); err != nil {
		t.Fatalf("first call: %v", err)
	}
	rows, err := c.Fetch(context.Background(), "zelda", 10)
	if err != nil {
		t.Fatalf("exhausted budget must not error: %v", err)
	}
	if rows != nil {
		t.Fatalf("exhausted budget must return no rows, got %v", rows)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("server hit %d times, want 1", hits)
	}

	snap := c.Budget().Snapshot()
	if snap.Denied != 1 {
		t.Fatalf("denied = %d, want 1", snap.Denied)
	}
}

func TestFetch_UpstreamThrottleIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(testCfg(srv.URL), *logger.Get())
	rows, err := c.Fetch(context.Background(), "halo", 10)
	if err != nil || rows != nil {
		t.Fatalf("throttle must degrade silently, got rows=%v err=%v", rows, err)
	}
}

func TestFetch_ServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(testCfg(srv.URL), *logger.Get())
	if _, err := c.Fetch(context.Background(), "halo", 10); err == nil {
		t.Fatalf("5xx must surface as an error")
	}
}
