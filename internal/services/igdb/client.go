// Package igdb implements the secondary catalog fallback over the IGDB
// HTTP API. Calls pass through a process-wide rate budget; once the budget
// is exhausted the client degrades to empty results so the coordinator can
// serve local data instead of queuing
package igdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gamedex/internal/core/catalog"
	"gamedex/internal/platform/config"
	perr "gamedex/internal/platform/errors"
	"gamedex/internal/platform/logger"
	"gamedex/internal/platform/ratelimit"
)

// Config holds connectivity and quota settings
type Config struct {
	BaseURL  string
	ClientID string
	Token    string

	// RatePerSec and Burst bound the process-wide call budget
	RatePerSec float64
	Burst      int

	Timeout time.Duration
}

// FromConfig reads client settings from the env view (IGDB_*)
func FromConfig(cfg config.Conf) Config {
	return Config{
		BaseURL:    cfg.MayString("URL", "https://api.igdb.com/v4"),
		ClientID:   cfg.MayString("CLIENT_ID", ""),
		Token:      cfg.MayString("TOKEN", ""),
		RatePerSec: cfg.MayFloat64("RATE_PER_SEC", 4),
		Burst:      cfg.MayInt("BURST", 8),
		Timeout:    cfg.MayDuration("TIMEOUT", 5*time.Second),
	}
}

// Client talks to the external catalog. Safe for concurrent use
type Client struct {
	cfg    Config
	http   *http.Client
	budget *ratelimit.Budget
	log    logger.Logger
}

// New constructs a Client with its own rate budget
func New(cfg Config, log logger.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		budget: ratelimit.New(cfg.RatePerSec, cfg.Burst),
		log:    log.With().Str("component", "igdb").Logger(),
	}
}

// Budget exposes the rate counters for observability
func (c *Client) Budget() *ratelimit.Budget { return c.budget }

// game is the wire shape of one IGDB row
type game struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	Category         int      `json:"category"`
	FirstReleaseDate *int64   `json:"first_release_date"`
	Summary          string   `json:"summary"`
	Rating           *float64 `json:"total_rating"`
	RatingCount      *int     `json:"total_rating_count"`
	Follows          *int     `json:"follows"`
	Hypes            *int     `json:"hypes"`
	UpdatedAt        *int64   `json:"updated_at"`
}

// Fetch queries the external catalog for up to limit rows matching query.
// Quota exhaustion is not an error: it returns an empty slice so the
// fallback stage degrades silently
func (c *Client) Fetch(ctx context.Context, query string, limit int) ([]catalog.Game, error) {
	if !c.budget.Allow() {
		c.log.Debug().Str("query", query).Msg("igdb budget exhausted, skipping fallback")
		return nil, nil
	}

	body := fmt.Sprintf(
		"search %q; fields id,name,slug,category,first_release_date,summary,"+
			"total_rating,total_rating_count,follows,hypes,updated_at; limit %d;",
		query, limit,
	)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/games",
		bytes.NewBufferString(body),
	)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "igdb request build")
	}
	req.Header.Set("Client-ID", c.cfg.ClientID)
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "igdb fetch")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		// server-side throttling counts as quota exhaustion, not failure
		c.log.Warn().Str("query", query).Msg("igdb throttled upstream")
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "igdb status %d: %s", resp.StatusCode, b)
	}

	var rows []game
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "igdb decode")
	}

	out := make([]catalog.Game, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (g game) toDomain() catalog.Game {
	id := g.ID
	out := catalog.Game{
		IGDBID:      &id,
		Name:        g.Name,
		Slug:        g.Slug,
		Category:    mapCategory(g.Category),
		Summary:     g.Summary,
		Rating:      g.Rating,
		RatingCount: g.RatingCount,
		Follows:     g.Follows,
		Hypes:       g.Hypes,
	}
	if g.FirstReleaseDate != nil {
		t := time.Unix(*g.FirstReleaseDate, 0).UTC()
		out.ReleaseDate = &t
	}
	if g.UpdatedAt != nil {
		t := time.Unix(*g.UpdatedAt, 0).UTC()
		out.UpdatedAt = &t
	}
	return out
}

// mapCategory translates the IGDB category enum to the catalog taxonomy
func mapCategory(c int) catalog.Category {
	switch c {
	case 0:
		return catalog.CategoryMain
	case 1:
		return catalog.CategoryDLC
	case 2, 10:
		return catalog.CategoryExpansion
	case 4:
		return catalog.CategoryStandaloneExpansion
	case 5:
		return catalog.CategoryMod
	case 8, 9, 11:
		return catalog.CategoryRemakePort
	case 3, 6, 7, 12:
		return catalog.CategoryOther
	default:
		return catalog.CategoryUnknown
	}
}
