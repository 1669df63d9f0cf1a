// Package repo provides postgres access for search
package repo

import (
	"context"
	"time"

	"gamedex/internal/core/catalog"
	"gamedex/internal/modkit/repokit"
	perr "gamedex/internal/platform/errors"
	"gamedex/internal/services/search/domain"
)

// Repo is the minimal persistence surface for search.
// Both queries exclude redlight rows at the source; the policy filter is a
// second independent layer, not the only one
type Repo interface {
	QueryByName(ctx context.Context, text string, f domain.Filters, limit int) ([]domain.Game, error)
	QueryBySummary(ctx context.Context, text string, f domain.Filters, limit int) ([]domain.Game, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const gameColumns = `
id, igdb_id, name, slug, category, release_date, developer, publisher, summary,
rating, rating_count, follows, hypes, greenlight, redlight, updated_at
`

func (r *queries) QueryByName(
	ctx context.Context, text string, f domain.Filters, limit int,
) ([]domain.Game, error) {
	const sql = `
select ` + gameColumns + `
from games
where redlight = false
and name ilike '%' || $1 || '%'
and ($2 = '' or platform = $2)
and ($3 = '' or genre = $3)
and ($4::timestamptz is null or release_date >= $4)
and ($5::timestamptz is null or release_date <= $5)
order by follows desc nulls last, id asc
limit $6
`
	rows, err := r.q.Query(ctx, sql, text, f.Platform, f.Genre, f.ReleasedAfter, f.ReleasedBefore, limit)
	if err != nil {
		return nil, perr.WrapDB(err, "search by name")
	}
	return scanGames(rows)
}

func (r *queries) QueryBySummary(
	ctx context.Context, text string, f domain.Filters, limit int,
) ([]domain.Game, error) {
	const sql = `
select ` + gameColumns + `
from games
where redlight = false
and summary ilike '%' || $1 || '%'
and ($2 = '' or platform = $2)
and ($3 = '' or genre = $3)
and ($4::timestamptz is null or release_date >= $4)
and ($5::timestamptz is null or release_date <= $5)
order by follows desc nulls last, id asc
limit $6
`
	rows, err := r.q.Query(ctx, sql, text, f.Platform, f.Genre, f.ReleasedAfter, f.ReleasedBefore, limit)
	if err != nil {
		return nil, perr.WrapDB(err, "search by summary")
	}
	return scanGames(rows)
}

func scanGames(rows repokit.Rows) ([]domain.Game, error) {
	defer rows.Close()
	var out []domain.Game
	for rows.Next() {
		var (
			g        domain.Game
			category *string
			release  *time.Time
		)
		if err := rows.Scan(
			&g.ID, &g.IGDBID, &g.Name, &g.Slug, &category, &release,
			&g.Developer, &g.Publisher, &g.Summary,
			&g.Rating, &g.RatingCount, &g.Follows, &g.Hypes,
			&g.Greenlight, &g.Redlight, &g.UpdatedAt,
		); err != nil {
			return nil, perr.WrapDB(err, "scan game row")
		}
		if category != nil {
			g.Category = catalog.ParseCategory(*category)
		}
		g.ReleaseDate = release
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.WrapDB(err, "iterate game rows")
	}
	return out, nil
}
