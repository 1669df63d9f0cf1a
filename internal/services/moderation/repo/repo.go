// Package repo provides postgres access for moderation
package repo

import (
	"context"

	"gamedex/internal/modkit/repokit"
	perr "gamedex/internal/platform/errors"
)

// Repo is the minimal persistence surface for moderation
type Repo interface {
	SetFlags(ctx context.Context, gameID int64, greenlight, redlight bool) error
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

func (r *queries) SetFlags(ctx context.Context, gameID int64, greenlight, redlight bool) error {
	const sql = `
update games
set greenlight = $2, redlight = $3, updated_at = now()
where id = $1
`
	tag, err := r.q.Exec(ctx, sql, gameID, greenlight, redlight)
	if err != nil {
		return perr.WrapDB(err, "set moderation flags")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("game %d not found", gameID)
	}
	return nil
}
