// Package balancerepo reads the data the balance sheet is computed from.
package balancerepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/ledger/internal/accountrepo"
	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/pkg/dbpkg"
	"github.com/go-petr/ledger/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates balance repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns balance RepoPGS.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{conn: db}
}

// Snapshot returns all accounts ordered by code and the per account totals of
// the debit and credit sides.
//
// Both are read from the same consistent snapshot of the database.
func (r *RepoPGS) Snapshot(ctx context.Context) ([]domain.Account, map[int64]domain.AccountTotals, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		l.Error().Err(err).Send()
		return nil, nil, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	accounts, err := accountrepo.NewRepoPGS(tx).ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	totals, err := Totals(ctx, tx)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return nil, nil, errorspkg.ErrInternal
	}

	return accounts, totals, nil
}

const totalsQuery = `
SELECT account_id, SUM(debits), SUM(credits)
FROM (
    SELECT debit_account_id AS account_id, amount AS debits, 0 AS credits FROM transactions
    UNION ALL
    SELECT credit_account_id, 0, amount FROM transactions
) s
GROUP BY account_id
`

// Totals sums the transaction amounts of every account per side.
//
// Accounts without transactions are absent from the result.
func Totals(ctx context.Context, db dbpkg.SQLInterface) (map[int64]domain.AccountTotals, error) {
	l := zerolog.Ctx(ctx)

	rows, err := db.QueryContext(ctx, totalsQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	totals := make(map[int64]domain.AccountTotals)

	for rows.Next() {
		var (
			id int64
			t  domain.AccountTotals
		)

		if err := rows.Scan(&id, &t.Debits, &t.Credits); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		totals[id] = t
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return totals, nil
}
