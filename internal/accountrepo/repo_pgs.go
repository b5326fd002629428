// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/pkg/dbpkg"
	"github.com/go-petr/ledger/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const accountColumns = `id, code, title, type, balance, created_at`

func scanAccount(row interface{ Scan(dest ...any) error }) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Code,
		&a.Title,
		&a.Type,
		&a.Balance,
		&a.CreatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}

	a.FormattedBalance = domain.FormatMoney(a.Balance)

	return a, nil
}

// mapConstraint translates constraint violations of the accounts table.
func mapConstraint(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "accounts_code_key":
			return domain.ErrDuplicateCode
		case "accounts_type_check":
			return domain.ErrInvalidAccountType
		case "transactions_debit_account_id_fkey", "transactions_credit_account_id_fkey":
			return domain.ErrAccountInUse
		}
	}

	return errorspkg.ErrInternal
}

const createQuery = `
INSERT INTO
    accounts (code, title, type)
VALUES
    ($1, $2, $3)
RETURNING ` + accountColumns

// Create creates the account with zero balance and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.Code, arg.Title, arg.Type)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)
		return a, mapConstraint(err)
	}

	return a, nil
}

const getQuery = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Account, error) {
	return r.get(ctx, getQuery, id)
}

const getForUpdateQuery = getQuery + `FOR NO KEY UPDATE`

// GetForUpdate returns the account with the given id and locks its row until
// the end of the enclosing transaction.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id int64) (domain.Account, error) {
	return r.get(ctx, getForUpdateQuery, id)
}

func (r *RepoPGS) get(ctx context.Context, query string, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			l.Info().Err(err).Int64("id", id).Send()
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT ` + accountColumns + `
FROM accounts
ORDER BY code
LIMIT $1 OFFSET $2
`

// List returns the specified page of accounts ordered by code.
func (r *RepoPGS) List(ctx context.Context, limit, offset int32) ([]domain.Account, error) {
	return r.list(ctx, listQuery, limit, offset)
}

const listAllQuery = `
SELECT ` + accountColumns + `
FROM accounts
ORDER BY code
`

// ListAll returns every account ordered by code.
func (r *RepoPGS) ListAll(ctx context.Context) ([]domain.Account, error) {
	return r.list(ctx, listAllQuery)
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateQuery = `
UPDATE accounts
SET code = $2, title = $3, type = $4
WHERE id = $1
RETURNING ` + accountColumns

// Update changes the code, title and type of the account and returns it.
func (r *RepoPGS) Update(ctx context.Context, arg domain.UpdateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery, arg.ID, arg.Code, arg.Title, arg.Type)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Msgf("Update(ctx, %+v)", arg)

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, mapConstraint(err)
	}

	return a, nil
}

const setBalanceQuery = `
UPDATE accounts
SET balance = $2
WHERE id = $1
RETURNING ` + accountColumns

// SetBalance overwrites the balance of the account and returns the changed account.
func (r *RepoPGS) SetBalance(ctx context.Context, id int64, balance decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, setBalanceQuery, id, balance))
	if err != nil {
		l.Error().Err(err).Int64("id", id).Stringer("balance", balance).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE id = $1
`

// Delete removes the account with the given id.
//
// An account referenced by transactions cannot be removed.
func (r *RepoPGS) Delete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Int64("id", id).Send()
		return mapConstraint(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}
