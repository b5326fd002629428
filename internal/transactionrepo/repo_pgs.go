// Package transactionrepo manages repository layer of transactions.
package transactionrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/ledger/internal/accountrepo"
	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/internal/journalrepo"
	"github.com/go-petr/ledger/pkg/dbpkg"
	"github.com/go-petr/ledger/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transaction RepoPGS running on the given db or sql transaction.
//
// Post is not available on it.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transaction RepoPGS wiht connection to start sql transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const selectColumns = `
    t.id, t.date, t.description,
    t.debit_account_id, d.title,
    t.credit_account_id, c.title,
    t.amount, t.created_by, t.created_at
`

const joinAccounts = `
JOIN accounts d ON d.id = t.debit_account_id
JOIN accounts c ON c.id = t.credit_account_id
`

func scanTransaction(row interface{ Scan(dest ...any) error }) (domain.Transaction, error) {
	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.Date,
		&t.Description,
		&t.DebitAccountID,
		&t.DebitAccountTitle,
		&t.CreditAccountID,
		&t.CreditAccountTitle,
		&t.Amount,
		&t.CreatedBy,
		&t.CreatedAt,
	)
	if err != nil {
		return domain.Transaction{}, err
	}

	t.Date = t.Date.UTC()

	return t, nil
}

const createQuery = `
WITH t AS (
    INSERT INTO
        transactions (date, description, debit_account_id, credit_account_id, amount, created_by)
    VALUES
        ($1, $2, $3, $4, $5, $6)
    RETURNING *
)
SELECT ` + selectColumns + `
FROM t` + joinAccounts

// Create inserts the transaction row and then returns it.
//
// Balances are left untouched, use Post to apply a transaction to the accounts.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Date.Format(domain.DateLayout),
		arg.Description,
		arg.DebitAccountID,
		arg.CreditAccountID,
		arg.Amount,
		arg.CreatedBy,
	)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_debit_account_id_fkey", "transactions_credit_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_created_by_fkey":
				return t, domain.ErrUserNotFound
			case "transactions_amount_check":
				return t, domain.ErrInvalidAmount
			case "transactions_distinct_accounts_check":
				return t, domain.ErrSameAccount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT ` + selectColumns + `
FROM transactions t` + joinAccounts + `
WHERE t.id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	t, err := scanTransaction(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			l.Info().Err(err).Int64("id", id).Send()
			return t, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT ` + selectColumns + `
FROM transactions t` + joinAccounts + `
WHERE
    ($1::date IS NULL OR t.date = $1::date)
    AND ($2::bigint = 0 OR t.debit_account_id = $2)
    AND ($3::bigint = 0 OR t.credit_account_id = $3)
ORDER BY t.date, t.id
LIMIT $4 OFFSET $5
`

// List returns the page of transactions matching the filters of arg.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var date sql.NullString
	if !arg.Date.IsZero() {
		date = sql.NullString{String: arg.Date.Format(domain.DateLayout), Valid: true}
	}

	rows, err := r.db.QueryContext(ctx, listQuery,
		date,
		arg.DebitAccountID,
		arg.CreditAccountID,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
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

const deleteQuery = `
DELETE FROM transactions
WHERE id = $1
`

// Delete removes the transaction with the given id together with its journal entries.
//
// The balances of the referenced accounts are not reversed.
func (r *RepoPGS) Delete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Int64("id", id).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Post applies the transaction to both accounts, records it and journals it.
//
// The balance updates, the transaction row and the journal entry are written
// within a single sql transaction: either all of them persist or none does.
func (r *RepoPGS) Post(ctx context.Context, arg domain.CreateTransactionParams) (domain.PostResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.PostResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := NewTxRepoPGS(tx)
	journalRepo := journalrepo.NewRepoPGS(tx)

	debit, credit, err := lockAccounts(ctx, accountRepo, arg.DebitAccountID, arg.CreditAccountID)
	if err != nil {
		l.Info().Err(err).Msgf("Post(ctx, %+v)", arg)

		if err == domain.ErrAccountNotFound {
			return result, err
		}

		return result, errorspkg.ErrInternal
	}

	debit.ApplyDebit(arg.Amount)
	credit.ApplyCredit(arg.Amount)

	result.DebitAccount, result.CreditAccount, err = saveBalances(ctx, accountRepo, debit, credit)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.PostResult{}, errorspkg.ErrInternal
	}

	result.Transaction, err = transactionRepo.Create(ctx, arg)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.PostResult{}, errorspkg.ErrInternal
	}

	result.JournalEntry, err = journalRepo.Create(ctx, result.Transaction.ID, arg.CreatedBy)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.PostResult{}, errorspkg.ErrInternal
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.PostResult{}, errorspkg.ErrInternal
	}

	return result, nil
}

// lockAccounts loads and locks both accounts.
//
// Rows are locked in ascending id order so that concurrent postings between
// the same pair of accounts cannot deadlock.
func lockAccounts(ctx context.Context, r *accountrepo.RepoPGS, debitID, creditID int64) (domain.Account, domain.Account, error) {
	firstID, secondID := debitID, creditID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := r.GetForUpdate(ctx, firstID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	second, err := r.GetForUpdate(ctx, secondID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	if first.ID == debitID {
		return first, second, nil
	}

	return second, first, nil
}

func saveBalances(ctx context.Context, r *accountrepo.RepoPGS, debit, credit domain.Account) (domain.Account, domain.Account, error) {
	first, second := debit, credit
	if second.ID < first.ID {
		first, second = second, first
	}

	savedFirst, err := r.SetBalance(ctx, first.ID, first.Balance)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	savedSecond, err := r.SetBalance(ctx, second.ID, second.Balance)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	if savedFirst.ID == debit.ID {
		return savedFirst, savedSecond, nil
	}

	return savedSecond, savedFirst, nil
}
