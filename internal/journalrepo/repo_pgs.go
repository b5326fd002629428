// Package journalrepo manages repository layer of journal entries.
package journalrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/pkg/dbpkg"
	"github.com/go-petr/ledger/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates journal repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns journal RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
WITH e AS (
    INSERT INTO
        journal_entries (transaction_id, recorded_by)
    VALUES
        ($1, $2)
    RETURNING id, transaction_id, recorded_by, created_at
)
SELECT e.id, e.transaction_id, t.description, e.recorded_by, e.created_at
FROM e
JOIN transactions t ON t.id = e.transaction_id
`

// Create records the transaction in the journal and returns the entry.
func (r *RepoPGS) Create(ctx context.Context, transactionID int64, recordedBy string) (domain.JournalEntry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, transactionID, recordedBy)

	var e domain.JournalEntry

	err := row.Scan(
		&e.ID,
		&e.TransactionID,
		&e.TransactionDescription,
		&e.RecordedBy,
		&e.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %v, %v)", transactionID, recordedBy)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "journal_entries_transaction_id_fkey":
				return e, domain.ErrTransactionNotFound
			case "journal_entries_recorded_by_fkey":
				return e, domain.ErrUserNotFound
			}
		}

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const getQuery = `
SELECT e.id, e.transaction_id, t.description, e.recorded_by, e.created_at
FROM journal_entries e
JOIN transactions t ON t.id = e.transaction_id
WHERE e.id = $1
`

// Get returns the journal entry with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.JournalEntry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var e domain.JournalEntry

	err := row.Scan(
		&e.ID,
		&e.TransactionID,
		&e.TransactionDescription,
		&e.RecordedBy,
		&e.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			l.Info().Err(err).Int64("id", id).Send()
			return e, domain.ErrJournalEntryNotFound
		}

		l.Error().Err(err).Send()

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const listQuery = `
SELECT e.id, e.transaction_id, t.description, e.recorded_by, e.created_at
FROM journal_entries e
JOIN transactions t ON t.id = e.transaction_id
ORDER BY e.id
LIMIT $1 OFFSET $2
`

// List returns the specified page of journal entries ordered by id.
func (r *RepoPGS) List(ctx context.Context, limit, offset int32) ([]domain.JournalEntry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.JournalEntry{}

	for rows.Next() {
		var e domain.JournalEntry
		if err := rows.Scan(
			&e.ID,
			&e.TransactionID,
			&e.TransactionDescription,
			&e.RecordedBy,
			&e.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
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
