// Package transactionservice manages business logic layer of transactions.
package transactionservice

import (
	"context"

	"github.com/go-petr/ledger/internal/domain"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Post(ctx context.Context, arg domain.CreateTransactionParams) (domain.PostResult, error)
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
	Delete(ctx context.Context, id int64) error
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo Repo
}

// New returns transaction service struct to manage transaction bussines logic.
func New(tr Repo) *Service {
	return &Service{repo: tr}
}

// Post validates the transaction and applies it atomically to both accounts.
//
// Invalid input never reaches the repository, so no balance is touched.
func (s *Service) Post(ctx context.Context, creator string, arg domain.CreateTransactionParams) (domain.PostResult, error) {
	l := zerolog.Ctx(ctx)

	arg.CreatedBy = creator

	if err := domain.ValidateTransaction(arg); err != nil {
		l.Info().Err(err).Msgf("Post(ctx, %v, %+v)", creator, arg)
		return domain.PostResult{}, err
	}

	result, err := s.repo.Post(ctx, arg)
	if err != nil {
		return domain.PostResult{}, err
	}

	l.Info().
		Int64("transaction_id", result.Transaction.ID).
		Int64("debit_account_id", arg.DebitAccountID).
		Int64("credit_account_id", arg.CreditAccountID).
		Stringer("amount", arg.Amount).
		Msg("transaction posted")

	return result, nil
}

// Get returns the transaction with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	return s.repo.Get(ctx, id)
}

// List returns the given page of transactions matching the filters of arg.
func (s *Service) List(ctx context.Context, arg domain.ListTransactionsParams, pageSize, pageID int32) ([]domain.Transaction, error) {
	arg.Limit = pageSize
	arg.Offset = (pageID - 1) * pageSize

	return s.repo.List(ctx, arg)
}

// Delete removes the transaction if the caller holds the privilege to do so.
//
// The balances of the referenced accounts are not reversed.
func (s *Service) Delete(ctx context.Context, id int64, canDelete domain.Capability) error {
	l := zerolog.Ctx(ctx)

	if canDelete == nil || !canDelete() {
		l.Warn().Int64("id", id).Err(domain.ErrUnauthorized).Send()
		return domain.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	l.Info().Int64("transaction_id", id).Msg("transaction deleted")

	return nil
}
