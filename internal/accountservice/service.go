// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-petr/ledger/internal/domain"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context, limit, offset int32) ([]domain.Account, error)
	Update(ctx context.Context, arg domain.UpdateAccountParams) (domain.Account, error)
	Delete(ctx context.Context, id int64) error
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates an account with zero balance.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	if !domain.IsSupportedAccountType(string(arg.Type)) {
		zerolog.Ctx(ctx).Info().Str("type", string(arg.Type)).Err(domain.ErrInvalidAccountType).Send()
		return domain.Account{}, domain.ErrInvalidAccountType
	}

	return s.repo.Create(ctx, arg)
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// List returns the given page of accounts ordered by code.
func (s *Service) List(ctx context.Context, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, limit, offset)
}

// Update changes the code, title and type of the account. The balance is kept.
func (s *Service) Update(ctx context.Context, arg domain.UpdateAccountParams) (domain.Account, error) {
	if !domain.IsSupportedAccountType(string(arg.Type)) {
		zerolog.Ctx(ctx).Info().Str("type", string(arg.Type)).Err(domain.ErrInvalidAccountType).Send()
		return domain.Account{}, domain.ErrInvalidAccountType
	}

	return s.repo.Update(ctx, arg)
}

// Delete removes the account unless transactions reference it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
