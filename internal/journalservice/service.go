// Package journalservice manages business logic layer of the journal.
package journalservice

import (
	"context"

	"github.com/go-petr/ledger/internal/domain"
)

// Repo provides data access layer interface needed by journal service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package journalservice
type Repo interface {
	Get(ctx context.Context, id int64) (domain.JournalEntry, error)
	List(ctx context.Context, limit, offset int32) ([]domain.JournalEntry, error)
}

// Service facilitates journal service layer logic.
type Service struct {
	repo Repo
}

// New returns journal service struct.
func New(jr Repo) *Service {
	return &Service{repo: jr}
}

// Get returns the journal entry with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.JournalEntry, error) {
	return s.repo.Get(ctx, id)
}

// List returns the given page of journal entries.
func (s *Service) List(ctx context.Context, pageSize, pageID int32) ([]domain.JournalEntry, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, limit, offset)
}
