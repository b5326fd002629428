// Package balanceservice computes and exports the balance sheet.
package balanceservice

import (
	"context"
	"io"

	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/pkg/errorspkg"
	"github.com/go-petr/ledger/pkg/sheetpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by balance service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package balanceservice
type Repo interface {
	Snapshot(ctx context.Context) ([]domain.Account, map[int64]domain.AccountTotals, error)
}

// Service facilitates balance service layer logic.
type Service struct {
	repo Repo
}

// New returns balance service struct.
func New(br Repo) *Service {
	return &Service{repo: br}
}

// Balances returns one balance sheet row per account ordered by account code.
func (s *Service) Balances(ctx context.Context) ([]domain.BalanceRow, error) {
	accounts, totals, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return domain.ComputeBalances(accounts, totals), nil
}

// Export writes the balance sheet into w in the given format.
func (s *Service) Export(ctx context.Context, w io.Writer, format string) error {
	l := zerolog.Ctx(ctx)

	if format != sheetpkg.FormatXLSX && format != sheetpkg.FormatCSV {
		l.Info().Str("format", format).Err(domain.ErrUnsupportedFormat).Send()
		return domain.ErrUnsupportedFormat
	}

	rows, err := s.Balances(ctx)
	if err != nil {
		return err
	}

	if err := sheetpkg.Write(w, format, Table(rows)); err != nil {
		l.Error().Err(err).Str("format", format).Send()
		return errorspkg.ErrInternal
	}

	l.Info().Int("accounts", len(rows)).Str("format", format).Msg("balance exported")

	return nil
}

// Table lays the rows out under the balance sheet header.
func Table(rows []domain.BalanceRow) sheetpkg.Table {
	t := sheetpkg.Table{
		Title:  domain.BalanceSheetTitle,
		Header: domain.BalanceHeader,
		Rows:   make([][]any, 0, len(rows)),
	}

	for _, r := range rows {
		t.Rows = append(t.Rows, r.Cells())
	}

	return t
}
