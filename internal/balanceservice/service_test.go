package balanceservice

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/pkg/errorspkg"
	"github.com/go-petr/ledger/pkg/sheetpkg"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func snapshot() ([]domain.Account, map[int64]domain.AccountTotals) {
	accounts := []domain.Account{
		{ID: 2, Code: "101", Title: "A", Type: domain.Asset, Balance: decimal.NewFromInt(-100)},
		{ID: 1, Code: "102", Title: "B", Type: domain.Revenue, Balance: decimal.NewFromInt(100)},
		{ID: 3, Code: "103", Title: "Idle", Type: domain.Expense, Balance: decimal.Zero},
	}
	totals := map[int64]domain.AccountTotals{
		2: {Debits: decimal.NewFromInt(100), Credits: decimal.Zero},
		1: {Debits: decimal.Zero, Credits: decimal.NewFromInt(100)},
	}

	return accounts, totals
}

func TestExportCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts, totals := snapshot()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().Snapshot(gomock.Any()).Times(1).Return(accounts, totals, nil)

	var buf bytes.Buffer

	err := New(repo).Export(context.Background(), &buf, sheetpkg.FormatCSV)
	require.NoError(t, err)

	want := "Compte,Intitulé,Solde début période,Débit,Crédit,Solde fin période\n" +
		"101,A,0.00,100.00,0.00,-100.00\n" +
		"102,B,0.00,0.00,100.00,100.00\n" +
		"103,Idle,0.00,0.00,0.00,0.00\n"
	require.Equal(t, want, buf.String())
}

func TestExportXLSX(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts, totals := snapshot()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().Snapshot(gomock.Any()).Times(1).Return(accounts, totals, nil)

	var buf bytes.Buffer

	err := New(repo).Export(context.Background(), &buf, sheetpkg.FormatXLSX)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	defer f.Close()

	require.Equal(t, []string{domain.BalanceSheetTitle}, f.GetSheetList())

	rows, err := f.GetRows(domain.BalanceSheetTitle)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, domain.BalanceHeader, rows[0])
	require.Equal(t, "101", rows[1][0])
	require.Equal(t, "B", rows[2][1])

	closing, err := f.GetCellValue(domain.BalanceSheetTitle, "F2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Equal(t, "-100", closing)
}

func TestExportIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts, totals := snapshot()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().Snapshot(gomock.Any()).Times(2).Return(accounts, totals, nil)

	service := New(repo)

	var first, second bytes.Buffer

	require.NoError(t, service.Export(context.Background(), &first, sheetpkg.FormatCSV))
	require.NoError(t, service.Export(context.Background(), &second, sheetpkg.FormatCSV))
	require.Equal(t, first.String(), second.String())
}

func TestExportErrors(t *testing.T) {
	testCases := []struct {
		name       string
		format     string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name:   "Unsupported format",
			format: "pdf",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Snapshot(gomock.Any()).Times(0)
			},
			wantErr: domain.ErrUnsupportedFormat,
		},
		{
			name:   "Repo error",
			format: sheetpkg.FormatXLSX,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Snapshot(gomock.Any()).Times(1).Return(nil, nil, errorspkg.ErrInternal)
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			var buf bytes.Buffer

			err := New(repo).Export(context.Background(), &buf, tc.format)
			require.ErrorIs(t, err, tc.wantErr)
			require.Zero(t, buf.Len())
		})
	}
}
