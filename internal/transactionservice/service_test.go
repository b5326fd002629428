package transactionservice

import (
	"context"
	"testing"
	"time"

	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/internal/integrationtest/helpers"
	"github.com/go-petr/ledger/pkg/errorspkg"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var compareDecimal = cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) })

func TestPost(t *testing.T) {
	debit := helpers.RandomAccount()
	debit.ID = 1
	credit := helpers.RandomAccount()
	credit.ID = 2

	creator := "accountant"
	amount := decimal.RequireFromString("100.00")
	date := time.Now().UTC().Truncate(24 * time.Hour)

	validArg := domain.CreateTransactionParams{
		Date:            date,
		Description:     "Invoice 42",
		DebitAccountID:  debit.ID,
		CreditAccountID: credit.ID,
		Amount:          amount,
	}

	wantRepoArg := validArg
	wantRepoArg.CreatedBy = creator

	postedDebit, postedCredit := debit, credit
	postedDebit.ApplyDebit(amount)
	postedCredit.ApplyCredit(amount)

	result := domain.PostResult{
		Transaction:   domain.Transaction{ID: 10, Date: date, Amount: amount, DebitAccountID: debit.ID, CreditAccountID: credit.ID, CreatedBy: creator},
		DebitAccount:  postedDebit,
		CreditAccount: postedCredit,
		JournalEntry:  domain.JournalEntry{ID: 3, TransactionID: 10, RecordedBy: creator},
	}

	withArg := func(f func(arg *domain.CreateTransactionParams)) domain.CreateTransactionParams {
		arg := validArg
		f(&arg)

		return arg
	}

	testCases := []struct {
		name       string
		arg        domain.CreateTransactionParams
		buildStubs func(repo *MockRepo)
		want       domain.PostResult
		wantErr    error
	}{
		{
			name: "OK",
			arg:  validArg,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Post(gomock.Any(), gomock.Eq(wantRepoArg)).Times(1).Return(result, nil)
			},
			want: result,
		},
		{
			name: "Zero amount",
			arg:  withArg(func(arg *domain.CreateTransactionParams) { arg.Amount = decimal.Zero }),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Post(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "Amount above column capacity",
			arg:  withArg(func(arg *domain.CreateTransactionParams) { arg.Amount = decimal.RequireFromString("100000000000000.00") }),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Post(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "Negative amount",
			arg:  withArg(func(arg *domain.CreateTransactionParams) { arg.Amount = decimal.NewFromInt(-5) }),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Post(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "Same account",
			arg:  withArg(func(arg *domain.CreateTransactionParams) { arg.CreditAccountID = arg.DebitAccountID }),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Post(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrSameAccount,
		},
		{
			name: "ErrAccountNotFound",
			arg:  validArg,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Post(gomock.Any(), gomock.Any()).Times(1).Return(domain.PostResult{}, domain.ErrAccountNotFound)
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "Partial write",
			arg:  validArg,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Post(gomock.Any(), gomock.Any()).Times(1).Return(domain.PostResult{}, errorspkg.ErrInternal)
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

			got, err := New(repo).Post(context.Background(), creator, tc.arg)
			require.ErrorIs(t, err, tc.wantErr)

			if diff := cmp.Diff(tc.want, got, compareDecimal); diff != "" {
				t.Errorf("Post(ctx, %v, %+v) returned unexpected difference (-want +got):\n%s", creator, tc.arg, diff)
			}
		})
	}
}

func TestList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	filter := domain.ListTransactionsParams{DebitAccountID: 4}
	wantArg := domain.ListTransactionsParams{DebitAccountID: 4, Limit: 20, Offset: 20}

	repo := NewMockRepo(ctrl)
	repo.EXPECT().List(gomock.Any(), gomock.Eq(wantArg)).Times(1).Return([]domain.Transaction{}, nil)

	got, err := New(repo).List(context.Background(), filter, 20, 2)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().Get(gomock.Any(), gomock.Eq(int64(9))).Times(1).Return(domain.Transaction{}, domain.ErrTransactionNotFound)

	_, err := New(repo).Get(context.Background(), 9)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestDelete(t *testing.T) {
	testCases := []struct {
		name       string
		capability domain.Capability
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name:       "OK",
			capability: domain.IsAdmin(domain.RoleAdmin),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Delete(gomock.Any(), gomock.Eq(int64(5))).Times(1).Return(nil)
			},
		},
		{
			name:       "Not privileged",
			capability: domain.IsAdmin(domain.RoleMember),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:       "Nil capability",
			capability: nil,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:       "ErrTransactionNotFound",
			capability: domain.Allow,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Delete(gomock.Any(), gomock.Eq(int64(5))).Times(1).Return(domain.ErrTransactionNotFound)
			},
			wantErr: domain.ErrTransactionNotFound,
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

			err := New(repo).Delete(context.Background(), 5, tc.capability)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
