//go:build integration

package accountrepo_test

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"github.com/go-petr/ledger/internal/accountrepo"
	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/internal/integrationtest"
	"github.com/go-petr/ledger/internal/integrationtest/helpers"
	"github.com/go-petr/ledger/internal/middleware"
	"github.com/go-petr/ledger/pkg/configpkg"
	"github.com/go-petr/ledger/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
)

var (
	dbDriver string
	dbSource string
	ctx      context.Context
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	logger := middleware.CreateLogger(config)
	ctx = logger.WithContext(context.Background())

	os.Exit(m.Run())
}

var (
	compareDecimal   = cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) })
	compareCreatedAt = cmpopts.EquateApproxTime(time.Second)
)

func TestCreate(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	accountRepo := accountrepo.NewRepoPGS(tx)

	arg := domain.CreateAccountParams{
		Code:  randompkg.AccountCode(),
		Title: randompkg.String(12),
		Type:  domain.Asset,
	}

	got, err := accountRepo.Create(ctx, arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(ctx, %+v) returned error: %v", arg, err)
	}

	want := domain.Account{
		Code:             arg.Code,
		Title:            arg.Title,
		Type:             arg.Type,
		Balance:          decimal.Zero,
		FormattedBalance: "0.00 €",
		CreatedAt:        time.Now(),
	}

	ignoreFields := cmpopts.IgnoreFields(domain.Account{}, "ID")
	if diff := cmp.Diff(want, got, ignoreFields, compareDecimal, compareCreatedAt); diff != "" {
		t.Errorf("accountRepo.Create(ctx, %+v) returned unexpected difference (-want +got):\n%s", arg, diff)
	}

	if got.ID == 0 {
		t.Error("got.ID = 0, want non-zero")
	}
}

func TestCreateDuplicateCode(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	existing := helpers.SeedAccount(t, tx)
	accountRepo := accountrepo.NewRepoPGS(tx)

	arg := domain.CreateAccountParams{
		Code:  existing.Code,
		Title: randompkg.String(12),
		Type:  domain.Revenue,
	}

	_, err := accountRepo.Create(ctx, arg)
	if err != domain.ErrDuplicateCode {
		t.Errorf("accountRepo.Create(ctx, %+v) error = %v, want %v", arg, err, domain.ErrDuplicateCode)
	}
}

func TestGet(t *testing.T) {
	testCases := []struct {
		name    string
		seed    func(tx *sql.Tx) domain.Account
		wantErr error
	}{
		{
			name: "OK",
			seed: func(tx *sql.Tx) domain.Account {
				return helpers.SeedAccount(t, tx)
			},
		},
		{
			name: "ErrAccountNotFound",
			seed: func(tx *sql.Tx) domain.Account {
				return domain.Account{ID: -1}
			},
			wantErr: domain.ErrAccountNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := integrationtest.SetupTX(t, dbDriver, dbSource)
			want := tc.seed(tx)
			accountRepo := accountrepo.NewRepoPGS(tx)

			got, err := accountRepo.Get(ctx, want.ID)
			if err != tc.wantErr {
				t.Fatalf("accountRepo.Get(ctx, %v) error = %v, want %v", want.ID, err, tc.wantErr)
			}

			if tc.wantErr != nil {
				return
			}

			if diff := cmp.Diff(want, got, compareDecimal, compareCreatedAt); diff != "" {
				t.Errorf("accountRepo.Get(ctx, %v) returned unexpected difference (-want +got):\n%s", want.ID, diff)
			}
		})
	}
}

func TestListOrderedByCode(t *testing.T) {
	db := integrationtest.SetupDB(t, dbDriver, dbSource)
	helpers.SeedAccounts(t, db, 5)

	accountRepo := accountrepo.NewRepoPGS(db)

	got, err := accountRepo.List(ctx, 5, 0)
	if err != nil {
		t.Fatalf("accountRepo.List(ctx, 5, 0) returned error: %v", err)
	}

	if len(got) != 5 {
		t.Fatalf("len(got) = %v, want 5", len(got))
	}

	for i := 1; i < len(got); i++ {
		if got[i-1].Code > got[i].Code {
			t.Errorf("got[%d].Code = %v > got[%d].Code = %v, want ascending", i-1, got[i-1].Code, i, got[i].Code)
		}
	}

	all, err := accountRepo.ListAll(ctx)
	if err != nil {
		t.Fatalf("accountRepo.ListAll(ctx) returned error: %v", err)
	}

	if len(all) < len(got) {
		t.Fatalf("len(all) = %v, want >= %v", len(all), len(got))
	}

	if diff := cmp.Diff(got, all[:len(got)], compareDecimal); diff != "" {
		t.Errorf("accountRepo.ListAll(ctx) returned unexpected difference (-want +got):\n%s", diff)
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	accounts := helpers.SeedAccounts(t, tx, 2)
	accountRepo := accountrepo.NewRepoPGS(tx)

	arg := domain.UpdateAccountParams{
		ID:    accounts[0].ID,
		Code:  randompkg.AccountCode(),
		Title: "Renamed",
		Type:  domain.Liability,
	}

	got, err := accountRepo.Update(ctx, arg)
	if err != nil {
		t.Fatalf("accountRepo.Update(ctx, %+v) returned error: %v", arg, err)
	}

	if got.Code != arg.Code || got.Title != arg.Title || got.Type != arg.Type {
		t.Errorf("accountRepo.Update(ctx, %+v) = %+v, want updated fields", arg, got)
	}

	if !got.Balance.Equal(accounts[0].Balance) {
		t.Errorf("got.Balance = %v, want %v", got.Balance, accounts[0].Balance)
	}

	arg.Code = accounts[1].Code

	_, err = accountRepo.Update(ctx, arg)
	if err != domain.ErrDuplicateCode {
		t.Errorf("accountRepo.Update(ctx, %+v) error = %v, want %v", arg, err, domain.ErrDuplicateCode)
	}
}

func TestSetBalance(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	account := helpers.SeedAccount(t, tx)
	accountRepo := accountrepo.NewRepoPGS(tx)

	balance := decimal.RequireFromString("-1234.50")

	got, err := accountRepo.SetBalance(ctx, account.ID, balance)
	if err != nil {
		t.Fatalf("accountRepo.SetBalance(ctx, %v, %v) returned error: %v", account.ID, balance, err)
	}

	if !got.Balance.Equal(balance) {
		t.Errorf("got.Balance = %v, want %v", got.Balance, balance)
	}

	if got.FormattedBalance != "-1,234.50 €" {
		t.Errorf("got.FormattedBalance = %q, want %q", got.FormattedBalance, "-1,234.50 €")
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	user := helpers.SeedUser(t, tx, domain.RoleMember)
	accounts := helpers.SeedAccounts(t, tx, 3)
	helpers.SeedTransaction(t, tx, user.Username, accounts[0].ID, accounts[1].ID, decimal.NewFromInt(10))

	accountRepo := accountrepo.NewRepoPGS(tx)

	if err := accountRepo.Delete(ctx, accounts[2].ID); err != nil {
		t.Fatalf("accountRepo.Delete(ctx, %v) returned error: %v", accounts[2].ID, err)
	}

	if _, err := accountRepo.Get(ctx, accounts[2].ID); err != domain.ErrAccountNotFound {
		t.Errorf("accountRepo.Get(ctx, %v) error = %v, want %v", accounts[2].ID, err, domain.ErrAccountNotFound)
	}

	if err := accountRepo.Delete(ctx, accounts[2].ID); err != domain.ErrAccountNotFound {
		t.Errorf("accountRepo.Delete(ctx, %v) error = %v, want %v", accounts[2].ID, err, domain.ErrAccountNotFound)
	}
}

func TestDeleteInUse(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	user := helpers.SeedUser(t, tx, domain.RoleMember)
	accounts := helpers.SeedAccounts(t, tx, 2)
	helpers.SeedTransaction(t, tx, user.Username, accounts[0].ID, accounts[1].ID, decimal.NewFromInt(10))

	accountRepo := accountrepo.NewRepoPGS(tx)

	if err := accountRepo.Delete(ctx, accounts[1].ID); err != domain.ErrAccountInUse {
		t.Errorf("accountRepo.Delete(ctx, %v) error = %v, want %v", accounts[1].ID, err, domain.ErrAccountInUse)
	}
}
