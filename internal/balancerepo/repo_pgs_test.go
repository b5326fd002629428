//go:build integration

package balancerepo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/go-petr/ledger/internal/balancerepo"
	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/internal/integrationtest"
	"github.com/go-petr/ledger/internal/integrationtest/helpers"
	"github.com/go-petr/ledger/internal/middleware"
	"github.com/go-petr/ledger/pkg/configpkg"
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

func TestTotals(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	user := helpers.SeedUser(t, tx, domain.RoleMember)
	a := helpers.SeedAccounts(t, tx, 3)

	helpers.SeedTransaction(t, tx, user.Username, a[0].ID, a[1].ID, decimal.RequireFromString("10.50"))
	helpers.SeedTransaction(t, tx, user.Username, a[0].ID, a[1].ID, decimal.RequireFromString("4.50"))
	helpers.SeedTransaction(t, tx, user.Username, a[1].ID, a[0].ID, decimal.RequireFromString("1"))

	totals, err := balancerepo.Totals(ctx, tx)
	if err != nil {
		t.Fatalf("balancerepo.Totals(ctx, tx) returned error: %v", err)
	}

	want := map[int64]domain.AccountTotals{
		a[0].ID: {Debits: decimal.NewFromInt(15), Credits: decimal.NewFromInt(1)},
		a[1].ID: {Debits: decimal.NewFromInt(1), Credits: decimal.NewFromInt(15)},
	}

	for id, w := range want {
		got, ok := totals[id]
		if !ok {
			t.Fatalf("totals[%v] missing", id)
		}

		if !got.Debits.Equal(w.Debits) || !got.Credits.Equal(w.Credits) {
			t.Errorf("totals[%v] = %+v, want %+v", id, got, w)
		}
	}

	if _, ok := totals[a[2].ID]; ok {
		t.Errorf("totals[%v] present, want absent for an account without transactions", a[2].ID)
	}
}

func TestSnapshot(t *testing.T) {
	db := integrationtest.SetupDB(t, dbDriver, dbSource)
	helpers.SeedAccounts(t, db, 3)

	balanceRepo := balancerepo.NewRepoPGS(db)

	accounts, totals, err := balanceRepo.Snapshot(ctx)
	if err != nil {
		t.Fatalf("balanceRepo.Snapshot(ctx) returned error: %v", err)
	}

	if len(accounts) < 3 {
		t.Fatalf("len(accounts) = %v, want >= 3", len(accounts))
	}

	for i := 1; i < len(accounts); i++ {
		if accounts[i-1].Code > accounts[i].Code {
			t.Errorf("accounts not ordered by code: %v before %v", accounts[i-1].Code, accounts[i].Code)
		}
	}

	if totals == nil {
		t.Error("totals = nil, want non-nil map")
	}
}
