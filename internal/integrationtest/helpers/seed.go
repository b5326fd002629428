// Package helpers provides seeding and fixture helpers shared by tests.
package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/go-petr/ledger/internal/accountrepo"
	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/internal/journalrepo"
	"github.com/go-petr/ledger/internal/sessionrepo"
	"github.com/go-petr/ledger/internal/transactionrepo"
	"github.com/go-petr/ledger/internal/userrepo"
	"github.com/go-petr/ledger/pkg/dbpkg"
	"github.com/go-petr/ledger/pkg/passpkg"
	"github.com/go-petr/ledger/pkg/randompkg"
	"github.com/shopspring/decimal"
)

// SeedUser creates a random User with the given role.
func SeedUser(t *testing.T, db dbpkg.SQLInterface, role string) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(32))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(32)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
		Role:           role,
	}

	userRepo := userrepo.NewRepoPGS(db)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccount creates a random Account with zero balance.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		Code:  randompkg.AccountCode(),
		Title: randompkg.String(12),
		Type:  domain.AccountType(randompkg.AccountType()),
	}

	accountRepo := accountrepo.NewRepoPGS(db)

	account, err := accountRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedAccounts creates count random Accounts.
func SeedAccounts(t *testing.T, db dbpkg.SQLInterface, count int) []domain.Account {
	t.Helper()

	accounts := make([]domain.Account, count)

	for i := range accounts {
		accounts[i] = SeedAccount(t, db)
	}

	return accounts
}

// SeedTransaction inserts a Transaction row without touching the balances.
func SeedTransaction(t *testing.T, db dbpkg.SQLInterface, createdBy string, debitID, creditID int64, amount decimal.Decimal) domain.Transaction {
	t.Helper()

	arg := domain.CreateTransactionParams{
		Date:            time.Now().UTC().Truncate(24 * time.Hour),
		Description:     randompkg.String(20),
		DebitAccountID:  debitID,
		CreditAccountID: creditID,
		Amount:          amount,
		CreatedBy:       createdBy,
	}

	transactionRepo := transactionrepo.NewTxRepoPGS(db)

	transaction, err := transactionRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("transactionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return transaction
}

// SeedJournalEntry records the given Transaction in the journal.
func SeedJournalEntry(t *testing.T, db dbpkg.SQLInterface, transactionID int64, recordedBy string) domain.JournalEntry {
	t.Helper()

	journalRepo := journalrepo.NewRepoPGS(db)

	entry, err := journalRepo.Create(context.Background(), transactionID, recordedBy)
	if err != nil {
		t.Fatalf("journalRepo.Create(context.Background(), %v, %v) returned error: %v",
			transactionID, recordedBy, err)
	}

	return entry
}

// SeedSession stores the given session.
func SeedSession(t *testing.T, db dbpkg.SQLInterface, arg domain.CreateSessionParams) domain.Session {
	t.Helper()

	sessionRepo := sessionrepo.NewRepoPGS(db)

	session, err := sessionRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("sessionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return session
}
