package helpers

import (
	"time"

	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/pkg/randompkg"
)

// RandomAccount returns a random Account that is not stored anywhere.
func RandomAccount() domain.Account {
	balance := randompkg.MoneyAmountBetween(-10_000, 10_000)

	return domain.Account{
		ID:               randompkg.IntBetween(1, 1000),
		Code:             randompkg.AccountCode(),
		Title:            randompkg.String(12),
		Type:             domain.AccountType(randompkg.AccountType()),
		Balance:          balance,
		FormattedBalance: domain.FormatMoney(balance),
		CreatedAt:        time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomTransaction returns a random Transaction between the given accounts.
func RandomTransaction(debit, credit domain.Account, createdBy string) domain.Transaction {
	return domain.Transaction{
		ID:                 randompkg.IntBetween(1, 1000),
		Date:               time.Now().UTC().Truncate(24 * time.Hour),
		Description:        randompkg.String(20),
		DebitAccountID:     debit.ID,
		DebitAccountTitle:  debit.Title,
		CreditAccountID:    credit.ID,
		CreditAccountTitle: credit.Title,
		Amount:             randompkg.MoneyAmountBetween(1, 1000),
		CreatedBy:          createdBy,
		CreatedAt:          time.Now().Truncate(time.Second).UTC(),
	}
}
