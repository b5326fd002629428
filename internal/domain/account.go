// Package domain provides defenitions of all entities.
package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateCode indicates that an account with the given code already exists.
	ErrDuplicateCode = errors.New("account code already exists")
	// ErrAccountInUse indicates that transactions still reference the account.
	ErrAccountInUse = errors.New("account is referenced by transactions")
	// ErrInvalidAccountType indicates an account type outside of the chart of accounts.
	ErrInvalidAccountType = errors.New("invalid account type")
)

// AccountType classifies an account in the chart of accounts.
type AccountType string

// Supported account types.
const (
	Asset     AccountType = "Asset"
	Liability AccountType = "Liability"
	Revenue   AccountType = "Revenue"
	Expense   AccountType = "Expense"
)

// AccountTypes holds all the supported account types.
var AccountTypes = []AccountType{Asset, Liability, Revenue, Expense}

// IsSupportedAccountType returns true if the account type is supported.
func IsSupportedAccountType(t string) bool {
	for _, at := range AccountTypes {
		if string(at) == t {
			return true
		}
	}

	return false
}

// Account holds the running balance of a ledger account.
type Account struct {
	ID               int64           `json:"id"`
	Code             string          `json:"code"`
	Title            string          `json:"title"`
	Type             AccountType     `json:"type"`
	Balance          decimal.Decimal `json:"balance"`
	FormattedBalance string          `json:"formatted_balance"`
	CreatedAt        time.Time       `json:"created_at"`
}

// MarshalJSON renders the balance with exactly two decimals.
func (a Account) MarshalJSON() ([]byte, error) {
	type account Account

	return json.Marshal(struct {
		account
		Balance string `json:"balance"`
	}{account(a), a.Balance.StringFixed(AmountPlaces)})
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	Code  string      `json:"code"`
	Title string      `json:"title"`
	Type  AccountType `json:"type"`
}

// UpdateAccountParams is the input data to update an account.
//
// The balance is not part of it: only posting transactions changes a balance.
type UpdateAccountParams struct {
	ID    int64       `json:"id"`
	Code  string      `json:"code"`
	Title string      `json:"title"`
	Type  AccountType `json:"type"`
}

// ApplyDebit decreases the balance by amount and returns the new balance.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	a.Balance = a.Balance.Sub(amount)
	a.FormattedBalance = FormatMoney(a.Balance)

	return a.Balance
}

// ApplyCredit increases the balance by amount and returns the new balance.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	a.Balance = a.Balance.Add(amount)
	a.FormattedBalance = FormatMoney(a.Balance)

	return a.Balance
}

// FormatMoney renders d with two decimals, comma thousands separators and the euro sign.
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var sb strings.Builder

	if d.IsNegative() {
		sb.WriteByte('-')
	}

	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}

		sb.WriteRune(c)
	}

	sb.WriteString(frac)
	sb.WriteString(" €")

	return sb.String()
}
