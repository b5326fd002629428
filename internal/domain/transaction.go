package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage layout of a transaction date.
const DateLayout = "2006-01-02"

// AmountPlaces is the number of fraction digits an amount may carry.
const AmountPlaces = 2

// MaxAmount is the largest value a numeric(15,2) column holds.
var MaxAmount = decimal.RequireFromString("9999999999999.99")

var (
	// ErrInvalidAmount indicates an amount that is not strictly positive, too precise or too large.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrSameAccount indicates that the debit and credit accounts are the same.
	ErrSameAccount = errors.New("debit and credit accounts must differ")
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrUnauthorized indicates that the caller lacks the privilege for the operation.
	ErrUnauthorized = errors.New("operation requires admin privilege")
)

// Transaction moves amount from the debit account to the credit account.
type Transaction struct {
	ID                 int64           `json:"id"`
	Date               time.Time       `json:"date"`
	Description        string          `json:"description"`
	DebitAccountID     int64           `json:"debit_account_id"`
	DebitAccountTitle  string          `json:"debit_account_title"`
	CreditAccountID    int64           `json:"credit_account_id"`
	CreditAccountTitle string          `json:"credit_account_title"`
	Amount             decimal.Decimal `json:"amount"` // must be positive
	CreatedBy          string          `json:"created_by"`
	CreatedAt          time.Time       `json:"created_at"`
}

// MarshalJSON renders the amount with exactly two decimals.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type transaction Transaction

	return json.Marshal(struct {
		transaction
		Amount string `json:"amount"`
	}{transaction(t), t.Amount.StringFixed(AmountPlaces)})
}

// CreateTransactionParams is the input data for posting a transaction.
type CreateTransactionParams struct {
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	DebitAccountID  int64           `json:"debit_account_id"`
	CreditAccountID int64           `json:"credit_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	CreatedBy       string          `json:"created_by"`
}

// ListTransactionsParams filters and pages transactions.
//
// Zero values disable the matching filter.
type ListTransactionsParams struct {
	Date            time.Time `json:"date"`
	DebitAccountID  int64     `json:"debit_account_id"`
	CreditAccountID int64     `json:"credit_account_id"`
	Limit           int32     `json:"limit"`
	Offset          int32     `json:"offset"`
}

// PostResult is the result of posting a transaction.
type PostResult struct {
	Transaction   Transaction  `json:"transaction"`
	DebitAccount  Account      `json:"debit_account"`
	CreditAccount Account      `json:"credit_account"`
	JournalEntry  JournalEntry `json:"journal_entry"`
}

// ValidateTransaction checks the posting rules before any balance is touched.
func ValidateTransaction(arg CreateTransactionParams) error {
	if !arg.Amount.IsPositive() || !arg.Amount.Equal(arg.Amount.Round(AmountPlaces)) || arg.Amount.GreaterThan(MaxAmount) {
		return ErrInvalidAmount
	}

	if arg.DebitAccountID == arg.CreditAccountID {
		return ErrSameAccount
	}

	return nil
}

// Capability reports whether the caller holds a privilege.
type Capability func() bool

// Allow is the Capability of a caller allowed to perform the operation.
func Allow() bool { return true }

// Deny is the Capability of a caller not allowed to perform the operation.
func Deny() bool { return false }

// IsAdmin returns the admin Capability of a caller with the given role.
func IsAdmin(role string) Capability {
	return func() bool { return role == RoleAdmin }
}
