package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUnsupportedFormat indicates an export format other than xlsx or csv.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// BalanceSheetTitle is the title of the exported balance sheet.
const BalanceSheetTitle = "Balance Comptable"

// BalanceFileName is the base name of the exported balance sheet file.
const BalanceFileName = "balance_comptable"

// BalanceExportFileName returns the attachment name of the balance sheet in the given format.
func BalanceExportFileName(format string) string {
	return BalanceFileName + "." + format
}

// BalanceHeader is the header row of the exported balance sheet.
var BalanceHeader = []string{
	"Compte",
	"Intitulé",
	"Solde début période",
	"Débit",
	"Crédit",
	"Solde fin période",
}

// AccountTotals sums the amounts of all transactions on each side of an account.
type AccountTotals struct {
	Debits  decimal.Decimal `json:"debits"`
	Credits decimal.Decimal `json:"credits"`
}

// BalanceRow is one account line of the balance sheet.
type BalanceRow struct {
	Code    string          `json:"code"`
	Title   string          `json:"title"`
	Opening decimal.Decimal `json:"opening"`
	Debits  decimal.Decimal `json:"debits"`
	Credits decimal.Decimal `json:"credits"`
	Closing decimal.Decimal `json:"closing"`
}

// ComputeBalances builds one row per account, in the order of accounts.
//
// Accounts missing from totals have no transactions. The opening balance is
// derived backwards from the current balance: Opening = Closing - (Credits - Debits).
func ComputeBalances(accounts []Account, totals map[int64]AccountTotals) []BalanceRow {
	rows := make([]BalanceRow, 0, len(accounts))

	for _, a := range accounts {
		t := totals[a.ID]

		rows = append(rows, BalanceRow{
			Code:    a.Code,
			Title:   a.Title,
			Opening: a.Balance.Sub(t.Credits.Sub(t.Debits)),
			Debits:  t.Debits,
			Credits: t.Credits,
			Closing: a.Balance,
		})
	}

	return rows
}

// Cells returns the row as spreadsheet cells matching BalanceHeader.
func (r BalanceRow) Cells() []any {
	return []any{r.Code, r.Title, r.Opening, r.Debits, r.Credits, r.Closing}
}
