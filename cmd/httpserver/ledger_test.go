//go:build integration

package httpserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/ledger/cmd/httpserver"
	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/internal/integrationtest"
	"github.com/go-petr/ledger/internal/integrationtest/helpers"
	"github.com/go-petr/ledger/internal/middleware"
	"github.com/go-petr/ledger/pkg/randompkg"
	"github.com/go-petr/ledger/pkg/web"
)

func send(t *testing.T, server *httpserver.Server, method, url, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer

	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)

	if token != "" {
		req.Header.Set(middleware.AuthHeaderKey, middleware.AuthTypeBearer+" "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) (T, web.Response) {
	t.Helper()

	var data T

	res := web.Response{Data: &data}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

	return data, res
}

type accountData struct {
	Account domain.Account `json:"account"`
}

func TestLedgerAPI(t *testing.T) {
	server := integrationtest.SetupServer(t)

	// Sign up a member through the public endpoint.
	username := randompkg.Owner()
	signup := send(t, server, http.MethodPost, "/users", "", map[string]string{
		"username": username,
		"password": randompkg.String(10),
		"fullname": randompkg.Owner(),
		"email":    randompkg.Email(),
	})
	require.Equal(t, http.StatusOK, signup.Code)

	_, signupRes := decode[struct {
		User domain.UserWihtoutPassword `json:"user"`
	}](t, signup)
	memberToken := signupRes.AccessToken
	require.NotEmpty(t, memberToken)

	admin := helpers.SeedUser(t, server.DB, domain.RoleAdmin)
	adminToken, _, err := server.TokenMaker.CreateToken(admin.Username, admin.Role, server.Config.AccessTokenDuration)
	require.NoError(t, err)

	createAccount := func(code, title string, accType domain.AccountType) domain.Account {
		rec := send(t, server, http.MethodPost, "/api/accounts", memberToken, map[string]any{
			"code":  code,
			"title": title,
			"type":  accType,
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		data, _ := decode[accountData](t, rec)
		require.True(t, data.Account.Balance.IsZero())

		return data.Account
	}

	cashCode := "5" + randompkg.AccountCode()
	salesCode := "7" + randompkg.AccountCode()

	cash := createAccount(cashCode, "Caisse", domain.Asset)
	sales := createAccount(salesCode, "Ventes", domain.Revenue)

	t.Run("DuplicateCode", func(t *testing.T) {
		rec := send(t, server, http.MethodPost, "/api/accounts", memberToken, map[string]any{
			"code":  cashCode,
			"title": "Other",
			"type":  domain.Asset,
		})
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	// Post a transaction.
	rec := send(t, server, http.MethodPost, "/api/transactions", memberToken, map[string]any{
		"date":              "2024-03-15",
		"description":       "Cash sale",
		"debit_account_id":  cash.ID,
		"credit_account_id": sales.ID,
		"amount":            "100.00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	posted, _ := decode[struct {
		Result domain.PostResult `json:"result"`
	}](t, rec)

	result := posted.Result
	require.True(t, result.DebitAccount.Balance.Equal(decimal.RequireFromString("-100")))
	require.True(t, result.CreditAccount.Balance.Equal(decimal.RequireFromString("100")))
	require.Equal(t, username, result.Transaction.CreatedBy)
	require.Equal(t, username, result.JournalEntry.RecordedBy)
	require.Equal(t, result.Transaction.ID, result.JournalEntry.TransactionID)
	require.Equal(t, "Caisse", result.Transaction.DebitAccountTitle)
	require.Equal(t, "Ventes", result.Transaction.CreditAccountTitle)

	balanceOf := func(id int64) decimal.Decimal {
		rec := send(t, server, http.MethodGet, fmt.Sprintf("/api/accounts/%d", id), memberToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		data, _ := decode[accountData](t, rec)

		return data.Account.Balance
	}

	t.Run("RejectedPostingsLeaveBalancesUntouched", func(t *testing.T) {
		bodies := []map[string]any{
			{"date": "2024-03-15", "debit_account_id": cash.ID, "credit_account_id": cash.ID, "amount": "10"},
			{"date": "2024-03-15", "debit_account_id": cash.ID, "credit_account_id": sales.ID, "amount": "0"},
			{"date": "2024-03-15", "debit_account_id": cash.ID, "credit_account_id": sales.ID, "amount": "-5"},
			{"date": "2024-03-15", "debit_account_id": cash.ID, "credit_account_id": sales.ID, "amount": "1.005"},
		}

		for _, body := range bodies {
			rec := send(t, server, http.MethodPost, "/api/transactions", memberToken, body)
			require.Equal(t, http.StatusBadRequest, rec.Code, "body %v", body)
		}

		rec := send(t, server, http.MethodPost, "/api/transactions", memberToken, map[string]any{
			"date": "2024-03-15", "debit_account_id": cash.ID, "credit_account_id": 999_999_999, "amount": "10",
		})
		require.Equal(t, http.StatusNotFound, rec.Code)

		require.True(t, balanceOf(cash.ID).Equal(decimal.RequireFromString("-100")))
		require.True(t, balanceOf(sales.ID).Equal(decimal.RequireFromString("100")))
	})

	t.Run("ListFilters", func(t *testing.T) {
		url := fmt.Sprintf("/api/transactions?debit_account=%d&date=2024-03-15&page_id=1&page_size=10", cash.ID)
		rec := send(t, server, http.MethodGet, url, memberToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		data, _ := decode[struct {
			Transactions []domain.Transaction `json:"transactions"`
		}](t, rec)
		require.Len(t, data.Transactions, 1)
		require.Equal(t, result.Transaction.ID, data.Transactions[0].ID)
	})

	t.Run("ExportCSV", func(t *testing.T) {
		rec := send(t, server, http.MethodGet, "/api/export-balance?format=csv", memberToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "attachment; filename=balance_comptable.csv", rec.Header().Get("Content-Disposition"))

		body := rec.Body.String()
		require.True(t, strings.HasPrefix(body, strings.Join(domain.BalanceHeader, ",")+"\n"))
		require.Contains(t, body, cashCode+",Caisse,0.00,100.00,0.00,-100.00\n")
		require.Contains(t, body, salesCode+",Ventes,0.00,0.00,100.00,100.00\n")

		again := send(t, server, http.MethodGet, "/api/export-balance?format=csv", memberToken, nil)
		require.Equal(t, body, again.Body.String())
	})

	t.Run("ExportUnsupportedFormat", func(t *testing.T) {
		rec := send(t, server, http.MethodGet, "/api/export-balance?format=pdf", memberToken, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("DeleteReferencedAccount", func(t *testing.T) {
		rec := send(t, server, http.MethodDelete, fmt.Sprintf("/api/accounts/%d", cash.ID), memberToken, nil)
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("DeleteTransaction", func(t *testing.T) {
		url := fmt.Sprintf("/api/transactions/%d", result.Transaction.ID)

		rec := send(t, server, http.MethodDelete, url, memberToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)

		rec = send(t, server, http.MethodDelete, url, adminToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = send(t, server, http.MethodGet, url, memberToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		rec = send(t, server, http.MethodGet, fmt.Sprintf("/api/journal/%d", result.JournalEntry.ID), memberToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		// Deleting does not reverse the posting.
		require.True(t, balanceOf(cash.ID).Equal(decimal.RequireFromString("-100")))
		require.True(t, balanceOf(sales.ID).Equal(decimal.RequireFromString("100")))
	})
}
