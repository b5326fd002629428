// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/internal/middleware"
	"github.com/go-petr/ledger/pkg/errorspkg"
	"github.com/go-petr/ledger/pkg/tokenpkg"
	"github.com/go-petr/ledger/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Post(ctx context.Context, creator string, arg domain.CreateTransactionParams) (domain.PostResult, error)
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	List(ctx context.Context, arg domain.ListTransactionsParams, pageSize, pageID int32) ([]domain.Transaction, error)
	Delete(ctx context.Context, id int64, canDelete domain.Capability) error
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type postData struct {
	Result domain.PostResult `json:"result"`
}

type transactionData struct {
	Transaction domain.Transaction `json:"transaction"`
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type createRequest struct {
	Date            string          `json:"date" binding:"required,datetime=2006-01-02"`
	Description     string          `json:"description" binding:"max=255"`
	DebitAccountID  int64           `json:"debit_account_id" binding:"required,min=1"`
	CreditAccountID int64           `json:"credit_account_id" binding:"required,min=1"`
	Amount          decimal.Decimal `json:"amount"`
}

// Create handles http request to post a transaction between two accounts.
//
// The authenticated user is recorded as the creator.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ValidationError(err))

		return
	}

	date, err := time.Parse(domain.DateLayout, req.Date)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	arg := domain.CreateTransactionParams{
		Date:            date,
		Description:     req.Description,
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		Amount:          req.Amount,
	}

	result, err := h.service.Post(ctx, authPayload.Username, arg)
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount, domain.ErrSameAccount:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: postData{result}})
}

type idRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get a transaction.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ValidationError(err))

		return
	}

	tr, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrTransactionNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionData{tr}})
}

type listRequest struct {
	Date            string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	DebitAccountID  int64  `form:"debit_account" binding:"omitempty,min=1"`
	CreditAccountID int64  `form:"credit_account" binding:"omitempty,min=1"`
	PageID          int32  `form:"page_id" binding:"required,min=1"`
	PageSize        int32  `form:"page_size" binding:"required,min=1,max=100"`
}

// List handles http request to list transactions, optionally filtered by
// date, debit account and credit account.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ValidationError(err))

		return
	}

	arg := domain.ListTransactionsParams{
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
	}

	if req.Date != "" {
		date, err := time.Parse(domain.DateLayout, req.Date)
		if err != nil {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		arg.Date = date
	}

	transactions, err := h.service.List(ctx, arg, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionsData{transactions}})
}

// Delete handles http request to delete a transaction. Only admins may do it.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ValidationError(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	err := h.service.Delete(ctx, req.ID, domain.IsAdmin(authPayload.Role))
	if err != nil {
		switch err {
		case domain.ErrUnauthorized:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		case domain.ErrTransactionNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusNoContent)
}
