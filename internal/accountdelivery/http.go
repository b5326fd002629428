// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/pkg/errorspkg"
	"github.com/go-petr/ledger/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context, pageSize, pageID int32) ([]domain.Account, error)
	Update(ctx context.Context, arg domain.UpdateAccountParams) (domain.Account, error)
	Delete(ctx context.Context, id int64) error
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

type accountData struct {
	Account domain.Account `json:"account"`
}

type accountsData struct {
	Accounts []domain.Account `json:"accounts"`
}

type createRequest struct {
	Code  string `json:"code" binding:"required,max=10"`
	Title string `json:"title" binding:"required,max=100"`
	Type  string `json:"type" binding:"required,accounttype"`
}

// Create handles http request to create account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ValidationError(err))

		return
	}

	arg := domain.CreateAccountParams{
		Code:  req.Code,
		Title: req.Title,
		Type:  domain.AccountType(req.Type),
	}

	createdAccount, err := h.service.Create(ctx, arg)
	if err != nil {
		switch err {
		case domain.ErrInvalidAccountType:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrDuplicateCode:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: accountData{createdAccount}})
}

type idRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ValidationError(err))

		return
	}

	acc, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{acc}})
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

// List handles http request to list accounts ordered by code.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ValidationError(err))

		return
	}

	accounts, err := h.service.List(ctx, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountsData{accounts}})
}

type updateRequest struct {
	Code  string `json:"code" binding:"required,max=10"`
	Title string `json:"title" binding:"required,max=100"`
	Type  string `json:"type" binding:"required,accounttype"`
}

// Update handles http request to change the code, title and type of an account.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ValidationError(err))

		return
	}

	var req updateRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ValidationError(err))

		return
	}

	arg := domain.UpdateAccountParams{
		ID:    uri.ID,
		Code:  req.Code,
		Title: req.Title,
		Type:  domain.AccountType(req.Type),
	}

	acc, err := h.service.Update(ctx, arg)
	if err != nil {
		switch err {
		case domain.ErrInvalidAccountType:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrDuplicateCode:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{acc}})
}

// Delete handles http request to delete an account no transaction references.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ValidationError(err))

		return
	}

	if err := h.service.Delete(ctx, req.ID); err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountInUse:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusNoContent)
}
