// Package journaldelivery manages delivery layer of the audit journal.
package journaldelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/pkg/errorspkg"
	"github.com/go-petr/ledger/pkg/web"
)

// Service provides service layer interface needed by journal delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package journaldelivery
type Service interface {
	Get(ctx context.Context, id int64) (domain.JournalEntry, error)
	List(ctx context.Context, pageSize, pageID int32) ([]domain.JournalEntry, error)
}

// Handler facilitates journal delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns journal handler.
func NewHandler(js Service) *Handler {
	return &Handler{service: js}
}

type entryData struct {
	Entry domain.JournalEntry `json:"entry"`
}

type entriesData struct {
	Entries []domain.JournalEntry `json:"entries"`
}

type getRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get a journal entry.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ValidationError(err))

		return
	}

	entry, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrJournalEntryNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: entryData{entry}})
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

// List handles http request to list journal entries in recording order.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ValidationError(err))

		return
	}

	entries, err := h.service.List(ctx, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: entriesData{entries}})
}
