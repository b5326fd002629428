// Package balancedelivery manages delivery layer of the balance sheet export.
package balancedelivery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/pkg/errorspkg"
	"github.com/go-petr/ledger/pkg/sheetpkg"
	"github.com/go-petr/ledger/pkg/web"
)

// Service provides service layer interface needed by balance delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package balancedelivery
type Service interface {
	Export(ctx context.Context, w io.Writer, format string) error
}

// Handler facilitates balance delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns balance handler.
func NewHandler(bs Service) *Handler {
	return &Handler{service: bs}
}

type exportRequest struct {
	Format string `form:"format"`
}

// Export handles http request to download the balance sheet as an attachment.
//
// The format query parameter selects xlsx (default) or csv.
func (h *Handler) Export(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req exportRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.ValidationError(err))

		return
	}

	if req.Format == "" {
		req.Format = sheetpkg.FormatXLSX
	}

	var buf bytes.Buffer

	if err := h.service.Export(ctx, &buf, req.Format); err != nil {
		if err == domain.ErrUnsupportedFormat {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", domain.BalanceExportFileName(req.Format)))
	gctx.Data(http.StatusOK, sheetpkg.ContentType(req.Format), buf.Bytes())
}
