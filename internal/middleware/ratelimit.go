package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/ledger/pkg/errorspkg"
	"github.com/go-petr/ledger/pkg/web"
	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// ErrTooManyRequests indicates that the client exhausted its rate limit.
var ErrTooManyRequests = errors.New("too many requests")

// NewLimiter returns an in memory limiter for a formatted rate such as "300-M".
func NewLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}

	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit limits the number of requests per client ip.
func RateLimit(lim *limiter.Limiter) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		l := zerolog.Ctx(gctx.Request.Context())
		ip := gctx.ClientIP()

		lctx, err := lim.Get(gctx.Request.Context(), ip)
		if err != nil {
			l.Error().Err(err).Str("ip", ip).Send()
			gctx.AbortWithStatusJSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

			return
		}

		if lctx.Reached {
			l.Warn().Str("ip", ip).Int64("limit", lctx.Limit).Send()
			gctx.AbortWithStatusJSON(http.StatusTooManyRequests, web.Error(ErrTooManyRequests))

			return
		}

		gctx.Next()
	}
}
