// Package middleware provides gin middlewares shared by all routes.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/ledger/pkg/tokenpkg"
	"github.com/go-petr/ledger/pkg/web"
	"github.com/rs/zerolog"
)

const (
	// AuthHeaderKey is the request header carrying the access token.
	AuthHeaderKey = "authorization"
	// AuthTypeBearer is the only supported authorization type.
	AuthTypeBearer = "bearer"
	// AuthPayloadKey is the gin context key of the verified *tokenpkg.Payload.
	AuthPayloadKey = "authorization_payload"
)

var (
	// ErrAuthHeaderNotFound indicates a request without the authorization header.
	ErrAuthHeaderNotFound = errors.New("authorization header is not provided")
	// ErrBadAuthHeaderFormat indicates an authorization header that is not "<type> <token>".
	ErrBadAuthHeaderFormat = errors.New("invalid authorization header format")
	// ErrUnsupportedAuthType indicates an authorization type other than bearer.
	ErrUnsupportedAuthType = errors.New("unsupported authorization type")
)

// AddAuthorization creates an access token and sets it as the authorization header of r.
func AddAuthorization(r *http.Request, tokenMaker tokenpkg.Maker, authType, username, role string, duration time.Duration) error {
	token, _, err := tokenMaker.CreateToken(username, role, duration)
	if err != nil {
		return err
	}

	r.Header.Set(AuthHeaderKey, fmt.Sprintf("%s %s", authType, token))

	return nil
}

// AuthMiddleware verifies the bearer token and stores its payload under AuthPayloadKey.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		l := zerolog.Ctx(gctx.Request.Context())

		authHeader := gctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			l.Info().Err(ErrAuthHeaderNotFound).Send()
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrAuthHeaderNotFound))

			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			l.Info().Err(ErrBadAuthHeaderFormat).Send()
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrBadAuthHeaderFormat))

			return
		}

		if strings.ToLower(fields[0]) != AuthTypeBearer {
			l.Info().Err(ErrUnsupportedAuthType).Str("type", fields[0]).Send()
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrUnsupportedAuthType))

			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			l.Info().Err(err).Send()
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		gctx.Set(AuthPayloadKey, payload)
		gctx.Next()
	}
}
