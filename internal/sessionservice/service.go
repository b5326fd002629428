// Package sessionservice manages business logic layer of sessions.
package sessionservice

import (
	"context"
	"time"

	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/pkg/configpkg"
	"github.com/go-petr/ledger/pkg/errorspkg"
	"github.com/go-petr/ledger/pkg/tokenpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by session service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package sessionservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateSessionParams) (domain.Session, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Session, error)
}

// Service facilitates session service layer logic.
type Service struct {
	repo       Repo
	config     configpkg.Config
	tokenMaker tokenpkg.Maker
}

// New returns session service struct to manage sessions and tokens.
func New(repo Repo, config configpkg.Config, tokenMaker tokenpkg.Maker) (*Service, error) {
	return &Service{
		repo:       repo,
		config:     config,
		tokenMaker: tokenMaker,
	}, nil
}

// Create issues an access token and a refresh token for arg.Username and
// stores the refresh token as a new session.
//
// Both tokens carry the role of the user.
func (s *Service) Create(ctx context.Context, arg domain.CreateSessionParams, role string) (string, time.Time, domain.Session, error) {
	l := zerolog.Ctx(ctx)

	accessToken, accessPayload, err := s.tokenMaker.CreateToken(arg.Username, role, s.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, domain.Session{}, errorspkg.ErrInternal
	}

	refreshToken, refreshPayload, err := s.tokenMaker.CreateToken(arg.Username, role, s.config.RefreshTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, domain.Session{}, errorspkg.ErrInternal
	}

	arg.ID = refreshPayload.ID
	arg.RefreshToken = refreshToken
	arg.ExpiresAt = refreshPayload.ExpiredAt

	session, err := s.repo.Create(ctx, arg)
	if err != nil {
		return "", time.Time{}, domain.Session{}, err
	}

	return accessToken, accessPayload.ExpiredAt, session, nil
}

// RenewAccessToken issues a new access token for a valid refresh token.
func (s *Service) RenewAccessToken(ctx context.Context, refreshToken string) (string, time.Time, error) {
	l := zerolog.Ctx(ctx)

	refreshPayload, err := s.tokenMaker.VerifyToken(refreshToken)
	if err != nil {
		l.Info().Err(err).Send()
		return "", time.Time{}, err
	}

	session, err := s.repo.Get(ctx, refreshPayload.ID)
	if err != nil {
		return "", time.Time{}, err
	}

	switch {
	case session.IsBlocked:
		err = domain.ErrBlockedSession
	case session.Username != refreshPayload.Username:
		err = domain.ErrInvalidUser
	case session.RefreshToken != refreshToken:
		err = domain.ErrMismatchedRefreshToken
	case time.Now().After(session.ExpiresAt):
		err = domain.ErrExpiredSession
	}

	if err != nil {
		l.Warn().Err(err).Stringer("session_id", refreshPayload.ID).Send()
		return "", time.Time{}, err
	}

	accessToken, accessPayload, err := s.tokenMaker.CreateToken(refreshPayload.Username, refreshPayload.Role, s.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, errorspkg.ErrInternal
	}

	return accessToken, accessPayload.ExpiredAt, nil
}
