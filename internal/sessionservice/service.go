// Package sessionservice manages business logic layer of sessions.
package sessionservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cbk-gemmy/finance-platform/internal/domain"
	"github.com/cbk-gemmy/finance-platform/pkg/configpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/errorspkg"
	"github.com/cbk-gemmy/finance-platform/pkg/tokenpkg"
)

// ErrNilTokenMaker is returned by New when no token maker is given.
var ErrNilTokenMaker = errors.New("token maker is nil")

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

// New returns session service struct to manage session business logic.
func New(sr Repo, config configpkg.Config, tm tokenpkg.Maker) (*Service, error) {
	if tm == nil {
		return nil, ErrNilTokenMaker
	}

	return &Service{
		repo:       sr,
		config:     config,
		tokenMaker: tm,
	}, nil
}

// Create issues an access token and a refresh token for arg.UserID
// and stores the refresh token as a new session.
func (s *Service) Create(ctx context.Context, arg domain.CreateSessionParams) (string, time.Time, domain.Session, error) {
	l := zerolog.Ctx(ctx)

	accessToken, accessPayload, err := s.tokenMaker.CreateToken(arg.UserID, s.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, domain.Session{}, errorspkg.ErrInternal
	}

	refreshToken, refreshPayload, err := s.tokenMaker.CreateToken(arg.UserID, s.config.RefreshTokenDuration)
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

// RenewAccessToken issues a new access token for a valid, unblocked refresh token session.
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
	case session.UserID != refreshPayload.UserID:
		err = domain.ErrInvalidUser
	case session.RefreshToken != refreshToken:
		err = domain.ErrMismatchedRefreshToken
	case time.Now().After(session.ExpiresAt):
		err = domain.ErrExpiredSession
	}

	if err != nil {
		l.Warn().Err(err).Str("session_id", session.ID.String()).Send()
		return "", time.Time{}, err
	}

	accessToken, accessPayload, err := s.tokenMaker.CreateToken(refreshPayload.UserID, s.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, errorspkg.ErrInternal
	}

	return accessToken, accessPayload.ExpiredAt, nil
}
