// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cbk-gemmy/finance-platform/internal/domain"
	"github.com/cbk-gemmy/finance-platform/pkg/errorspkg"
	"github.com/cbk-gemmy/finance-platform/pkg/idpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/passpkg"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, username string) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo  Repo
	newID func() string
}

// New returns user service struct to manage user business logic.
func New(ur Repo) *Service {
	return &Service{
		repo:  ur,
		newID: idpkg.New,
	}
}

// NewUserWithoutPassword returns user with removed sensitive data.
func NewUserWithoutPassword(u domain.User) domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Create creates and returns user.
func (s *Service) Create(ctx context.Context, username, password, fullname, email string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.UserWithoutPassword{}, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		ID:             s.newID(),
		Username:       username,
		HashedPassword: hashedPassword,
		FullName:       fullname,
		Email:          email,
	}

	gotUser, err := s.repo.Create(ctx, arg)
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	l.Info().Str("user_id", gotUser.ID).Msg("user created")

	return NewUserWithoutPassword(gotUser), nil
}

// CheckPassword checks if the password is valid for the given username.
func (s *Service) CheckPassword(ctx context.Context, username, pass string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	gotUser, err := s.repo.Get(ctx, username)
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	if err = passpkg.Check(pass, gotUser.HashedPassword); err != nil {
		l.Warn().Err(err).Send()
		return domain.UserWithoutPassword{}, domain.ErrWrongPassword
	}

	return NewUserWithoutPassword(gotUser), nil
}
