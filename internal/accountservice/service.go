// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cbk-gemmy/finance-platform/internal/domain"
	"github.com/cbk-gemmy/finance-platform/pkg/idpkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, userID, id string) (domain.AccountSummary, error)
	List(ctx context.Context, userID string) ([]domain.AccountSummary, error)
	BulkDelete(ctx context.Context, userID string, ids []string) ([]domain.DeletedAccount, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo  Repo
	newID func() string
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{
		repo:  ar,
		newID: idpkg.New,
	}
}

// Create creates an account named name for the given user.
// The id is always generated here, never taken from the caller.
func (s *Service) Create(ctx context.Context, userID, name string) (domain.Account, error) {
	arg := domain.CreateAccountParams{
		ID:     s.newID(),
		UserID: userID,
		Name:   name,
	}

	account, err := s.repo.Create(ctx, arg)
	if err != nil {
		return domain.Account{}, err
	}

	zerolog.Ctx(ctx).Info().Str("account_id", account.ID).Msg("account created")

	return account, nil
}

// Get returns the account with the given id if it belongs to userID.
func (s *Service) Get(ctx context.Context, userID, id string) (domain.AccountSummary, error) {
	return s.repo.Get(ctx, userID, id)
}

// List returns accounts that are owned by the given user.
func (s *Service) List(ctx context.Context, userID string) ([]domain.AccountSummary, error) {
	return s.repo.List(ctx, userID)
}

// BulkDelete deletes the given accounts of userID and returns the ids actually deleted.
// Ids that are unknown or owned by someone else are skipped without error.
func (s *Service) BulkDelete(ctx context.Context, userID string, ids []string) ([]domain.DeletedAccount, error) {
	if len(ids) == 0 {
		return []domain.DeletedAccount{}, nil
	}

	deleted, err := s.repo.BulkDelete(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int("requested", len(ids)).
		Int("deleted", len(deleted)).
		Msg("accounts deleted")

	return deleted, nil
}
