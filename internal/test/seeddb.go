// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/cbk-gemmy/finance-platform/internal/accountrepo"
	"github.com/cbk-gemmy/finance-platform/internal/domain"
	"github.com/cbk-gemmy/finance-platform/internal/userrepo"
	"github.com/cbk-gemmy/finance-platform/pkg/dbpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/idpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/passpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/randompkg"
)

// SeedUser creates random User inside a test transaction.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(32))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(32)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		ID:             idpkg.New(),
		Username:       randompkg.Username(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
	}

	userRepo := userrepo.NewRepoPGS(tx)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccount creates an Account named name owned by userID inside a test transaction.
func SeedAccount(t *testing.T, tx dbpkg.SQLInterface, userID, name string) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewRepoPGS(tx)

	arg := domain.CreateAccountParams{
		ID:     idpkg.New(),
		UserID: userID,
		Name:   name,
	}

	account, err := accountRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedAccounts creates count randomly named Accounts owned by userID in insertion order.
func SeedAccounts(t *testing.T, tx dbpkg.SQLInterface, userID string, count int) []domain.Account {
	t.Helper()

	accounts := make([]domain.Account, count)

	for i := range accounts {
		accounts[i] = SeedAccount(t, tx, userID, randompkg.AccountName())
	}

	return accounts
}
