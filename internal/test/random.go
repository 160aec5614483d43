package test

import (
	"github.com/cbk-gemmy/finance-platform/internal/domain"
	"github.com/cbk-gemmy/finance-platform/pkg/idpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/randompkg"
)

// RandomAccount returns random account owned by the given user.
func RandomAccount(userID string) domain.Account {
	plaidID := randompkg.PlaidID()

	return domain.Account{
		ID:      idpkg.New(),
		PlaidID: &plaidID,
		Name:    randompkg.AccountName(),
		UserID:  userID,
	}
}

// Summaries projects accounts to the shape returned by read operations.
func Summaries(accounts []domain.Account) []domain.AccountSummary {
	out := make([]domain.AccountSummary, len(accounts))

	for i, a := range accounts {
		out[i] = domain.AccountSummary{ID: a.ID, Name: a.Name}
	}

	return out
}
