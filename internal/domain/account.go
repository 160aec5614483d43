// Package domain provides definitions of all entities.
package domain

import "errors"

var (
	// ErrAccountNotFound indicates that the account is not found or is owned by another user.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists indicates an id collision on insert.
	ErrAccountAlreadyExists = errors.New("account already exists")
	// ErrUnauthorized indicates that the request carries no authenticated identity.
	ErrUnauthorized = errors.New("unauthorized")
)

// Account is a user's financial account, such as a checking account or a credit card.
type Account struct {
	ID      string  `json:"id"`
	PlaidID *string `json:"plaidId"`
	Name    string  `json:"name"`
	UserID  string  `json:"userId"`
}

// AccountSummary is the projection of Account returned by read operations.
type AccountSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DeletedAccount identifies an account removed by a bulk delete.
type DeletedAccount struct {
	ID string `json:"id"`
}

// CreateAccountParams is the input data to insert an account.
type CreateAccountParams struct {
	ID     string
	UserID string
	Name   string
}
