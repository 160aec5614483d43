// Package accountrepo manages repository layer of accounts.
//
// Every query takes the owner's user id and filters on it,
// so rows of other users can be neither read nor deleted.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/cbk-gemmy/finance-platform/internal/domain"
	"github.com/cbk-gemmy/finance-platform/pkg/dbpkg"
	"github.com/cbk-gemmy/finance-platform/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (id, user_id, name)
VALUES
    ($1, $2, $3)
RETURNING id, plaid_id, name, user_id
`

// Create inserts the account and then returns the stored row.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.ID, arg.UserID, arg.Name)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.PlaidID,
		&a.Name,
		&a.UserID,
	)

	if err != nil {
		l.Error().Err(err).Send()

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "accounts_pkey" {
			return domain.Account{}, domain.ErrAccountAlreadyExists
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, name
FROM accounts
WHERE user_id = $1 AND id = $2
`

// Get returns the account with the given id owned by userID.
func (r *RepoPGS) Get(ctx context.Context, userID, id string) (domain.AccountSummary, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, userID, id)

	var a domain.AccountSummary

	err := row.Scan(&a.ID, &a.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Str("account_id", id).Msg("account not found")
			return domain.AccountSummary{}, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return domain.AccountSummary{}, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT
	id, name
FROM accounts
WHERE user_id = $1
ORDER BY id
`

// List returns all accounts owned by userID in insertion order.
func (r *RepoPGS) List(ctx context.Context, userID string) ([]domain.AccountSummary, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, userID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.AccountSummary{}

	for rows.Next() {
		var a domain.AccountSummary
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const bulkDeleteQuery = `
DELETE FROM accounts
WHERE user_id = $1 AND id = ANY($2)
RETURNING id
`

// BulkDelete removes the accounts with the given ids owned by userID
// and returns the ids that were actually removed.
func (r *RepoPGS) BulkDelete(ctx context.Context, userID string, ids []string) ([]domain.DeletedAccount, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, bulkDeleteQuery, userID, pq.Array(ids))
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	deleted := []domain.DeletedAccount{}

	for rows.Next() {
		var d domain.DeletedAccount
		if err := rows.Scan(&d.ID); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		deleted = append(deleted, d)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return deleted, nil
}
