// Package accounts persists user accounts. Two implementations share the
// Repository contract: PostgresRepository (pgx, $n placeholders) and
// SQLiteRepository (modernc sqlite, ? placeholders).
package accounts

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/models"
)

type Repository interface {
	// Create inserts the account and sets its ID. A duplicate username
	// rejected by the unique index yields common.ErrorAlreadyExists.
	Create(ctx context.Context, account *models.AccountRecord) (*models.AccountRecord, error)
	// GetUserByLogin returns common.ErrorNotFound when no row matches.
	GetUserByLogin(ctx context.Context, userName string) (*models.AccountRecord, error)
}
