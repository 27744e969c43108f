package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE Postgres reports for a duplicate key.
const pgUniqueViolation = "23505"

// PostgresRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository returns a new PostgresRepository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the account and fills in the id returned by Postgres. A
// duplicate username yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, account *models.AccountRecord) (*models.AccountRecord, error) {

	query :=
		`INSERT INTO accounts (username, password_hash, salt)
         VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.UserName, account.PasswordHash, account.Salt).Scan(&account.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

// GetUserByLogin returns the oldest account with the given username, or
// common.ErrorNotFound.
func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.AccountRecord, error) {
	query :=
		`SELECT id, username, password_hash, salt FROM accounts
		 WHERE username = $1
		 ORDER BY id LIMIT 1
		 `

	account := &models.AccountRecord{}
	err := r.db.QueryRowContext(ctx, query, userName).Scan(&account.ID, &account.UserName, &account.PasswordHash, &account.Salt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}
