package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts the account and reads back the generated id. Anything but
// exactly one inserted row is reported as an error.
func (r *SQLiteRepository) Create(ctx context.Context, account *models.AccountRecord) (*models.AccountRecord, error) {
	query := `INSERT INTO accounts (username, password_hash, salt) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, account.UserName, account.PasswordHash, account.Salt)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	n, err := dbx.RowsAffected(res)
	if err != nil {
		return nil, err
	}
	if n != 1 {
		return nil, fmt.Errorf("wrong rows affected count: %d", n)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id error: %w", err)
	}
	account.ID = id
	return account, nil
}

// GetUserByLogin returns the oldest account with the given username.
func (r *SQLiteRepository) GetUserByLogin(ctx context.Context, userName string) (*models.AccountRecord, error) {
	query := `SELECT id, username, password_hash, salt FROM accounts WHERE username = ? ORDER BY id LIMIT 1`

	account := &models.AccountRecord{}
	err := r.db.QueryRowContext(ctx, query, userName).
		Scan(&account.ID, &account.UserName, &account.PasswordHash, &account.Salt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

// isSQLiteUniqueViolation reports a UNIQUE constraint failure, whether or not
// the connection returns extended result codes.
func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(sqliteErr.Error(), "UNIQUE")
	}
	return false
}
