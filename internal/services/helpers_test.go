package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/contactbook/internal/config"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/models"
	"github.com/dmitrijs2005/contactbook/internal/repositories/accounts"
	"github.com/dmitrijs2005/contactbook/internal/repositories/contacts"
	"github.com/dmitrijs2005/contactbook/internal/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func newTestLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTestDB returns a migrated in-memory SQLite database.
func newTestDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	ctx := context.Background()

	db, err := repomanager.OpenDB(ctx, repomanager.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := repomanager.New(repomanager.DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(ctx, db))
	return db, m
}

func newTestCredentialService(db *sql.DB, m repomanager.RepositoryManager) *CredentialService {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return NewCredentialService(db, m, cfg, newTestLogger())
}

func register(t *testing.T, svc *CredentialService, username, password string) models.Account {
	t.Helper()
	acc, err := svc.Register(context.Background(), username, password)
	require.NoError(t, err)
	require.NotNil(t, acc)
	return *acc
}

// fakeManager vends fixed repositories regardless of the handle.
type fakeManager struct {
	accounts accounts.Repository
	contacts contacts.Repository
}

func (f *fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeManager) Accounts(dbx.DBTX) accounts.Repository        { return f.accounts }
func (f *fakeManager) Contacts(dbx.DBTX) contacts.Repository        { return f.contacts }

type fakeAccountsRepo struct {
	createOut *models.AccountRecord
	createErr error

	getOut *models.AccountRecord
	getErr error

	created int
}

func (f *fakeAccountsRepo) Create(ctx context.Context, a *models.AccountRecord) (*models.AccountRecord, error) {
	f.created++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	a.ID = 1
	return a, nil
}

func (f *fakeAccountsRepo) GetUserByLogin(ctx context.Context, userName string) (*models.AccountRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeContactsRepo struct {
	err      error
	affected int64
	list     []models.Contact
}

func (f *fakeContactsRepo) Create(ctx context.Context, c *models.Contact) (int64, error) {
	return 1, f.err
}

func (f *fakeContactsRepo) ListByOwner(ctx context.Context, ownerID int64) ([]models.Contact, error) {
	return f.list, f.err
}

func (f *fakeContactsRepo) Update(ctx context.Context, c *models.Contact) (int64, error) {
	return f.affected, f.err
}

func (f *fakeContactsRepo) Delete(ctx context.Context, ownerID, id int64) (int64, error) {
	return f.affected, f.err
}
