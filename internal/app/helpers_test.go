package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/config"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/models"
	"github.com/dmitrijs2005/contactbook/internal/repositories/repomanager"
	"github.com/dmitrijs2005/contactbook/internal/services"
	"github.com/stretchr/testify/require"
)

// ------------ helpers ------------

func newTestLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDSN = ":memory:"
	return cfg
}

// newTestApp wires an App over a migrated in-memory database. Input lines
// are joined with newlines; passwords are read from the same stream.
func newTestApp(t *testing.T, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	db, err := repomanager.OpenDB(ctx, repomanager.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := repomanager.New(repomanager.DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(ctx, db))

	stubTerminal(t, false, nil, errors.New("terminal not available"))

	out := &bytes.Buffer{}
	a := newApp(testConfig(), newTestLogger(), db, m, strings.NewReader(strings.Join(lines, "\n")+"\n"), out)
	return a, out
}

// feed replaces the remaining input of a.
func feed(a *App, lines ...string) {
	a.reader = rdr(strings.Join(lines, "\n") + "\n")
}

type fakeCredentials struct {
	registerErr error
	loginAcc    *models.Account
	loginErr    error
	calls       int
}

func (f *fakeCredentials) Register(ctx context.Context, username, password string) (*models.Account, error) {
	f.calls++
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.Account{ID: 1, UserName: username}, nil
}

func (f *fakeCredentials) Login(ctx context.Context, username, password string) (*models.Account, error) {
	f.calls++
	return f.loginAcc, f.loginErr
}

type fakeBackup struct {
	enabled bool
	key     string
	err     error
}

func (f *fakeBackup) Enabled() bool { return f.enabled }

func (f *fakeBackup) Export(ctx context.Context, store services.ContactReader) (string, error) {
	return f.key, f.err
}

type failingStore struct {
	account models.Account
}

func (s *failingStore) Account() models.Account { return s.account }
func (s *failingStore) Create(context.Context, models.ContactDetails) (int64, error) {
	return 0, errStore()
}
func (s *failingStore) ReadAll(context.Context) ([]models.Contact, error) { return nil, errStore() }
func (s *failingStore) Update(context.Context, int64, models.ContactDetails) error {
	return errStore()
}
func (s *failingStore) Delete(context.Context, int64) error { return errStore() }

func errStore() error { return common.ErrorStore }
