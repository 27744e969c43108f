package app

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/contactbook/internal/config"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/models"
	"github.com/dmitrijs2005/contactbook/internal/repositories/repomanager"
	"github.com/dmitrijs2005/contactbook/internal/services"
)

// ErrConnectionLost is returned by Run when the liveness probe fails.
var ErrConnectionLost = errors.New("database connection lost")

type credentialService interface {
	Register(ctx context.Context, username, password string) (*models.Account, error)
	Login(ctx context.Context, username, password string) (*models.Account, error)
}

type contactStore interface {
	Account() models.Account
	Create(ctx context.Context, details models.ContactDetails) (int64, error)
	ReadAll(ctx context.Context) ([]models.Contact, error)
	Update(ctx context.Context, id int64, details models.ContactDetails) error
	Delete(ctx context.Context, id int64) error
}

type backupService interface {
	Enabled() bool
	Export(ctx context.Context, store services.ContactReader) (string, error)
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	credentials credentialService
	backup      backupService
	newStore    func(models.Account) contactStore

	store     contactStore
	sessionID string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the configured database, applies migrations and wires the
// services. The caller owns the returned App and must Close it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	m, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := repomanager.OpenDB(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}
	logger.Info(ctx, "database ready", "driver", c.DatabaseDriver)

	return newApp(c, logger, db, m, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, m repomanager.RepositoryManager, in io.Reader, out io.Writer) *App {
	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		credentials: services.NewCredentialService(db, m, c, logger),
		backup:      services.NewBackupService(c, logger),
		newStore: func(acc models.Account) contactStore {
			return services.NewContactStore(db, m, acc, logger)
		},
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the liveness monitor and the REPL and blocks until the user
// exits, a signal arrives or the database connection is lost. Only the
// last case returns an error, wrapping ErrConnectionLost.
func (a *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	a.initSignalHandler(cancelFunc)

	lost := make(chan error, 1)
	go StartLivenessMonitor(ctx, a.db, a.config.LivenessInterval, a.config.LivenessTimeout, a.logger, func(err error) {
		lost <- err
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		fmt.Fprintln(a.out, "Welcome to contactbook (type 'help' for commands)")
		runREPL(ctx, a, a.getStatus, a.reader, a.out)
	}()

	select {
	case <-done:
		return nil
	case err := <-lost:
		fmt.Fprintln(a.out, "Connection to the database lost, exiting.")
		return fmt.Errorf("%w: %v", ErrConnectionLost, err)
	case <-ctx.Done():
		return nil
	}
}

// Close releases the database pool.
func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.store != nil
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s)", a.store.Account().UserName)
}
