// Package services contains the contactbook business logic. This file
// implements CredentialService, which registers accounts and verifies logins
// against the stored salted SHA-256 digest.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/config"
	"github.com/dmitrijs2005/contactbook/internal/cryptox"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/models"
	"github.com/dmitrijs2005/contactbook/internal/repositories/repomanager"
)

// CredentialService provides account operations:
// - Register: create an account with a fresh salt
// - Login: check a username/password pair
//
// It mints no tokens; the returned Account is the caller's handle.
type CredentialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	saltSize    int
}

// NewCredentialService constructs a CredentialService. A non-positive
// cfg.SaltSize falls back to common.DefaultSaltSize.
func NewCredentialService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *CredentialService {
	saltSize := cfg.SaltSize
	if saltSize <= 0 {
		saltSize = common.DefaultSaltSize
	}
	return &CredentialService{
		db:          db,
		repomanager: m,
		logger:      logger,
		saltSize:    saltSize,
	}
}

// Register creates an account for username.
//
// The lookup and the insert run in one transaction. An existing username
// yields common.ErrorUserExists and nothing is written; the unique index
// catches registrations racing past the lookup and maps to the same error.
// Any other storage failure is logged and returned as common.ErrorStore.
func (s *CredentialService) Register(ctx context.Context, username, password string) (*models.Account, error) {
	if err := models.ValidateCredentials(username, password); err != nil {
		return nil, err
	}

	var created *models.AccountRecord
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		_, err := repo.GetUserByLogin(ctx, username)
		if err == nil {
			return common.ErrorUserExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error searching account: %w", err)
		}

		salt, err := cryptox.NewSalt(s.saltSize)
		if err != nil {
			return fmt.Errorf("error generating salt: %w", err)
		}

		created, err = repo.Create(ctx, &models.AccountRecord{
			UserName:     username,
			PasswordHash: cryptox.HashPassword(password, salt),
			Salt:         salt,
		})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.ErrorUserExists
			}
			return fmt.Errorf("error creating account: %w", err)
		}
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, common.ErrorUserExists):
		s.logger.Info(ctx, "registration rejected, username taken", "username", username)
		return nil, common.ErrorUserExists
	default:
		s.logger.Error(ctx, "registration failed", "username", username, "error", err)
		return nil, common.ErrorStore
	}

	account := created.Account()
	s.logger.Info(ctx, "account registered", "account_id", account.ID)
	return &account, nil
}

// Login returns the account for username when password matches.
//
// An unknown username and a wrong password both yield
// common.ErrorInvalidCredentials. Storage failures are logged and returned
// as common.ErrorStore.
func (s *CredentialService) Login(ctx context.Context, username, password string) (*models.Account, error) {
	if err := models.ValidateCredentials(username, password); err != nil {
		return nil, common.ErrorInvalidCredentials
	}

	repo := s.repomanager.Accounts(s.db)
	record, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "login lookup failed", "username", username, "error", err)
		return nil, common.ErrorStore
	}

	if !cryptox.VerifyPassword(password, record.Salt, record.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	account := record.Account()
	return &account, nil
}
