package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/models"
	"github.com/dmitrijs2005/contactbook/internal/repositories/repomanager"
)

// ContactStore is the contact list of one authenticated account. Every
// operation is restricted to that account's rows; ids owned by anyone else
// behave exactly like ids that do not exist.
type ContactStore struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	account     models.Account
	logger      logging.Logger
}

// NewContactStore binds a ContactStore to account.
func NewContactStore(db *sql.DB, m repomanager.RepositoryManager, account models.Account, logger logging.Logger) *ContactStore {
	return &ContactStore{
		db:          db,
		repomanager: m,
		account:     account,
		logger:      logger.With("account_id", account.ID),
	}
}

// Account returns the owner of the store.
func (s *ContactStore) Account() models.Account {
	return s.account
}

// Create stores a new contact and returns its id.
func (s *ContactStore) Create(ctx context.Context, details models.ContactDetails) (int64, error) {
	if err := details.Validate(); err != nil {
		return 0, err
	}

	c := &models.Contact{OwnerID: s.account.ID, ContactDetails: details}
	id, err := s.repomanager.Contacts(s.db).Create(ctx, c)
	if err != nil {
		s.logger.Error(ctx, "create contact failed", "error", err)
		return 0, common.ErrorStore
	}
	return id, nil
}

// ReadAll returns the account's contacts ordered by id.
func (s *ContactStore) ReadAll(ctx context.Context) ([]models.Contact, error) {
	list, err := s.repomanager.Contacts(s.db).ListByOwner(ctx, s.account.ID)
	if err != nil {
		s.logger.Error(ctx, "list contacts failed", "error", err)
		return nil, common.ErrorStore
	}
	if list == nil {
		list = []models.Contact{}
	}
	return list, nil
}

// Update overwrites the details of contact id. Updating an id the account
// does not own changes nothing and is not an error.
func (s *ContactStore) Update(ctx context.Context, id int64, details models.ContactDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}

	c := &models.Contact{ID: id, OwnerID: s.account.ID, ContactDetails: details}
	n, err := s.repomanager.Contacts(s.db).Update(ctx, c)
	if err != nil {
		s.logger.Error(ctx, "update contact failed", "contact_id", id, "error", err)
		return common.ErrorStore
	}
	if n == 0 {
		s.logger.Debug(ctx, "update matched no contact", "contact_id", id)
	}
	return nil
}

// Delete removes contact id. Deleting an id the account does not own
// changes nothing and is not an error.
func (s *ContactStore) Delete(ctx context.Context, id int64) error {
	n, err := s.repomanager.Contacts(s.db).Delete(ctx, s.account.ID, id)
	if err != nil {
		s.logger.Error(ctx, "delete contact failed", "contact_id", id, "error", err)
		return common.ErrorStore
	}
	if n == 0 {
		s.logger.Debug(ctx, "delete matched no contact", "contact_id", id)
	}
	return nil
}
