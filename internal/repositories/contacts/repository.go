// Package contacts persists contact records.
//
// Every read and write is filtered by owner_id in the same statement as the
// id predicate, so a row owned by another account is indistinguishable from
// a missing one: reads skip it and writes affect zero rows.
package contacts

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/models"
)

// Repository describes owner-scoped CRUD on contacts.
type Repository interface {
	// Create inserts c for c.OwnerID and returns the generated id.
	Create(ctx context.Context, c *models.Contact) (int64, error)

	// ListByOwner returns all contacts of ownerID ordered by id.
	// The result is empty, not nil, when there are none.
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Contact, error)

	// Update rewrites the details of c.ID when it belongs to c.OwnerID and
	// returns the number of affected rows (0 or 1).
	Update(ctx context.Context, c *models.Contact) (int64, error)

	// Delete removes id when it belongs to ownerID and returns the number of
	// affected rows (0 or 1).
	Delete(ctx context.Context, ownerID, id int64) (int64, error)
}
