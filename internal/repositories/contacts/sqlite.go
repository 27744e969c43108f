package contacts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a contact and returns the rowid assigned by SQLite.
func (r *SQLiteRepository) Create(ctx context.Context, c *models.Contact) (int64, error) {
	query := `INSERT INTO contacts (owner_id, name, surname, address, phone, age) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, c.OwnerID, c.Name, c.Surname, c.Address, c.Phone, c.Age)
	if err != nil {
		return 0, fmt.Errorf("failed to insert contact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id error: %w", err)
	}
	return id, nil
}

// ListByOwner lists the contacts of ownerID.
func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Contact, error) {
	query := `select id, owner_id, name, coalesce(surname, ''), coalesce(address, ''), phone, age
		from contacts where owner_id = ? order by id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select contacts: %w", err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

// Update rewrites the details of an owned contact.
func (r *SQLiteRepository) Update(ctx context.Context, c *models.Contact) (int64, error) {
	query := `update contacts set name = ?, surname = ?, address = ?, phone = ?, age = ?
		where id = ? and owner_id = ?`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Surname, c.Address, c.Phone, c.Age, c.ID, c.OwnerID)
	if err != nil {
		return 0, fmt.Errorf("failed to update contact: %w", err)
	}
	return dbx.RowsAffected(res)
}

// Delete removes an owned contact.
func (r *SQLiteRepository) Delete(ctx context.Context, ownerID, id int64) (int64, error) {
	query := `delete from contacts where id = ? and owner_id = ?`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete contact: %w", err)
	}
	return dbx.RowsAffected(res)
}
