package contacts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/models"
)

// PostgresRepository implements contact storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a contact and returns the id from the RETURNING clause.
func (r *PostgresRepository) Create(ctx context.Context, c *models.Contact) (int64, error) {
	query := `
		INSERT INTO contacts (owner_id, name, surname, address, phone, age)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		c.OwnerID, c.Name, c.Surname, c.Address, c.Phone, c.Age).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// ListByOwner lists the contacts of ownerID in id order.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Contact, error) {
	query := `
		SELECT id, owner_id, name, COALESCE(surname, ''), COALESCE(address, ''), phone, age
		FROM contacts
		WHERE owner_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select contacts: %w", err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

// Update rewrites the details of an owned contact and reports the rows affected.
func (r *PostgresRepository) Update(ctx context.Context, c *models.Contact) (int64, error) {
	query := `
		UPDATE contacts
		SET name = $1, surname = $2, address = $3, phone = $4, age = $5
		WHERE id = $6 AND owner_id = $7
	`
	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Surname, c.Address, c.Phone, c.Age, c.ID, c.OwnerID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return dbx.RowsAffected(res)
}

// Delete removes an owned contact and reports the rows affected.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id int64) (int64, error) {
	query := `DELETE FROM contacts WHERE id = $1 AND owner_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return dbx.RowsAffected(res)
}

// scanContacts reads id, owner_id, name, surname, address, phone, age rows.
func scanContacts(rows *sql.Rows) ([]models.Contact, error) {
	result := make([]models.Contact, 0)
	for rows.Next() {
		var item models.Contact
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Name, &item.Surname, &item.Address, &item.Phone, &item.Age,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
