package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/contactbook/internal/common"
)

// ContactDetails is the user-editable part of a contact.
// Surname and Address may be empty, never NULL.
type ContactDetails struct {
	Name    string
	Surname string
	Address string
	Phone   string
	Age     int
}

// Validate reports the first rule d breaks, wrapped in common.ErrorValidation.
func (d ContactDetails) Validate() error {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	case strings.TrimSpace(d.Phone) == "":
		return fmt.Errorf("%w: phone is required", common.ErrorValidation)
	case d.Age < 0:
		return fmt.Errorf("%w: age must not be negative", common.ErrorValidation)
	case d.Age > common.MaxAge:
		return fmt.Errorf("%w: age must be at most %d", common.ErrorValidation, common.MaxAge)
	}
	return nil
}

// Contact is a persisted contact row. ID 0 means not yet persisted.
// OwnerID is set on creation and never changes.
type Contact struct {
	ID      int64
	OwnerID int64
	ContactDetails
}

// String renders c as a single listing line.
func (c Contact) String() string {
	return fmt.Sprintf("[%d] %s %s, phone: %s, address: %s, age: %d",
		c.ID, c.Name, c.Surname, c.Phone, c.Address, c.Age)
}
