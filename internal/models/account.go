// Package models defines the data models persisted in the database and the
// value types passed between the services and their callers.
package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/contactbook/internal/common"
)

// Account is the authenticated handle returned by a successful login.
// It carries no credential material.
type Account struct {
	ID       int64
	UserName string
}

// AccountRecord is the persisted account row.
type AccountRecord struct {
	ID           int64
	UserName     string
	PasswordHash string
	Salt         string
}

// Account returns the handle for r.
func (r *AccountRecord) Account() Account {
	return Account{ID: r.ID, UserName: r.UserName}
}

// ValidateCredentials checks that username and password are non-empty and
// no longer than common.MaxCredentialLength characters.
func ValidateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", common.ErrorValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	if utf8.RuneCountInString(username) > common.MaxCredentialLength ||
		utf8.RuneCountInString(password) > common.MaxCredentialLength {
		return fmt.Errorf("%w: username and password must be at most %d characters",
			common.ErrorValidation, common.MaxCredentialLength)
	}
	return nil
}
