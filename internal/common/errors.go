// Package common defines shared constants and sentinel errors used across
// the contactbook layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level outcomes returned to callers.
	ErrorValidation         = errors.New("validation error")
	ErrorUserExists         = errors.New("user already exists")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorStore              = errors.New("store error")

	// Backup export is not configured.
	ErrorBackupDisabled = errors.New("backup storage is not configured")
)
