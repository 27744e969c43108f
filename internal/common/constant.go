package common

// MaxCredentialLength is the maximum number of characters accepted for
// a username or password.
const MaxCredentialLength = 255

// Salt sizes, in random bytes before hex encoding.
const (
	DefaultSaltSize = 4
	MaxSaltSize     = 32
)

// MaxAge is the largest age a contact may carry; it fits a 32-bit INTEGER
// column on every supported database.
const MaxAge = 1<<31 - 1
