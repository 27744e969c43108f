// Package cryptox holds the password digest used for account verification.
//
// A stored credential is the pair (salt, hash) where salt is a random hex
// string generated once per account and hash is the lowercase hex SHA-256
// of the password bytes immediately followed by the salt string.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
)

// HashSize is the length of an encoded digest in characters.
const HashSize = sha256.Size * 2

// makeSalt is a seam for tests that need a predictable salt.
var makeSalt = common.MakeRandHexString

// NewSalt returns size random bytes, hex encoded.
// size must be between common.DefaultSaltSize and common.MaxSaltSize.
func NewSalt(size int) (string, error) {
	if size < common.DefaultSaltSize || size > common.MaxSaltSize {
		return "", fmt.Errorf("salt size %d out of range [%d, %d]", size, common.DefaultSaltSize, common.MaxSaltSize)
	}
	return makeSalt(size)
}

// HashPassword computes hex(SHA-256(password || salt)).
func HashPassword(password, salt string) string {
	h := sha256.New()
	h.Write([]byte(password))
	h.Write([]byte(salt))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyPassword reports whether password combined with salt produces
// storedHash. The comparison runs in constant time.
func VerifyPassword(password, salt, storedHash string) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(storedHash)) == 1
}
