// Package cryptox derives and verifies password credentials.
//
// Passwords are never stored. An account keeps a random salt and the
// argon2id hash of (password, salt); login recomputes the hash and compares
// it in constant time.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/gomate/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated salt in bytes.
const SaltSize = 16

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// Credential is a salted password hash as persisted in the account registry.
type Credential struct {
	Salt []byte `json:"salt"`
	Hash []byte `json:"hash"`
}

// HashPassword derives the argon2id hash of password with salt.
func HashPassword(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// NewCredential generates a fresh salt and hashes password with it.
func NewCredential(password []byte) Credential {
	salt := common.GenerateRandByteArray(SaltSize)
	return Credential{Salt: salt, Hash: HashPassword(password, salt)}
}

// Verify reports whether password matches the credential.
func (c Credential) Verify(password []byte) bool {
	if len(c.Hash) == 0 {
		return false
	}
	candidate := HashPassword(password, c.Salt)
	return subtle.ConstantTimeCompare(c.Hash, candidate) == 1
}
