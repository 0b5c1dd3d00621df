// Package models defines the GoMate client data types: accounts, catalog
// entities and the favourite / recently-viewed records built from them.
//
// JSON field names follow the documents the mobile client persisted, so
// existing data can be read back unchanged.
package models

import (
	"time"

	"github.com/dmitrijs2005/gomate/internal/cryptox"
)

// User is the public view of an account. It is what the session slot holds.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Account is a registry record: a User plus its password credential.
//
// LegacyPassword is the plaintext field older registries carried. It is only
// read; a successful login replaces it with a Credential.
type Account struct {
	ID             string             `json:"id"`
	Email          string             `json:"email"`
	Name           string             `json:"name"`
	Credential     cryptox.Credential `json:"credential"`
	LegacyPassword string             `json:"password,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// User returns the account without its credential.
func (a Account) User() User {
	return User{ID: a.ID, Email: a.Email, Name: a.Name, CreatedAt: a.CreatedAt}
}
