// Package user holds the identity record, its public-safe projection and
// the repository that persists it.
package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the full, private identity record.
type User struct {
	Username     string    `json:"username"`
	DisplayName  string    `json:"displayname"`
	PasswordHash string    `json:"-"` // never expose the credential digest
	Email        string    `json:"email"`
	InternalID   string    `json:"uid"`
	PublicID     string    `json:"suid"`
	CreatedAt    time.Time `json:"created_at"`
}

// SafeProfile is the subset of an identity record that may be disclosed to
// third parties. The credential digest, email and internal id never appear.
type SafeProfile struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayname"`
	PublicID    string `json:"suid"`
}

// Safe projects the record into its public view.
func (u *User) Safe() SafeProfile {
	return SafeProfile{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		PublicID:    u.PublicID,
	}
}

// NewInternalID generates the internal identifier: a hyphenated UUID v4.
func NewInternalID() string {
	return uuid.New().String()
}

// NewPublicID generates the externally shared identifier: a compact UUID v4.
// It is independent of the internal id, so internal identifiers never leak.
func NewPublicID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
