package database

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the database representation of an identity record.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Username     string    `bun:"username,notnull,unique"`
	DisplayName  string    `bun:"display_name,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	InternalID   string    `bun:"internal_id,notnull,unique"`
	PublicID     string    `bun:"public_id,notnull,unique"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
