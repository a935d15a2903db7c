package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/artiklar/identity-api/internal/database"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

// Repository handles identity record persistence. A failed lookup is always
// distinguishable from "no such record": store errors are wrapped, absence
// is ErrNotFound.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new identity record. The unique constraints on username
// and email are the final arbiter of uniqueness; a violation maps back to
// the corresponding duplicate error.
func (r *Repository) Create(ctx context.Context, u *User) error {
	dbUser := &database.User{
		Username:     u.Username,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		Email:        u.Email,
		InternalID:   u.InternalID,
		PublicID:     u.PublicID,
		CreatedAt:    time.Now(),
	}

	_, err := r.db.NewInsert().
		Model(dbUser).
		Exec(ctx)
	if err != nil {
		if dup := mapConstraintError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	u.CreatedAt = dbUser.CreatedAt
	return nil
}

// GetByUsername retrieves an identity record by username
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getBy(ctx, "username", username)
}

// GetByEmail retrieves an identity record by email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getBy(ctx, "email", email)
}

// GetByPublicID retrieves an identity record by its public id
func (r *Repository) GetByPublicID(ctx context.Context, publicID string) (*User, error) {
	return r.getBy(ctx, "public_id", publicID)
}

func (r *Repository) getBy(ctx context.Context, column, value string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("? = ?", bun.Ident(column), value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}

	return mapDBUserToModel(dbUser), nil
}

// List returns all identity records ordered by creation time.
func (r *Repository) List(ctx context.Context) ([]*User, error) {
	var dbUsers []database.User
	err := r.db.NewSelect().
		Model(&dbUsers).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, mapDBUserToModel(&dbUsers[i]))
	}
	return users, nil
}

// DeleteByPublicID removes the record with the given public id and returns
// the number of deleted rows (zero when the id is unknown).
func (r *Repository) DeleteByPublicID(ctx context.Context, publicID string) (int64, error) {
	result, err := r.db.NewDelete().
		Model((*database.User)(nil)).
		Where("public_id = ?", publicID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return deleted, nil
}

// DeleteAll removes every identity record and returns the deleted count.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.NewDelete().
		Model((*database.User)(nil)).
		Where("1 = 1").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete users: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return deleted, nil
}

// mapConstraintError translates a unique-violation into the matching
// duplicate error. Postgres reports `duplicate key value violates unique
// constraint "users_username_key"`, SQLite `UNIQUE constraint failed:
// users.username`; both name the column.
func mapConstraintError(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "unique") && !strings.Contains(msg, "duplicate") {
		return nil
	}
	switch {
	case strings.Contains(msg, "username"):
		return ErrDuplicateUsername
	case strings.Contains(msg, "email"):
		return ErrDuplicateEmail
	}
	return nil
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		Username:     dbu.Username,
		DisplayName:  dbu.DisplayName,
		PasswordHash: dbu.PasswordHash,
		Email:        dbu.Email,
		InternalID:   dbu.InternalID,
		PublicID:     dbu.PublicID,
		CreatedAt:    dbu.CreatedAt,
	}
}
