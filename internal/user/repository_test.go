package user

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"github.com/artiklar/identity-api/internal/database"
)

// newTestDB opens an isolated in-memory SQLite database with the real
// schema, unique constraints included.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	require.NoError(t, database.Migrate(context.Background(), db))

	t.Cleanup(func() { db.Close() })
	return db
}

func newRecord(username, email string) *User {
	return &User{
		Username:     username,
		DisplayName:  "Display " + username,
		PasswordHash: "digest-" + username,
		Email:        email,
		InternalID:   NewInternalID(),
		PublicID:     NewPublicID(),
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	u := newRecord("ana", "ana@example.com")
	require.NoError(t, repo.Create(ctx, u))

	byUsername, err := repo.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, u.Email, byUsername.Email)
	assert.Equal(t, u.PublicID, byUsername.PublicID)
	assert.Equal(t, u.InternalID, byUsername.InternalID)
	assert.Equal(t, u.PasswordHash, byUsername.PasswordHash)

	byEmail, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.Username, byEmail.Username)

	byPublicID, err := repo.GetByPublicID(ctx, u.PublicID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, byPublicID.Username)
}

func TestRepository_GetNotFound(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByPublicID(ctx, "ffffffffffffffffffffffffffffffff")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_DuplicateUsername(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newRecord("ana", "ana@example.com")))

	err := repo.Create(ctx, newRecord("ana", "other@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestRepository_DuplicateEmail(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newRecord("ana", "ana@example.com")))

	err := repo.Create(ctx, newRecord("bea", "ana@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRepository_List(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, repo.Create(ctx, newRecord("ana", "ana@example.com")))
	require.NoError(t, repo.Create(ctx, newRecord("bea", "bea@example.com")))

	users, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ana", users[0].Username)
	assert.Equal(t, "bea", users[1].Username)
}

func TestRepository_DeleteByPublicID(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	u := newRecord("ana", "ana@example.com")
	require.NoError(t, repo.Create(ctx, u))

	deleted, err := repo.DeleteByPublicID(ctx, u.PublicID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = repo.GetByPublicID(ctx, u.PublicID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Unknown id deletes nothing and is not an error.
	deleted, err = repo.DeleteByPublicID(ctx, u.PublicID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, deleted)
}

func TestRepository_DeleteAll(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newRecord("ana", "ana@example.com")))
	require.NoError(t, repo.Create(ctx, newRecord("bea", "bea@example.com")))

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestRepository_SequentialDuplicateRegistrationFlow(t *testing.T) {
	// Same username, different email: first insert wins, second hits the
	// username constraint even though its email is free.
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newRecord("ana", "ana@example.com")))

	err := repo.Create(ctx, newRecord("ana", "ana2@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
