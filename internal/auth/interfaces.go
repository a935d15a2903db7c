package auth

import (
	"context"

	"github.com/artiklar/identity-api/internal/user"
)

// TokenService defines the interface for token creation and validation.
// JWTService (HS256 with a static symmetric secret) is the implementation.
type TokenService interface {
	CreateToken(u *user.User) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserRepository is the narrow store contract the account service needs.
// *user.Repository satisfies it.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
