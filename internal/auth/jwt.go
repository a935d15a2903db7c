package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/artiklar/identity-api/internal/user"
)

// ErrInvalidToken is the single verification failure. Expired, malformed
// and badly signed tokens all collapse into it so callers cannot tell
// which check failed.
var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is the signed, time-bound payload proving possession of a
// verified identity. It is built fresh at login and never persisted.
type TokenClaims struct {
	Username   string `json:"username"`
	InternalID string `json:"uid"`
	PublicID   string `json:"suid"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 tokens with a single static
// symmetric secret.
type JWTService struct {
	secretKey []byte
	duration  time.Duration
}

func NewJWTService(secretKey []byte, duration time.Duration) (*JWTService, error) {
	if len(secretKey) == 0 {
		return nil, fmt.Errorf("token secret must not be empty")
	}
	return &JWTService{secretKey: secretKey, duration: duration}, nil
}

// CreateToken signs a token carrying the record's username, internal id and
// public id, expiring duration from now.
func (s *JWTService) CreateToken(u *user.User) (string, error) {
	claims := TokenClaims{
		Username:   u.Username,
		InternalID: u.InternalID,
		PublicID:   u.PublicID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.duration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken validates signature and expiry and returns the claims.
// Every failure mode returns ErrInvalidToken.
func (s *JWTService) VerifyToken(tokenStr string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
