package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/artiklar/identity-api/internal/logging"
	"github.com/artiklar/identity-api/internal/user"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrEmailTaken         = errors.New("email already in use")
	ErrEmailNotFound      = errors.New("email not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// emailPattern is the accepted email shape: ASCII local part, a domain and
// at least one dot in it.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// Service orchestrates registration and login. It owns the in-flight
// transaction; durable records belong to the repository, tokens to the
// token service.
type Service struct {
	users  UserRepository
	tokens TokenService
	logger *logging.Logger
}

func NewService(users UserRepository, tokens TokenService, logger *logging.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// LoginResult carries what a successful login hands the client: the signed
// token and the account's public id.
type LoginResult struct {
	Token    string `json:"token"`
	PublicID string `json:"suid"`
}

// Register creates a new identity record. No token is issued here;
// registration and login are separate flows.
//
// Uniqueness is checked username-before-email so the error kinds are
// stable, and enforced again by the store's unique constraints, which
// close the window between the checks and the insert under concurrency.
func (s *Service) Register(ctx context.Context, username, displayName, password, email string) (*user.User, error) {
	if username == "" || displayName == "" || password == "" || email == "" {
		return nil, ErrMissingFields
	}

	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return nil, ErrInvalidEmail
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	// Two independent UUID v4 values; the collision probability is treated
	// as negligible, so no collision check is performed.
	newUser := &user.User{
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: hashPassword(password),
		Email:        email,
		InternalID:   user.NewInternalID(),
		PublicID:     user.NewPublicID(),
	}

	if err := s.users.Create(ctx, newUser); err != nil {
		// A concurrent registration can slip past the pre-checks; the
		// constraint violation keeps the error kind honest.
		if errors.Is(err, user.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// Login authenticates the credentials and issues a token. Existence is
// checked before the credential comparison, so credential errors are never
// reported for unknown accounts.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if u.PasswordHash != hashPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(u)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	return &LoginResult{Token: token, PublicID: u.PublicID}, nil
}
