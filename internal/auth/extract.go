package auth

import "strings"

// AuthorizationStatus distinguishes a verified token, a failed verification
// and a request that never presented a token. Callers that gate on it must
// not collapse the last two: "no attempt" and "failed attempt" are
// different answers.
type AuthorizationStatus int

const (
	StatusAuthorized AuthorizationStatus = iota
	StatusUnauthorized
	StatusMissing
)

// AuthResult is the outcome of extracting a bearer token from request
// metadata. Claims is set only when Status is StatusAuthorized.
type AuthResult struct {
	Status AuthorizationStatus
	Claims *TokenClaims
}

// Extractor resolves inbound request metadata to a verified identity.
type Extractor struct {
	tokens TokenService
}

func NewExtractor(tokens TokenService) *Extractor {
	return &Extractor{tokens: tokens}
}

// Extract looks up the lowercase "authorization" key first and falls back
// to "Authorization". A missing key yields StatusMissing; a present token
// that fails verification yields StatusUnauthorized.
func (e *Extractor) Extract(metadata map[string]string) AuthResult {
	raw, ok := metadata["authorization"]
	if !ok {
		raw, ok = metadata["Authorization"]
	}
	if !ok {
		return AuthResult{Status: StatusMissing}
	}

	token := strings.TrimPrefix(raw, "Bearer ")

	claims, err := e.tokens.VerifyToken(token)
	if err != nil {
		return AuthResult{Status: StatusUnauthorized}
	}

	return AuthResult{Status: StatusAuthorized, Claims: claims}
}
