package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T) (*Extractor, *JWTService) {
	t.Helper()
	tokens, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)
	return NewExtractor(tokens), tokens
}

func TestExtract_Authorized(t *testing.T) {
	extractor, tokens := newTestExtractor(t)

	u := testUser()
	token, err := tokens.CreateToken(u)
	require.NoError(t, err)

	result := extractor.Extract(map[string]string{"authorization": "Bearer " + token})
	require.Equal(t, StatusAuthorized, result.Status)
	require.NotNil(t, result.Claims)
	assert.Equal(t, u.Username, result.Claims.Username)
	assert.Equal(t, u.PublicID, result.Claims.PublicID)
}

func TestExtract_UppercaseKeyFallback(t *testing.T) {
	extractor, tokens := newTestExtractor(t)

	token, err := tokens.CreateToken(testUser())
	require.NoError(t, err)

	result := extractor.Extract(map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, StatusAuthorized, result.Status)
}

func TestExtract_BareTokenWithoutBearerPrefix(t *testing.T) {
	extractor, tokens := newTestExtractor(t)

	token, err := tokens.CreateToken(testUser())
	require.NoError(t, err)

	result := extractor.Extract(map[string]string{"authorization": token})
	assert.Equal(t, StatusAuthorized, result.Status)
}

func TestExtract_MissingKey(t *testing.T) {
	extractor, _ := newTestExtractor(t)

	result := extractor.Extract(map[string]string{})
	assert.Equal(t, StatusMissing, result.Status)
	assert.Nil(t, result.Claims)

	// Other metadata does not count as an authorization attempt.
	result = extractor.Extract(map[string]string{"content-type": "application/json"})
	assert.Equal(t, StatusMissing, result.Status)
}

func TestExtract_TamperedToken(t *testing.T) {
	extractor, tokens := newTestExtractor(t)

	token, err := tokens.CreateToken(testUser())
	require.NoError(t, err)

	result := extractor.Extract(map[string]string{"authorization": "Bearer " + token[:len(token)-2] + "xx"})
	assert.Equal(t, StatusUnauthorized, result.Status)
	assert.Nil(t, result.Claims)
}

func TestExtract_EmptyValue(t *testing.T) {
	extractor, _ := newTestExtractor(t)

	// Present but empty: an attempt was made and it fails verification.
	result := extractor.Extract(map[string]string{"authorization": ""})
	assert.Equal(t, StatusUnauthorized, result.Status)
}
