package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword_Deterministic(t *testing.T) {
	assert.Equal(t, hashPassword("secret1"), hashPassword("secret1"))
	assert.Equal(t, hashPassword(""), hashPassword(""))
}

func TestHashPassword_DistinctInputs(t *testing.T) {
	assert.NotEqual(t, hashPassword("secret1"), hashPassword("secret2"))
	assert.NotEqual(t, hashPassword("a"), hashPassword("A"))
}

func TestHashPassword_KnownVector(t *testing.T) {
	// SHA3-256 of the empty string.
	assert.Equal(t,
		"a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a",
		hashPassword(""))
}

func TestHashPassword_HexOutput(t *testing.T) {
	digest := hashPassword("anything")
	assert.Len(t, digest, 64)
	for _, c := range digest {
		assert.Contains(t, "0123456789abcdef", string(c))
	}
}
