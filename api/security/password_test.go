package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hashed, err := Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", string(hashed))

	assert.NoError(t, VerifyPassword(string(hashed), "password123"))
	assert.ErrorIs(t, VerifyPassword(string(hashed), "wrong"), bcrypt.ErrMismatchedHashAndPassword)
}
