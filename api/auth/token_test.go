package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndExtractToken(t *testing.T) {
	Configure("test-secret")
	defer Configure("")

	token, err := CreateToken(42)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/v1/bracket", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	uid, err := ExtractTokenID(req)
	require.NoError(t, err)
	assert.Equal(t, uint(42), uid)
}

func TestExtractTokenFromQuery(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/bracket?token=abc", nil)
	assert.Equal(t, "abc", ExtractToken(req))
}

func TestExtractTokenIDRejectsMissingAndForeignTokens(t *testing.T) {
	Configure("one")
	token, err := CreateToken(1)
	require.NoError(t, err)

	Configure("two")
	defer Configure("")

	req := httptest.NewRequest("GET", "/", nil)
	_, err = ExtractTokenID(req)
	assert.ErrorIs(t, err, ErrNoToken)

	req.Header.Set("Authorization", "Bearer "+token)
	_, err = ExtractTokenID(req)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
