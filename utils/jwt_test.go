package utils

import (
	"testing"
	"time"

	"homeserve/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	principal := models.Principal{ID: "cli-1", Role: models.RoleClient}

	token, err := GenerateToken(principal, "jean.martin@example.com", time.Hour)
	require.NoError(t, err)

	got, err := ExtractPrincipalFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, principal, got)
}

func TestExpiredTokenRejected(t *testing.T) {
	principal := models.Principal{ID: "cli-1", Role: models.RoleClient}

	token, err := GenerateToken(principal, "jean.martin@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractPrincipalFromToken(token)
	assert.Error(t, err)
}

func TestMalformedTokenRejected(t *testing.T) {
	_, err := ExtractPrincipalFromToken("not-a-token")
	assert.Error(t, err)
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
}
