package models

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestInspectCredential_ReadsClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signed(t, jwt.MapClaims{"sub": "u-1", "exp": exp.Unix()})

	info, ok := InspectCredential(token)
	require.True(t, ok)
	assert.Equal(t, "u-1", info.Subject)
	assert.True(t, info.ExpiresAt.Equal(exp))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(exp.Add(time.Second)))
}

func TestInspectCredential_FallsBackToIDClaim(t *testing.T) {
	info, ok := InspectCredential(signed(t, jwt.MapClaims{"id": "abc"}))
	require.True(t, ok)
	assert.Equal(t, "abc", info.Subject)
	assert.False(t, info.Expired(time.Now()))
}

func TestInspectCredential_OpaqueToken(t *testing.T) {
	_, ok := InspectCredential("T1")
	assert.False(t, ok)

	_, ok = InspectCredential("")
	assert.False(t, ok)
}
