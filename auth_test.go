package main

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenExpiring(t *testing.T, at time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(at),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("local-test-key"))
	require.NoError(t, err)
	return token
}

func TestSessionActive(t *testing.T) {
	now := time.Now()
	assert.NoError(t, sessionActive(tokenExpiring(t, now.Add(time.Hour)), now))
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	err := sessionActive(tokenExpiring(t, now.Add(-time.Minute)), now)
	assert.ErrorIs(t, err, errSessionExpired)
}

func TestSessionExpiringExactlyNow(t *testing.T) {
	now := time.Unix(1700000000, 0)
	err := sessionActive(tokenExpiring(t, now), now)
	assert.ErrorIs(t, err, errSessionExpired)
}

func TestSessionMissingToken(t *testing.T) {
	assert.ErrorIs(t, sessionActive("", time.Now()), errNoSession)
	assert.ErrorIs(t, sessionActive("   ", time.Now()), errNoSession)
}

func TestSessionMalformedToken(t *testing.T) {
	err := sessionActive("not-a-jwt", time.Now())
	require.Error(t, err)
	assert.NotErrorIs(t, err, errNoSession)
	assert.NotErrorIs(t, err, errSessionExpired)
}

func TestSessionTokenWithoutExpiry(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"}).
		SignedString([]byte("local-test-key"))
	require.NoError(t, err)
	assert.ErrorIs(t, sessionActive(token, time.Now()), errSessionExpired)
}
