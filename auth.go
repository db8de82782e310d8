package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	errNoSession      = errors.New("pedidos: no session token")
	errSessionExpired = errors.New("pedidos: session expired")
)

// sessionActive is the whole auth boundary of the grid: a yes/no answer from
// the stored access token. The token is issued and signature-checked by the
// auth collaborator; here we only read its claims to know whether a session
// is still open before touching the database.
func sessionActive(token string, now time.Time) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errNoSession
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("pedidos: malformed session token: %w", err)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(now) {
		return errSessionExpired
	}
	return nil
}
