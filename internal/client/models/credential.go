package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CredentialInfo is what can be read from a bearer token without verifying
// it. The client never trusts these values for authorization decisions.
type CredentialInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that lies before now.
func (c CredentialInfo) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// InspectCredential decodes the claims of a JWT credential. Opaque tokens
// report false.
func InspectCredential(token string) (CredentialInfo, bool) {
	if token == "" {
		return CredentialInfo{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return CredentialInfo{}, false
	}

	var info CredentialInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if sub, ok := claims["id"].(string); ok && info.Subject == "" {
		info.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, true
}
