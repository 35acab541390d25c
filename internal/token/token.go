package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of the backend's JWT payload the client cares about.
// The backend sets sub to the username and adds name, email and role claims
// on access tokens; refresh tokens carry only sub and exp.
type Claims struct {
	Username  string
	Name      string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Decode parses a JWT without verifying its signature. The client never
// holds the signing key; validation is the backend's job, decoding here only
// serves expiry checks and role display.
func Decode(raw string) (Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return Claims{}, err
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("unexpected claims type")
	}

	claims := Claims{}
	claims.Username, _ = claimsMap["sub"].(string)
	claims.Name, _ = claimsMap["name"].(string)
	claims.Email, _ = claimsMap["email"].(string)
	claims.Role, _ = claimsMap["role"].(string)

	if exp, err := claimsMap.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return claims, nil
}

// Expired reports whether the claims carry an expiry in the past. Tokens
// without an exp claim are treated as non-expiring.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Role extracts the role claim from a raw token, reporting false when the
// token is undecodable or carries no role. Callers decide the fallback.
func Role(raw string) (string, bool) {
	claims, err := Decode(raw)
	if err != nil || claims.Role == "" {
		return "", false
	}

	return claims.Role, true
}
