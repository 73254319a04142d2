// Package token issues and validates the signed, stateless identity
// assertions carried by API clients. Tokens are single-shot and short-lived;
// there is no server-side record and no revocation.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the subject/role/expiry triple embedded in every token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Subject returns the opaque identifier the token was issued for.
func (c *Claims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Issue signs an HS256 token for subject with the given role, valid for ttl.
func Issue(subject, role, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("token secret is empty")
	}
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}

	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verify checks the signature and expiry of a token and returns its claims.
// Signature and structural failures collapse to ErrInvalidToken; an expired
// but otherwise valid token yields ErrTokenExpired.
func Verify(tokenStr, secret string) (*Claims, error) {
	if tokenStr == "" || secret == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
