package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/careloop/hms-backend/internal/apperr"
)

type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenProvider issues and verifies HS256 access tokens. The subject is the
// user's email, which every service resolves back to a profile.
type TokenProvider struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenProvider(secret string, ttl time.Duration) *TokenProvider {
	return &TokenProvider{secret: []byte(secret), ttl: ttl}
}

func (p *TokenProvider) Generate(email string, role Role) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
		Role: string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Parse validates the token signature and expiry and returns the subject
// email and role claim.
func (p *TokenProvider) Parse(tokenStr string) (string, Role, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", "", apperr.Unauthenticated("Invalid or expired token")
	}

	role, err := ParseRole(claims.Role)
	if err != nil {
		return "", "", apperr.Unauthenticated("Invalid or expired token")
	}

	return claims.Subject, role, nil
}
