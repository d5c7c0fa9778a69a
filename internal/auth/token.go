package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrBadToken = errors.New("invalid token")

// TokenIssuer mints and verifies the platform's HMAC-signed session tokens.
type TokenIssuer struct{ hmac []byte }

func NewTokenIssuer(secret string) *TokenIssuer { return &TokenIssuer{hmac: []byte(secret)} }

type Claims struct {
	Sub  string `json:"sub"`
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs a token for the user. The TTL realizes the "remember me"
// choice: a short session-scoped lifetime without it, a long one with it.
func (t *TokenIssuer) Issue(sub, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Sub:  sub,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "xtx-training",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.hmac)
}

func (t *TokenIssuer) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return t.hmac, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrBadToken
	}
	c, ok := token.Claims.(*Claims)
	if !ok || c.Sub == "" {
		return nil, ErrBadToken
	}
	return c, nil
}
