package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL bounds both the token's exp claim and the cookie max-age.
const TokenTTL = 7 * 24 * time.Hour

// Signer issues and verifies the signed identity cookie. This is display-name
// persistence, not authentication: the token proves only that this process
// handed out the name.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Issue creates a token carrying name in the sub claim.
func (s *Signer) Issue(name string) (string, error) {
	if name == "" {
		return "", errors.New("empty identity")
	}
	claims := jwt.MapClaims{
		"sub": name,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(TokenTTL).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Verify checks the token and returns the identity it carries.
func (s *Signer) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	name, _ := claims["sub"].(string)
	if name == "" {
		return "", errors.New("no sub claim")
	}
	return name, nil
}
