package jwtx

import (
	"github.com/golang-jwt/jwt/v5"
)

// Signer turns claims into a compact JWT.
type Signer interface {
	Sign(Claims) (string, error)
}

// HS256Signer signs with the active secret of a KeyRing.
type HS256Signer struct {
	keys *KeyRing
}

// NewSignerHS256 returns a signer bound to keys.
func NewSignerHS256(keys *KeyRing) *HS256Signer {
	return &HS256Signer{keys: keys}
}

// Sign signs claims and stamps the kid header so verifiers can pick the
// right secret after a rotation.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	kid, secret, err := s.keys.Active()
	if err != nil {
		return "", err
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t.Header["kid"] = kid
	return t.SignedString(secret)
}
