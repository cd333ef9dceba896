package auth

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// jwtCodec signs EdDSA JWTs.
type jwtCodec struct {
	private ed25519.PrivateKey
	public  ed25519.PublicKey
}

func newJWTCodec(keys *KeyPair) *jwtCodec {
	return &jwtCodec{private: keys.Private(), public: keys.Public()}
}

func (c *jwtCodec) sign(claims SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   claims.Subject,
		IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		ID:        claims.TokenID,
	})
	return token.SignedString(c.private)
}

func (c *jwtCodec) parse(raw string) (SessionClaims, error) {
	var rc jwt.RegisteredClaims

	// Expiry is enforced by TokenService with its own clock.
	_, err := jwt.ParseWithClaims(raw, &rc,
		func(*jwt.Token) (any, error) { return c.public, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return SessionClaims{}, err
	}

	if rc.Issuer != tokenIssuer {
		return SessionClaims{}, fmt.Errorf("unexpected issuer %q", rc.Issuer)
	}
	if rc.ExpiresAt == nil {
		return SessionClaims{}, errors.New("missing exp claim")
	}

	claims := SessionClaims{
		Subject:   rc.Subject,
		ExpiresAt: rc.ExpiresAt.Time,
		TokenID:   rc.ID,
	}
	if rc.IssuedAt != nil {
		claims.IssuedAt = rc.IssuedAt.Time
	}
	return claims, nil
}
