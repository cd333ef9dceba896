package auth

import (
	"fmt"

	"aidanwoods.dev/go-paseto"
)

// pasetoCodec signs v4.public PASETO tokens.
type pasetoCodec struct {
	secret paseto.V4AsymmetricSecretKey
	public paseto.V4AsymmetricPublicKey
}

func newPASETOCodec(keys *KeyPair) (*pasetoCodec, error) {
	secret, err := paseto.NewV4AsymmetricSecretKeyFromBytes(keys.Private())
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO secret key: %w", err)
	}
	public, err := paseto.NewV4AsymmetricPublicKeyFromBytes(keys.Public())
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO public key: %w", err)
	}
	return &pasetoCodec{secret: secret, public: public}, nil
}

func (c *pasetoCodec) sign(claims SessionClaims) (string, error) {
	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(claims.Subject)
	token.SetIssuedAt(claims.IssuedAt)
	token.SetExpiration(claims.ExpiresAt)
	token.SetJti(claims.TokenID)

	return token.V4Sign(c.secret, nil), nil
}

func (c *pasetoCodec) parse(raw string) (SessionClaims, error) {
	// Expiry is enforced by TokenService with its own clock.
	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.IssuedBy(tokenIssuer))

	token, err := parser.ParseV4Public(c.public, raw, nil)
	if err != nil {
		return SessionClaims{}, err
	}

	var claims SessionClaims
	if claims.Subject, err = token.GetSubject(); err != nil {
		return SessionClaims{}, err
	}
	if claims.ExpiresAt, err = token.GetExpiration(); err != nil {
		return SessionClaims{}, err
	}
	if claims.IssuedAt, err = token.GetIssuedAt(); err != nil {
		return SessionClaims{}, err
	}
	if claims.TokenID, err = token.GetJti(); err != nil {
		return SessionClaims{}, err
	}
	return claims, nil
}
