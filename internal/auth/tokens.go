package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const tokenIssuer = "vault-server"

// Token wire formats.
const (
	FormatPASETO = "paseto"
	FormatJWT    = "jwt"
)

// ErrInvalidToken covers every reason a token is refused: bad signature,
// malformed payload, missing subject or expiry.
var ErrInvalidToken = errors.New("invalid token")

// tokenCodec turns claims into a signed string and back. Codecs check the
// signature only; expiry is decided by TokenService.
type tokenCodec interface {
	sign(claims SessionClaims) (string, error)
	parse(token string) (SessionClaims, error)
}

// TokenService issues and verifies signed access tokens.
type TokenService struct {
	codec tokenCodec
	now   func() time.Time
}

// Option configures a TokenService.
type Option func(*TokenService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService creates a token service signing with keys in the given
// wire format.
func NewTokenService(keys *KeyPair, format string, opts ...Option) (*TokenService, error) {
	if keys == nil {
		return nil, errors.New("token service requires a key pair")
	}

	var (
		codec tokenCodec
		err   error
	)
	switch format {
	case FormatPASETO, "":
		codec, err = newPASETOCodec(keys)
	case FormatJWT:
		codec = newJWTCodec(keys)
	default:
		return nil, fmt.Errorf("unknown token format %q", format)
	}
	if err != nil {
		return nil, err
	}

	s := &TokenService{codec: codec, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a token for subject that expires ttl from now.
// Timestamps are truncated to whole seconds.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, *SessionClaims, error) {
	if subject == "" {
		return "", nil, errors.New("token subject cannot be empty")
	}
	if ttl <= 0 {
		return "", nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	now := s.now().Truncate(time.Second)
	claims := SessionClaims{
		Subject:   subject,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl).Truncate(time.Second),
		TokenID:   uuid.NewString(),
	}

	token, err := s.codec.sign(claims)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, &claims, nil
}

// Verify checks the signature and expiry of token.
// A token is accepted only while expires_at is strictly after now, compared
// in whole seconds.
func (s *TokenService) Verify(token string) (*SessionClaims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.codec.parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if claims.ExpiresAt.IsZero() {
		return nil, fmt.Errorf("%w: missing expiry", ErrInvalidToken)
	}
	if claims.ExpiresAt.Unix() <= s.now().Unix() {
		return nil, fmt.Errorf("%w: expired", ErrInvalidToken)
	}

	return &claims, nil
}
