package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vaultofgames/vault-server/internal/auth"
	"github.com/vaultofgames/vault-server/internal/domain"
	domainerrors "github.com/vaultofgames/vault-server/internal/errors"
	"github.com/vaultofgames/vault-server/internal/id"
	"github.com/vaultofgames/vault-server/internal/metrics"
	"github.com/vaultofgames/vault-server/internal/store"
)

// TokenTypeBearer is the only token type the server issues.
const TokenTypeBearer = "Bearer"

// AuthService handles sign-up and sign-in.
type AuthService struct {
	store          store.Store
	tokenService   *auth.TokenService
	accessTokenTTL time.Duration
	metrics        *metrics.Metrics
	logger         *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store store.Store,
	tokenService *auth.TokenService,
	accessTokenTTL time.Duration,
	metrics *metrics.Metrics,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:          store,
		tokenService:   tokenService,
		accessTokenTTL: accessTokenTTL,
		metrics:        metrics,
		logger:         orDiscard(logger),
	}
}

// SignUpRequest contains the credentials for a new account.
type SignUpRequest struct {
	Username string `json:"username" validate:"notblank,max=64"`
	Password string `json:"password" validate:"required,maxbytes=1024"`
}

// SignInRequest contains the credentials of an existing account.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignInResult is a freshly issued access token.
type SignInResult struct {
	AccessToken string
	TokenType   string
	Claims      *auth.SessionClaims
}

// SignUp creates a user with a hashed password.
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*domain.User, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, domainerrors.Internal("hash password", err)
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, domainerrors.Internal("generate user id", err)
	}

	user := &domain.User{
		ID:           userID,
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", "user_id", user.ID)
	return user, nil
}

// SignIn checks the credentials and issues an access token.
//
// Empty credentials are rejected before the store is consulted. An unknown
// username is reported as not found, a wrong password as wrong credentials.
func (s *AuthService) SignIn(ctx context.Context, req SignInRequest) (*SignInResult, error) {
	if req.Username == "" || req.Password == "" {
		s.metrics.SignIn(metrics.SignInMissingCredentials)
		return nil, domainerrors.ErrMissingCredentials
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.metrics.SignIn(metrics.SignInUnknownUser)
			return nil, err
		}
		s.metrics.SignIn(metrics.SignInError)
		return nil, domainerrors.Internal("lookup user", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		s.metrics.SignIn(metrics.SignInError)
		s.logger.Error("stored credential is unreadable", "user_id", user.ID, "error", err)
		return nil, domainerrors.Internal("verify password", err)
	}
	if !ok {
		s.metrics.SignIn(metrics.SignInWrongPassword)
		return nil, domainerrors.ErrWrongCredentials
	}

	token, claims, err := s.tokenService.Issue(user.ID, s.accessTokenTTL)
	if err != nil {
		s.metrics.SignIn(metrics.SignInError)
		return nil, domainerrors.ErrTokenCreation.WithCause(err)
	}

	s.metrics.SignIn(metrics.SignInSuccess)
	s.logger.Info("user signed in", "user_id", user.ID, "token_id", claims.TokenID)

	return &SignInResult{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		Claims:      claims,
	}, nil
}
