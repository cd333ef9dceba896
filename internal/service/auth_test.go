package service

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultofgames/vault-server/internal/auth"
	domainerrors "github.com/vaultofgames/vault-server/internal/errors"
	"github.com/vaultofgames/vault-server/internal/metrics"
	"github.com/vaultofgames/vault-server/internal/store"
	"github.com/vaultofgames/vault-server/internal/store/sqlstore"
)

// testEnv bundles services sharing one temporary database.
type testEnv struct {
	store      *sqlstore.Store
	tokens     *auth.TokenService
	metrics    *metrics.Metrics
	auth       *AuthService
	users      *UserService
	games      *GameService
	categories *CategoryService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := sqlstore.Open(context.Background(), sqlstore.DialectSQLite, filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	keys, err := auth.GenerateKeyPair()
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(keys, auth.FormatPASETO)
	require.NoError(t, err)

	m := metrics.New(prometheus.NewRegistry())

	return &testEnv{
		store:      s,
		tokens:     tokens,
		metrics:    m,
		auth:       NewAuthService(s, tokens, 15*time.Minute, m, nil),
		users:      NewUserService(s, nil),
		games:      NewGameService(s, m, nil),
		categories: NewCategoryService(s),
	}
}

// signUp creates a user and returns its id.
func (e *testEnv) signUp(t *testing.T, username string) string {
	t.Helper()
	u, err := e.auth.SignUp(context.Background(), SignUpRequest{Username: username, Password: "secret-" + username})
	require.NoError(t, err)
	return u.ID
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	var mapper domainerrors.StatusMapper
	require.True(t, domainerrors.As(err, &mapper), "error %v has no HTTP status", err)
	assert.Equal(t, status, mapper.HTTPStatus())
}

func TestAuthService_SignUp(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.SignUp(ctx, SignUpRequest{Username: "alice", Password: "hunter2"})
	require.NoError(t, err)

	assert.Regexp(t, `^user-`, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "hunter2", user.PasswordHash)
	assert.Regexp(t, `^\$argon2id\$`, user.PasswordHash)
	assert.Nil(t, user.UpdatedAt)

	ok, err := auth.VerifyPassword(user.PasswordHash, "hunter2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthService_SignUp_Duplicate(t *testing.T) {
	env := setupTestEnv(t)
	env.signUp(t, "alice")

	_, err := env.auth.SignUp(context.Background(), SignUpRequest{Username: "alice", Password: "other"})
	requireStatus(t, err, http.StatusConflict)
	assert.ErrorIs(t, err, store.ErrUsernameTaken)
}

func TestAuthService_SignUp_Invalid(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name string
		req  SignUpRequest
	}{
		{"empty username", SignUpRequest{Password: "x"}},
		{"blank username", SignUpRequest{Username: "  ", Password: "x"}},
		{"empty password", SignUpRequest{Username: "alice"}},
		{"password too long", SignUpRequest{Username: "alice", Password: string(make([]byte, 1025))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.SignUp(context.Background(), tt.req)
			requireStatus(t, err, http.StatusBadRequest)
		})
	}
}

func TestAuthService_SignIn(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	userID := env.signUp(t, "alice")

	result, err := env.auth.SignIn(ctx, SignInRequest{Username: "alice", Password: "secret-alice"})
	require.NoError(t, err)
	assert.Equal(t, TokenTypeBearer, result.TokenType)
	assert.NotEmpty(t, result.AccessToken)

	claims, err := env.tokens.Verify(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, 15*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt))

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.SignInAttempts.WithLabelValues(metrics.SignInSuccess)))
}

func TestAuthService_SignIn_Failures(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.signUp(t, "alice")

	_, err := env.auth.SignIn(ctx, SignInRequest{Username: "bob", Password: "whatever"})
	requireStatus(t, err, http.StatusNotFound)

	_, err = env.auth.SignIn(ctx, SignInRequest{Username: "alice", Password: "wrong"})
	requireStatus(t, err, http.StatusUnauthorized)
	assert.ErrorIs(t, err, domainerrors.ErrWrongCredentials)

	_, err = env.auth.SignIn(ctx, SignInRequest{Username: "alice"})
	requireStatus(t, err, http.StatusBadRequest)
	assert.ErrorIs(t, err, domainerrors.ErrMissingCredentials)
}

func TestAuthService_SignIn_CorruptStoredHash(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	userID := env.signUp(t, "alice")

	user, err := env.store.GetUser(ctx, userID)
	require.NoError(t, err)
	user.PasswordHash = "$argon2id$v=19$garbage"
	require.NoError(t, env.store.UpdateUser(ctx, user))

	_, err = env.auth.SignIn(ctx, SignInRequest{Username: "alice", Password: "secret-alice"})
	requireStatus(t, err, http.StatusInternalServerError)

	var mapper domainerrors.StatusMapper
	require.True(t, domainerrors.As(err, &mapper))
	assert.Equal(t, domainerrors.InternalMessage, mapper.PublicMessage())
}

func TestAuthService_SignIn_EmptyCredentialsSkipStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := sqlstore.New(db, sqlstore.DialectSQLite, nil)
	svc := NewAuthService(s, nil, time.Minute, nil, nil)

	for _, req := range []SignInRequest{
		{},
		{Username: "alice"},
		{Password: "secret"},
	} {
		_, err := svc.SignIn(context.Background(), req)
		assert.ErrorIs(t, err, domainerrors.ErrMissingCredentials)
	}

	// No expectations were registered: any query would have errored above.
	assert.NoError(t, mock.ExpectationsWereMet())
}
