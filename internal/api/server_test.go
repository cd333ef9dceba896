package api

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultofgames/vault-server/internal/auth"
	"github.com/vaultofgames/vault-server/internal/metrics"
	"github.com/vaultofgames/vault-server/internal/service"
	"github.com/vaultofgames/vault-server/internal/store/sqlstore"
)

// testServer is a fully wired server over a temporary SQLite database.
type testServer struct {
	*Server
	api     humatest.TestAPI
	keys    *auth.KeyPair
	store   *sqlstore.Store
	metrics *metrics.Metrics
}

// setupTestServer creates a test server with all dependencies.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlstore.Open(context.Background(), sqlstore.DialectSQLite, filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	keys, err := auth.GenerateKeyPair()
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(keys, auth.FormatPASETO)
	require.NoError(t, err)

	m := metrics.New(prometheus.NewRegistry())

	services := &Services{
		Auth:     service.NewAuthService(st, tokens, 15*time.Minute, m, nil),
		User:     service.NewUserService(st, nil),
		Game:     service.NewGameService(st, m, nil),
		Category: service.NewCategoryService(st),
	}

	s := NewServer(Config{Version: "test"}, st, services, tokens, m, nil)

	return &testServer{
		Server:  s,
		api:     humatest.Wrap(t, s.API()),
		keys:    keys,
		store:   st,
		metrics: m,
	}
}

// signUpAndIn creates a user and returns its id and a bearer header.
func (ts *testServer) signUpAndIn(t *testing.T, username string) (userID, authHeader string) {
	t.Helper()

	creds := map[string]any{"username": username, "password": "pw-" + username}

	resp := ts.api.Post("/v1/users/sign-up", creds)
	require.Equal(t, http.StatusCreated, resp.Code, "sign-up failed: %s", resp.Body.String())
	var user UserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &user))

	resp = ts.api.Post("/v1/users/sign-in", creds)
	require.Equal(t, http.StatusOK, resp.Code, "sign-in failed: %s", resp.Body.String())
	var tok SignInResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tok))

	return user.ID, "Authorization: Bearer " + tok.AccessToken
}

// requireMessage asserts an error response of exactly {"message": want}.
func requireMessage(t *testing.T, resp interface{ Bytes() []byte }, want string) {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Bytes(), &body))
	assert.Equal(t, map[string]any{"message": want}, body)
}

func TestServer_UnknownRoute(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/v1/nope")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestServer_MetricsEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	// One rejected and one allowed gate decision.
	ts.api.Get("/v1/games")
	_, authz := ts.signUpAndIn(t, "alice")
	ts.api.Get("/v1/games", authz)

	resp := ts.api.Get("/metrics")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `vault_auth_gate_decisions_total{outcome="missing_header"} 1`)
	assert.Contains(t, body, `vault_auth_gate_decisions_total{outcome="allowed"} 1`)
	assert.Contains(t, body, `vault_sign_in_attempts_total{outcome="success"} 1`)
	assert.Contains(t, body, `route="/v1/games"`)
}

func TestServer_CORS(t *testing.T) {
	st, err := sqlstore.Open(context.Background(), sqlstore.DialectSQLite, filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	keys, err := auth.GenerateKeyPair()
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(keys, auth.FormatJWT)
	require.NoError(t, err)

	s := NewServer(Config{CORSAllowedOrigins: []string{"https://vault.example"}}, st, &Services{}, tokens, nil, nil)
	api := humatest.Wrap(t, s.API())

	resp := api.Get("/health", "Origin: https://vault.example")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "https://vault.example", resp.Header().Get("Access-Control-Allow-Origin"))

	// No metrics registry, no endpoint.
	resp = api.Get("/metrics")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
