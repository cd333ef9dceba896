package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeGame(t *testing.T, body []byte) GameResponse {
	t.Helper()
	var g GameResponse
	require.NoError(t, json.Unmarshal(body, &g))
	return g
}

func (ts *testServer) createGame(t *testing.T, authz string, body map[string]any) GameResponse {
	t.Helper()
	resp := ts.api.Post("/v1/games", authz, body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decodeGame(t, resp.Body.Bytes())
}

func TestCreateGame(t *testing.T) {
	ts := setupTestServer(t)
	userID, authz := ts.signUpAndIn(t, "alice")

	g := ts.createGame(t, authz, map[string]any{
		"title":      "Hades",
		"status":     "completed",
		"rating":     10,
		"image_url":  "https://img.example/hades.png",
		"categories": []string{"roguelike", "rpg", "rpg", "action"},
	})

	assert.Regexp(t, `^game-`, g.ID)
	assert.Equal(t, userID, g.UserID)
	assert.Equal(t, "Hades", g.Title)
	require.NotNil(t, g.Status)
	assert.Equal(t, "completed", string(*g.Status))
	require.NotNil(t, g.Rating)
	assert.Equal(t, 10, *g.Rating)
	assert.Nil(t, g.Note)
	assert.Equal(t, []string{"action", "roguelike", "rpg"}, g.Categories)
}

func TestCreateGame_EmptyCategoriesIsArray(t *testing.T) {
	ts := setupTestServer(t)
	_, authz := ts.signUpAndIn(t, "alice")

	resp := ts.api.Post("/v1/games", authz, map[string]any{"title": "Tetris"})
	require.Equal(t, http.StatusCreated, resp.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &raw))
	assert.Equal(t, []any{}, raw["categories"])
}

func TestCreateGame_Invalid(t *testing.T) {
	ts := setupTestServer(t)
	_, authz := ts.signUpAndIn(t, "alice")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"rating": 5}},
		{"unknown status", map[string]any{"title": "Hades", "status": "abandoned"}},
		{"rating too high", map[string]any{"title": "Hades", "rating": 11}},
		{"rating negative", map[string]any{"title": "Hades", "rating": -1}},
		{"unknown field", map[string]any{"title": "Hades", "owner": "someone"}},
		{"too many categories", map[string]any{"title": "Hades", "categories": make([]string, 51)}},
		{"category name too long", map[string]any{"title": "Hades", "categories": []string{strings.Repeat("c", 65)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/v1/games", authz, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

			var body map[string]any
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.NotEmpty(t, body["message"])
			assert.Len(t, body, 1)
		})
	}
}

func TestListGames(t *testing.T) {
	ts := setupTestServer(t)
	_, alice := ts.signUpAndIn(t, "alice")
	_, bob := ts.signUpAndIn(t, "bob")

	ts.createGame(t, alice, map[string]any{"title": "First"})
	ts.createGame(t, alice, map[string]any{"title": "Second", "categories": []string{"puzzle"}})
	ts.createGame(t, bob, map[string]any{"title": "Bob's"})

	resp := ts.api.Get("/v1/games", alice)
	require.Equal(t, http.StatusOK, resp.Code)

	var games []GameResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &games))
	require.Len(t, games, 2)
	assert.Equal(t, "Second", games[0].Title)
	assert.Equal(t, []string{"puzzle"}, games[0].Categories)
	assert.Equal(t, "First", games[1].Title)
	assert.Equal(t, []string{}, games[1].Categories)

	// A user with no games gets an empty array, not null.
	_, carol := ts.signUpAndIn(t, "carol")
	resp = ts.api.Get("/v1/games", carol)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestGame_ForeignOwnerIndistinguishableFromMissing(t *testing.T) {
	ts := setupTestServer(t)
	_, alice := ts.signUpAndIn(t, "alice")
	_, bob := ts.signUpAndIn(t, "bob")

	g := ts.createGame(t, alice, map[string]any{"title": "Hades", "categories": []string{"roguelike"}})

	foreign := ts.api.Get("/v1/games/"+g.ID, bob)
	missing := ts.api.Get("/v1/games/game-does-not-exist", bob)
	assert.Equal(t, http.StatusNotFound, foreign.Code)
	assert.Equal(t, missing.Code, foreign.Code)
	assert.Equal(t, missing.Body.String(), foreign.Body.String())
	requireMessage(t, foreign.Body, "game not found")

	resp := ts.api.Patch("/v1/games/"+g.ID, bob, map[string]any{"title": "Stolen", "categories": []string{}})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, missing.Body.String(), resp.Body.String())

	resp = ts.api.Delete("/v1/games/"+g.ID, bob)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, missing.Body.String(), resp.Body.String())

	// Alice's game is untouched.
	resp = ts.api.Get("/v1/games/"+g.ID, alice)
	require.Equal(t, http.StatusOK, resp.Code)
	got := decodeGame(t, resp.Body.Bytes())
	assert.Equal(t, "Hades", got.Title)
	assert.Equal(t, []string{"roguelike"}, got.Categories)
}

func TestUpdateGame_Categories(t *testing.T) {
	ts := setupTestServer(t)
	_, authz := ts.signUpAndIn(t, "alice")

	g := ts.createGame(t, authz, map[string]any{
		"title":      "Hades",
		"note":       "great",
		"categories": []string{"roguelike", "action"},
	})

	// Omitted categories are kept; an omitted note is cleared.
	resp := ts.api.Patch("/v1/games/"+g.ID, authz, map[string]any{"title": "Hades II", "rating": 9})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	got := decodeGame(t, resp.Body.Bytes())
	assert.Equal(t, "Hades II", got.Title)
	assert.Equal(t, []string{"action", "roguelike"}, got.Categories)
	assert.Nil(t, got.Note)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 9, *got.Rating)
	assert.NotNil(t, got.UpdatedAt)

	// A list replaces.
	resp = ts.api.Patch("/v1/games/"+g.ID, authz, map[string]any{"title": "Hades II", "categories": []string{"roguelite"}})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{"roguelite"}, decodeGame(t, resp.Body.Bytes()).Categories)

	// An empty list clears.
	resp = ts.api.Patch("/v1/games/"+g.ID, authz, map[string]any{"title": "Hades II", "categories": []string{}})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{}, decodeGame(t, resp.Body.Bytes()).Categories)

	resp = ts.api.Get("/v1/games/"+g.ID, authz)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{}, decodeGame(t, resp.Body.Bytes()).Categories)

	// Title stays mandatory.
	resp = ts.api.Patch("/v1/games/"+g.ID, authz, map[string]any{"rating": 3})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	requireMessage(t, resp.Body, "title is required")
}

func TestDeleteGame(t *testing.T) {
	ts := setupTestServer(t)
	_, authz := ts.signUpAndIn(t, "alice")

	g := ts.createGame(t, authz, map[string]any{"title": "Hades", "categories": []string{"roguelike"}})

	resp := ts.api.Delete("/v1/games/"+g.ID, authz)
	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Empty(t, resp.Body.String())

	resp = ts.api.Get("/v1/games/"+g.ID, authz)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Delete("/v1/games/"+g.ID, authz)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// The shared vocabulary keeps the category.
	resp = ts.api.Get("/v1/categories", authz)
	require.Equal(t, http.StatusOK, resp.Code)
	var cats []CategoryResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &cats))
	require.Len(t, cats, 1)
	assert.Equal(t, "roguelike", cats[0].Name)
}

func TestCategories_SharedAcrossUsers(t *testing.T) {
	ts := setupTestServer(t)
	_, alice := ts.signUpAndIn(t, "alice")
	_, bob := ts.signUpAndIn(t, "bob")

	a := ts.createGame(t, alice, map[string]any{"title": "Civ", "categories": []string{"strategy"}})
	b := ts.createGame(t, bob, map[string]any{"title": "XCOM", "categories": []string{" strategy "}})
	assert.Equal(t, a.Categories, b.Categories)

	resp := ts.api.Get("/v1/categories", bob)
	require.Equal(t, http.StatusOK, resp.Code)
	var cats []CategoryResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &cats))
	require.Len(t, cats, 1)
	assert.Regexp(t, `^cat-`, cats[0].ID)
}

func TestUpdateGame_ClearsScalarFields(t *testing.T) {
	ts := setupTestServer(t)
	_, authz := ts.signUpAndIn(t, "alice")

	g := ts.createGame(t, authz, map[string]any{
		"title":      "Hades",
		"status":     "completed",
		"rating":     10,
		"note":       "great",
		"image_url":  "https://img.example/hades.png",
		"categories": []string{"roguelike"},
	})

	// An explicit null and an omitted field both clear.
	resp := ts.api.Patch("/v1/games/"+g.ID, authz, map[string]any{
		"title":  "Hades",
		"rating": nil,
		"status": "ended",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	got := decodeGame(t, resp.Body.Bytes())
	assert.Nil(t, got.Rating)
	assert.Nil(t, got.Note)
	assert.Nil(t, got.ImageURL)
	require.NotNil(t, got.Status)
	assert.Equal(t, "ended", string(*got.Status))
	assert.Equal(t, []string{"roguelike"}, got.Categories)

	resp = ts.api.Get("/v1/games/"+g.ID, authz)
	require.Equal(t, http.StatusOK, resp.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &raw))
	assert.Nil(t, raw["rating"])
	assert.Contains(t, raw, "rating")
}
