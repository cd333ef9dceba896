package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vaultofgames/vault-server/internal/access"
	"github.com/vaultofgames/vault-server/internal/domain"
	"github.com/vaultofgames/vault-server/internal/store"
)

func TestEnforceGameOwner(t *testing.T) {
	game := &domain.Game{ID: "game-1", UserID: "user-1"}

	assert.NoError(t, access.EnforceGameOwner("user-1", game))

	foreign := access.EnforceGameOwner("user-2", game)
	missing := access.EnforceGameOwner("user-1", nil)
	assert.ErrorIs(t, foreign, store.ErrGameNotFound)
	assert.ErrorIs(t, missing, store.ErrGameNotFound)

	// Same status and message either way.
	assert.Equal(t, missing.Error(), foreign.Error())

	assert.ErrorIs(t, access.EnforceGameOwner("", game), store.ErrNotFound)
}

func TestEnforceSelf(t *testing.T) {
	assert.NoError(t, access.EnforceSelf("user-1", "user-1"))
	assert.ErrorIs(t, access.EnforceSelf("user-1", "user-2"), store.ErrUserNotFound)
	assert.ErrorIs(t, access.EnforceSelf("", ""), store.ErrUserNotFound)
}
