// Package access decides whether an authenticated subject may touch a
// resource.
//
// Denials are reported as "not found" so a caller cannot tell a resource
// owned by someone else from one that does not exist.
package access

import (
	"github.com/vaultofgames/vault-server/internal/domain"
	"github.com/vaultofgames/vault-server/internal/store"
)

// EnforceGameOwner returns store.ErrGameNotFound unless subject owns game.
// A nil game is treated as missing.
func EnforceGameOwner(subject string, game *domain.Game) error {
	if game == nil || subject == "" || !game.OwnedBy(subject) {
		return store.ErrGameNotFound
	}
	return nil
}

// EnforceSelf returns store.ErrUserNotFound unless subject is userID.
func EnforceSelf(subject, userID string) error {
	if subject == "" || subject != userID {
		return store.ErrUserNotFound
	}
	return nil
}
