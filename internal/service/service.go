// Package service implements the Vault use cases on top of the store.
// Services validate input, enforce ownership and translate failures into
// errors that carry an HTTP status.
package service

import (
	"log/slog"

	"github.com/vaultofgames/vault-server/internal/validation"
)

// validate is shared by every service; validator/v10 caches struct metadata.
var validate = validation.New()

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
