package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/vaultofgames/vault-server/internal/auth"
	"github.com/vaultofgames/vault-server/internal/config"
	"github.com/vaultofgames/vault-server/internal/logger"
)

// ProvideKeyPair loads the Ed25519 signing pair. A missing or malformed key
// file stops startup; run vault-keygen to create one.
func ProvideKeyPair(i do.Injector) (*auth.KeyPair, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	keys, err := auth.LoadKeyPair(cfg.Auth.PrivateKeyPath, cfg.Auth.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("load signing keys: %w", err)
	}

	log.Info("Signing keys loaded",
		"private_key", cfg.Auth.PrivateKeyPath,
		"public_key", cfg.Auth.PublicKeyPath,
		"access_token_duration", cfg.Auth.AccessTokenDuration,
	)

	return keys, nil
}

// ProvideTokenService provides the access token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	keys, err := do.Invoke[*auth.KeyPair](i)
	if err != nil {
		return nil, err
	}

	return auth.NewTokenService(keys, cfg.Auth.TokenFormat)
}
