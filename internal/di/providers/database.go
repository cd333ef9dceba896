package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/vaultofgames/vault-server/internal/config"
	"github.com/vaultofgames/vault-server/internal/logger"
	"github.com/vaultofgames/vault-server/internal/store/sqlstore"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlstore.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the configured database and applies pending migrations.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dialect, err := sqlstore.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	db, err := sqlstore.Open(ctx, dialect, cfg.Database.URL, log.Logger)
	if err != nil {
		return nil, err
	}

	if dialect == sqlstore.DialectSQLite {
		log.Info("Database initialized", "driver", dialect, "path", cfg.Database.URL)
	} else {
		log.Info("Database initialized", "driver", dialect)
	}

	return &StoreHandle{Store: db}, nil
}
