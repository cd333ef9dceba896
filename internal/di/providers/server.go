package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/vaultofgames/vault-server/internal/api"
	"github.com/vaultofgames/vault-server/internal/auth"
	"github.com/vaultofgames/vault-server/internal/config"
	"github.com/vaultofgames/vault-server/internal/logger"
	"github.com/vaultofgames/vault-server/internal/metrics"
	"github.com/vaultofgames/vault-server/internal/service"
)

// shutdownTimeout bounds graceful shutdown and the startup migration run.
const shutdownTimeout = 30 * time.Second

// Version is reported by the health endpoint. Set at build time with
// -ldflags "-X github.com/vaultofgames/vault-server/internal/di/providers.Version=...".
var Version = "dev"

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Auth:     do.MustInvoke[*service.AuthService](i),
		User:     do.MustInvoke[*service.UserService](i),
		Game:     do.MustInvoke[*service.GameService](i),
		Category: do.MustInvoke[*service.CategoryService](i),
	}

	handler := api.NewServer(api.Config{
		Version:            Version,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	}, storeHandle.Store, services, tokens, m, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
