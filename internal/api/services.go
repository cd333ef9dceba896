package api

import "github.com/vaultofgames/vault-server/internal/service"

// Services groups the business logic services used by the API server.
type Services struct {
	Auth     *service.AuthService
	User     *service.UserService
	Game     *service.GameService
	Category *service.CategoryService
}
