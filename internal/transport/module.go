package transport

import (
	"wallfleur-be/internal/config"
	"wallfleur-be/internal/middleware"

	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
)

var Module = fx.Provide(
	NewHandler,
	NewRouter,
	newLimiter,
	func(db *sqlx.DB) Pinger { return db },
)

func newLimiter(cfg *config.Config) *middleware.Limiter {
	return middleware.NewLimiter(cfg.InternalSecretKey)
}
