package db

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewDatabase),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, database *sqlx.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return database.Close()
		},
	})
}
