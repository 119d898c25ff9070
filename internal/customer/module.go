package customer

import "go.uber.org/fx"

var Module = fx.Provide(
	NewTokens,
	NewRepository,
	NewService,
)
