package worker

import (
	"wallfleur-be/internal/cart"

	"go.uber.org/fx"
)

var Module = fx.Provide(
	func(c cart.Service) ExpiredCartSweeper { return c },
	newCartSweeperFromConfig,
)
