package pricing

import "go.uber.org/fx"

var Module = fx.Provide(
	NewFeePolicy,
	NewEngine,
)
