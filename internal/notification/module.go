package notification

import "go.uber.org/fx"

var Module = fx.Provide(NewNotifier)
