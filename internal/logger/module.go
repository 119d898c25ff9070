package logger

import (
	"wallfleur-be/internal/config"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Provide(New),
	fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: l.Named("fx")}
	}),
)

// New initializes the global logger for the configured environment and returns it.
func New(cfg *config.Config) *zap.Logger {
	Init(cfg.AppEnv)
	return L()
}
