package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"wallfleur-be/internal/cart"
	"wallfleur-be/internal/config"
	"wallfleur-be/internal/customer"
	"wallfleur-be/internal/db"
	"wallfleur-be/internal/logger"
	"wallfleur-be/internal/metrics"
	"wallfleur-be/internal/middleware"
	"wallfleur-be/internal/notification"
	"wallfleur-be/internal/order"
	"wallfleur-be/internal/payment"
	"wallfleur-be/internal/pricing"
	"wallfleur-be/internal/product"
	"wallfleur-be/internal/session"
	"wallfleur-be/internal/transport"
	"wallfleur-be/internal/worker"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const readHeaderTimeout = 10 * time.Second

// Module composes the whole service. Extra options are appended last so
// tests can fx.Replace any dependency.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		db.Module,
		metrics.Module,
		payment.Module,
		pricing.Module,
		product.Module,
		cart.Module,
		customer.Module,
		session.Module,
		notification.Module,
		order.Module,
		transport.Module,
		worker.Module,
		runtimeModule,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

var runtimeModule = fx.Options(
	fx.Provide(newHTTPServer),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              ":" + p.Config.AppPort,
		Handler:           p.Router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *zap.Logger
	Server     *http.Server
	Sweeper    *worker.CartSweeper
	Limiter    *middleware.Limiter
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	var (
		stopBackground context.CancelFunc
		background     sync.WaitGroup
	)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", p.Server.Addr)
			if err != nil {
				return err
			}

			bgCtx, cancel := context.WithCancel(context.Background())
			stopBackground = cancel

			p.Sweeper.Start(bgCtx)
			background.Add(1)
			go func() {
				defer background.Done()
				p.Limiter.Run(bgCtx)
			}()

			p.Logger.Info("starting wallfleur", zap.String("addr", ln.Addr().String()), zap.String("env", p.Config.AppEnv))
			go func() {
				if err := p.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", zap.Error(err))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)

			p.Sweeper.Stop()
			if stopBackground != nil {
				stopBackground()
			}
			background.Wait()

			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("wallfleur stopped")
			logger.Sync()
			return nil
		},
	})
}
