package transport

import (
	"wallfleur-be/internal/config"
	"wallfleur-be/internal/customer"
	"wallfleur-be/internal/logger"
	"wallfleur-be/internal/middleware"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config  *config.Config
	Handler *Handler
	Tokens  *customer.Tokens
	Limiter *middleware.Limiter
}

// NewRouter configures the gin engine with middleware and every route.
func NewRouter(p RouterParams) *gin.Engine {
	if p.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	engine.Use(logger.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(logger.Logger())
	engine.Use(middleware.CORS(p.Config.CORSOrigins))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(p.Limiter.Handler())

	h := p.Handler

	engine.GET("/health", h.Health)
	engine.POST("/login", h.Login)
	engine.POST("/set-international-session", h.SetInternationalSession)
	engine.POST("/get-international-session", h.GetInternationalSession)
	engine.GET("/products/:id", h.GetProduct)

	customerRoutes := engine.Group("")
	customerRoutes.Use(middleware.CustomerAuth(p.Tokens))
	customerRoutes.POST("/bag", h.Bag)
	customerRoutes.POST("/addtobag", h.AddToBag)
	customerRoutes.POST("/removefrombag", h.RemoveFromBag)
	customerRoutes.POST("/cartCount", h.CartCount)
	customerRoutes.POST("/createOrder", h.CreateRazorpayOrder)
	customerRoutes.POST("/verifyPayment", h.VerifyPayment)
	customerRoutes.POST("/createPayPalOrder", h.CreatePayPalOrder)
	customerRoutes.POST("/capturePayPalPayment", h.CapturePayPalPayment)
	customerRoutes.GET("/orders", h.CustomerOrders)

	internal := engine.Group("")
	internal.Use(middleware.InternalAuth(p.Config.InternalSecretKey))
	internal.POST("/reduce-quantity", h.ReduceQuantity)
	internal.POST("/restore-quantity", h.RestoreQuantity)

	admin := engine.Group("")
	admin.Use(middleware.AdminAuth(p.Tokens))
	admin.POST("/order-update", h.UpdateOrder)
	admin.GET("/manage-orders", h.ManageOrders)
	admin.GET("/order-detail/:id", h.OrderDetail)
	admin.GET("/metrics", h.Metrics)

	return engine
}
