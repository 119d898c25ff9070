package transport

import (
	"context"
	"net/http"
	"time"

	"wallfleur-be/internal/auth"
	"wallfleur-be/internal/cart"
	"wallfleur-be/internal/config"
	"wallfleur-be/internal/customer"
	"wallfleur-be/internal/logger"
	"wallfleur-be/internal/metrics"
	"wallfleur-be/internal/order"
	"wallfleur-be/internal/pricing"
	"wallfleur-be/internal/product"
	"wallfleur-be/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	customerCookieMaxAge = int(2 * time.Hour / time.Second)
	healthTimeout        = 2 * time.Second
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HandlerParams struct {
	fx.In

	Config    *config.Config
	DB        Pinger
	Orders    order.Service
	Products  product.Service
	Carts     cart.Service
	Customers customer.Service
	Sessions  *session.Manager
	Metrics   *metrics.Registry
}

type Handler struct {
	orders       order.Service
	products     product.Service
	carts        cart.Service
	customers    customer.Service
	sessions     *session.Manager
	metrics      *metrics.Registry
	db           Pinger
	cookieSecure bool
}

func NewHandler(p HandlerParams) *Handler {
	return &Handler{
		orders:       p.Orders,
		products:     p.Products,
		carts:        p.Carts,
		customers:    p.Customers,
		sessions:     p.Sessions,
		metrics:      p.Metrics,
		db:           p.DB,
		cookieSecure: p.Config.CookieSecure,
	}
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logger.FromCtx(ctx).Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Login handles POST /login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Email and password are required.")
		return
	}

	token, _, err := h.customers.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	auth.SetTokenCookie(c.Writer, auth.CustomerCookie, token, customerCookieMaxAge, h.cookieSecure)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// SetInternationalSession handles POST /set-international-session.
func (h *Handler) SetInternationalSession(c *gin.Context) {
	if err := h.sessions.SetRegion(c.Writer, true); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_international": true})
}

// GetInternationalSession handles POST /get-international-session.
func (h *Handler) GetInternationalSession(c *gin.Context) {
	international := h.sessions.Region(c.Request) == pricing.International
	c.JSON(http.StatusOK, gin.H{"is_international": international})
}

// Metrics handles GET /metrics.
func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}
