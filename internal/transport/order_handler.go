package transport

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"wallfleur-be/internal/money"
	"wallfleur-be/internal/order"
	"wallfleur-be/internal/payment"
	"wallfleur-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// CreateRazorpayOrder handles POST /createOrder.
func (h *Handler) CreateRazorpayOrder(c *gin.Context) {
	res, ok := h.createOrder(c, payment.ProviderRazorpay)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res.Remote)
}

// CreatePayPalOrder handles POST /createPayPalOrder.
func (h *Handler) CreatePayPalOrder(c *gin.Context) {
	res, ok := h.createOrder(c, payment.ProviderPayPal)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"approvalUrl": res.Remote.ApprovalURL,
		"id":          res.Remote.ProviderOrderID,
	})
}

func (h *Handler) createOrder(c *gin.Context, provider payment.Provider) (*order.CreateOrderResult, bool) {
	customerID, ok := requireCustomer(c)
	if !ok {
		return nil, false
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return nil, false
	}
	if !req.Amount.IsPositive() {
		badRequest(c, "Amount is missing in request body.")
		return nil, false
	}
	amount, err := money.ToMinor(req.Amount)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	res, err := h.orders.CreateOrder(c.Request.Context(), order.CreateOrderInput{
		CustomerID: customerID,
		Amount:     amount,
		Customer:   req.UserData,
		Lines:      req.lines(),
		Region:     h.sessions.Region(c.Request),
		Provider:   provider,
	})
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return res, true
}

// VerifyPayment handles POST /verifyPayment.
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		badRequest(c, "Order ID, Payment ID or Signature is missing in request body.")
		return
	}
	h.settle(c, order.SettleInput{
		Provider:        payment.ProviderRazorpay,
		ProviderOrderID: req.OrderID,
		PaymentID:       req.PaymentID,
		Signature:       req.Signature,
	})
}

// CapturePayPalPayment handles POST /capturePayPalPayment.
func (h *Handler) CapturePayPalPayment(c *gin.Context) {
	var req capturePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		badRequest(c, "Order ID is missing in request body.")
		return
	}
	h.settle(c, order.SettleInput{
		Provider:        payment.ProviderPayPal,
		ProviderOrderID: req.OrderID,
	})
}

func (h *Handler) settle(c *gin.Context, in order.SettleInput) {
	customerID, ok := requireCustomer(c)
	if !ok {
		return
	}
	in.CustomerID = customerID

	_, err := h.orders.SettlePayment(c.Request.Context(), in)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	case errors.Is(err, order.ErrPaymentRejected):
		c.JSON(http.StatusBadRequest, gin.H{"status": "failure"})
	default:
		respondError(c, err)
	}
}

// CustomerOrders handles GET /orders.
func (h *Handler) CustomerOrders(c *gin.Context) {
	customerID, ok := requireCustomer(c)
	if !ok {
		return
	}

	orders, err := h.orders.CustomerOrders(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrder handles POST /order-update.
func (h *Handler) UpdateOrder(c *gin.Context) {
	var req orderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body.")
		return
	}
	if req.Currency != "" && !req.Currency.Valid() {
		badRequest(c, "Unsupported currency.")
		return
	}

	patch, err := req.patch()
	if err != nil {
		respondError(c, err)
		return
	}

	o, err := h.orders.AdminUpdateOrder(c.Request.Context(), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// ManageOrders handles GET /manage-orders.
func (h *Handler) ManageOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	orders, total, err := h.orders.ListOrders(c.Request.Context(), order.ListFilter{
		Page:     page,
		Limit:    limit,
		Currency: money.Currency(strings.ToUpper(c.Query("currency"))),
		Status:   order.Status(c.Query("status")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "totalOrders": total})
}

// OrderDetail handles GET /order-detail/:id.
func (h *Handler) OrderDetail(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		badRequest(c, "Invalid order id.")
		return
	}

	o, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o})
}
