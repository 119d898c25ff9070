package transport

import (
	"errors"
	"net/http"

	"wallfleur-be/internal/cart"
	"wallfleur-be/internal/customer"
	"wallfleur-be/internal/logger"
	"wallfleur-be/internal/money"
	"wallfleur-be/internal/order"
	"wallfleur-be/internal/payment"
	"wallfleur-be/internal/pricing"
	"wallfleur-be/internal/product"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgInternal = "Internal Server Error"

type errorMapping struct {
	target  error
	status  int
	message string // empty means err.Error()
}

// errorTable is matched in order with errors.Is.
var errorTable = []errorMapping{
	// -- Validation & Input --
	{pricing.ErrAmountMismatch, http.StatusBadRequest, "Amount mismatch"},
	{money.ErrTooManyDecimal, http.StatusBadRequest, "Amount mismatch"},
	{money.ErrInvalidAmount, http.StatusBadRequest, "Amount is invalid"},
	{order.ErrInvalidInput, http.StatusBadRequest, ""},
	{order.ErrMissingCustomer, http.StatusBadRequest, ""},
	{order.ErrInvalidProvider, http.StatusBadRequest, ""},
	{pricing.ErrNoLines, http.StatusBadRequest, ""},
	{pricing.ErrInvalidQuantity, http.StatusBadRequest, ""},
	{pricing.ErrInvalidRegion, http.StatusBadRequest, ""},
	{product.ErrInvalidQuantity, http.StatusBadRequest, ""},
	{cart.ErrInvalidQuantity, http.StatusBadRequest, ""},
	{cart.ErrInvalidCustomerID, http.StatusBadRequest, ""},
	{payment.ErrUnknownProvider, http.StatusBadRequest, ""},

	// -- Authentication --
	{customer.ErrCustomerNotFound, http.StatusBadRequest, ""},
	{customer.ErrIncorrectPassword, http.StatusBadRequest, ""},
	{customer.ErrInvalidToken, http.StatusUnauthorized, "Unauthorized"},
	{customer.ErrInvalidRole, http.StatusUnauthorized, "Unauthorized"},

	// -- Resource State --
	{order.ErrOrderNotFound, http.StatusNotFound, ""},
	{pricing.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{cart.ErrCartItemNotFound, http.StatusNotFound, "Product not found in bag."},
	{order.ErrDuplicateProviderOrderID, http.StatusConflict, ""},

	// -- External Systems --
	{payment.ErrGatewayUnavailable, http.StatusInternalServerError, "Payment gateway unavailable"},
}

func statusFor(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			if m.message == "" {
				return m.status, m.target.Error()
			}
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, msgInternal
}

// respondError writes {"message": ...}. Stock failures also carry the product
// and quantities.
func respondError(c *gin.Context, err error) {
	var stockErr *pricing.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":   stockErr.Error(),
			"productId": stockErr.ProductID,
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
		return
	}

	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"message": message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}
