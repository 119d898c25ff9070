package transport

import (
	"net/http"

	"wallfleur-be/internal/logger"
	"wallfleur-be/internal/product"
	"wallfleur-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetProduct handles GET /products/:id and prices the product for the
// caller's region.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		badRequest(c, "Invalid product id.")
		return
	}

	p, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product.ToView(*p, h.sessions.Region(c.Request)))
}

// ReduceQuantity handles POST /reduce-quantity.
func (h *Handler) ReduceQuantity(c *gin.Context) {
	h.adjustStock(c, false)
}

// RestoreQuantity handles POST /restore-quantity.
func (h *Handler) RestoreQuantity(c *gin.Context) {
	h.adjustStock(c, true)
}

func (h *Handler) adjustStock(c *gin.Context, restore bool) {
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Products) == 0 {
		badRequest(c, "Product data is missing in request body.")
		return
	}

	ctx := c.Request.Context()
	items := req.adjustments(restore)

	var (
		results []product.AdjustmentResult
		err     error
	)
	if restore {
		results, err = h.products.RestoreBatch(ctx, items)
	} else {
		results, err = h.products.ReduceBatch(ctx, items)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if !restore {
		for _, r := range results {
			if r.Message != product.MsgReduced {
				h.metrics.StockReductionsFailed.Inc()
				logger.FromCtx(ctx).Warn("stock reduction failed",
					zap.Int64("product_id", r.ProductID),
					zap.String("reason", r.Message),
				)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
