package transport

import (
	"net/http"

	"wallfleur-be/internal/cart"

	"github.com/gin-gonic/gin"
)

// Bag handles POST /bag.
func (h *Handler) Bag(c *gin.Context) {
	customerID, ok := requireCustomer(c)
	if !ok {
		return
	}

	items, err := h.carts.GetBag(c.Request.Context(), customerID, h.sessions.Region(c.Request))
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []cart.BagItem{}
	}
	c.JSON(http.StatusOK, gin.H{"products": items})
}

// AddToBag handles POST /addtobag. The request replaces the whole bag.
func (h *Handler) AddToBag(c *gin.Context) {
	customerID, ok := requireCustomer(c)
	if !ok {
		return
	}

	var req bagRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Products) == 0 {
		badRequest(c, "Product data is missing in request body.")
		return
	}

	items := make([]cart.SyncItem, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, cart.SyncItem{ProductID: p.ID, Quantity: p.Quantity})
	}

	if err := h.carts.Sync(c.Request.Context(), customerID, items); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Products added to bag successfully."})
}

// RemoveFromBag handles POST /removefrombag.
func (h *Handler) RemoveFromBag(c *gin.Context) {
	customerID, ok := requireCustomer(c)
	if !ok {
		return
	}

	var req removeFromBagRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID <= 0 {
		badRequest(c, "Product ID is missing in request body.")
		return
	}

	if err := h.carts.Remove(c.Request.Context(), customerID, req.ProductID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product removed from bag successfully."})
}

// CartCount handles POST /cartCount.
func (h *Handler) CartCount(c *gin.Context) {
	customerID, ok := requireCustomer(c)
	if !ok {
		return
	}

	count, err := h.carts.Count(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
