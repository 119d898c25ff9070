package transport

import (
	"net/http"

	"wallfleur-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// currentCustomerID returns the id stored by the customer auth middleware.
func currentCustomerID(c *gin.Context) (int64, bool) {
	id, ok := utils.GetUserIDFromContext(c.Request.Context())
	return id, ok && id > 0
}

// requireCustomer writes 401 and returns false when no customer is attached.
func requireCustomer(c *gin.Context) (int64, bool) {
	id, ok := currentCustomerID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is missing."})
	}
	return id, ok
}
