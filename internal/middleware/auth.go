package middleware

import (
	"crypto/subtle"
	"net/http"

	"wallfleur-be/internal/auth"
	"wallfleur-be/internal/customer"
	"wallfleur-be/internal/logger"
	"wallfleur-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgUnauthorized = "Unauthorized"

// CustomerAuth requires a valid customer token from the access_token cookie or
// a Bearer header.
func CustomerAuth(tokens *customer.Tokens) gin.HandlerFunc {
	return requireToken(tokens.Customer, auth.CustomerCookie)
}

// AdminAuth requires a token signed with the admin secret and carrying the admin role.
func AdminAuth(tokens *customer.Tokens) gin.HandlerFunc {
	return requireToken(tokens.Admin, auth.AdminCookie)
}

func requireToken(issuer *customer.TokenIssuer, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := auth.ExtractToken(c.Request, cookieName)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
			return
		}

		claims, err := issuer.Parse(tokenStr)
		if err != nil {
			logger.FromCtx(c.Request.Context()).Info("rejected token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
			return
		}

		role := string(claims.Role)
		if role == "" {
			role = string(customer.RoleCustomer)
		}
		c.Request = c.Request.WithContext(
			utils.SetUserContext(c.Request.Context(), claims.UserID, claims.Email, role),
		)
		c.Next()
	}
}

// InternalAuth admits trusted services presenting the shared internal key.
// An unset key rejects every request.
func InternalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := auth.ExtractServiceKey(c.Request)
		if secret == "" || subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
			return
		}
		c.Request = c.Request.WithContext(utils.WithInternalRequest(c.Request.Context()))
		c.Next()
	}
}
