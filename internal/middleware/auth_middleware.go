package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"carrental/internal/utils"
	"carrental/pkg/logger"

	"github.com/gin-gonic/gin"
)

const AdminKeyHeader = "X-Admin-Key"

// CustomerRequired validates the customer session token and sets the
// customer id on the gin and request contexts.
func CustomerRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.ErrorResponse(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Bearer token required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			message := utils.ErrInvalidToken
			if utils.IsTokenExpired(err) {
				message = utils.ErrTokenExpired
			}
			utils.ErrorResponse(c, http.StatusUnauthorized, utils.CodeUnauthorized, message)
			c.Abort()
			return
		}

		if claims.Role != utils.RoleCustomer || claims.CustomerID <= 0 {
			utils.ForbiddenResponse(c)
			c.Abort()
			return
		}

		// Set customer context
		c.Set(utils.ContextKeyCustomerID, claims.CustomerID)
		c.Set(utils.ContextKeyRole, claims.Role)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.CustomerIDKey, claims.CustomerID))

		c.Next()
	}
}

// AdminRequired checks the X-Admin-Key header. An empty key leaves the
// admin routes open.
func AdminRequired(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Set(utils.ContextKeyRole, utils.RoleAdmin)
			c.Next()
			return
		}

		provided := c.GetHeader(AdminKeyHeader)
		if provided == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			utils.ErrorResponse(c, http.StatusForbidden, utils.CodeForbidden, "Admin access required")
			c.Abort()
			return
		}

		c.Set(utils.ContextKeyRole, utils.RoleAdmin)
		c.Next()
	}
}

// GetCustomerID returns the customer id set by CustomerRequired.
func GetCustomerID(c *gin.Context) (int, bool) {
	value, exists := c.Get(utils.ContextKeyCustomerID)
	if !exists {
		return 0, false
	}
	customerID, ok := value.(int)
	return customerID, ok
}
