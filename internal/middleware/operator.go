package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// operatorIDKey is the key used to store the operator identity in the Gin
// context.
const operatorIDKey = contextKey("operatorID")

// OperatorHeader names the header carrying the operator identity on admin
// requests.
const OperatorHeader = "X-Operator-ID"

// RequireOperatorID creates a Gin middleware that rejects requests lacking
// an operator identity header. Admin mutations are attributed to this value.
func RequireOperatorID() gin.HandlerFunc {
	return func(c *gin.Context) {
		operatorID := c.GetHeader(OperatorHeader)
		if operatorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + OperatorHeader + " header"})
			return
		}
		c.Set(string(operatorIDKey), operatorID)
		c.Next()
	}
}

// GetOperatorIDFromContext retrieves the operator identity from the Gin
// context. It returns the ID and a boolean indicating if it was found.
func GetOperatorIDFromContext(c *gin.Context) (string, bool) {
	operatorIDVal, exists := c.Get(string(operatorIDKey))
	if !exists {
		return "", false
	}

	operatorID, ok := operatorIDVal.(string)
	if !ok {
		return "", false
	}

	return operatorID, true
}
