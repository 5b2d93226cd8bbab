package websocket

import (
	"crypto/subtle"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware creates a WebSocket authentication middleware. Browser
// WebSocket clients cannot set headers, so the token is accepted both via
// the Authorization header and the "token" query parameter.
func AuthMiddleware(apiToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			header := c.GetHeader("Authorization")
			token = strings.TrimPrefix(header, "Bearer ")
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Token não informado",
				"code":    "TOKEN_MISSING",
			})
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(apiToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Token inválido",
				"code":    "TOKEN_INVALID",
			})
			return
		}

		c.Next()
	}
}

// BuildWebSocketURL builds a WebSocket URL with token authentication
func BuildWebSocketURL(baseURL, token string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}

	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	return u.String()
}
