package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// DebugAuthConfig contains the credential pair protecting debug endpoints.
// The password is never kept in clear text; only its bcrypt hash is loaded
// from the environment.
type DebugAuthConfig struct {
	Username     string
	PasswordHash string
}

// Enabled reports whether debug auth has credentials configured. When not
// configured the protected endpoints are disabled entirely rather than left
// open.
func (c DebugAuthConfig) Enabled() bool {
	return c.Username != "" && c.PasswordHash != ""
}

// HashPassword creates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a password with its hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// DebugAuth returns a middleware enforcing HTTP basic auth against the
// configured bcrypt hash.
func DebugAuth(cfg DebugAuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok || user != cfg.Username || !CheckPassword(pass, cfg.PasswordHash) {
			c.Header("WWW-Authenticate", `Basic realm="debug"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "credenciais inválidas",
			})
			return
		}
		c.Next()
	}
}
