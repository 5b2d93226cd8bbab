package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func newBearerRouter(token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(BearerAuth(AuthConfig{TokenAPI: token}))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

// Para qualquer token configurado, apenas o token exato deve passar pelo
// middleware; qualquer outro valor recebe 401.
func TestBearerAuthTokenConsistency(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("correct token is accepted", prop.ForAll(
		func(token string) bool {
			if token == "" {
				return true
			}
			router := newBearerRouter(token)

			req, _ := http.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			return w.Code == http.StatusOK
		},
		gen.AlphaString(),
	))

	properties.Property("wrong token is rejected", prop.ForAll(
		func(token, wrong string) bool {
			if token == "" || token == wrong {
				return true
			}
			router := newBearerRouter(token)

			req, _ := http.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+wrong)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestBearerAuthMalformedHeader(t *testing.T) {
	router := newBearerRouter("secret")

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", "secret"},
		{"wrong scheme", "Basic secret"},
		{"empty token", "Bearer "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestBearerAuthCaseInsensitiveScheme(t *testing.T) {
	router := newBearerRouter("secret")

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "bearer secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("lowercase scheme should be accepted, got %d", w.Code)
	}
}
