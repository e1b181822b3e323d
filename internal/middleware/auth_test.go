package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signed(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func claimsFor(userID string, admin bool, exp time.Time) Claims {
	return Claims{
		UserID:           userID,
		Admin:            admin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	}
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(testSecret))
	r.GET("/whoami", func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "admin": actor.GlobalAdmin})
	})
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func do(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()
	hour := time.Now().Add(time.Hour)

	tests := []struct {
		name   string
		auth   string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, `"missing_token"`},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, `"missing_token"`},
		{"bad signature", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte("other"), claimsFor("u1", false, hour)),
			http.StatusUnauthorized, `"invalid_token"`},
		{"expired", "Bearer " + signed(t, jwt.SigningMethodHS256, testSecret, claimsFor("u1", false, time.Now().Add(-time.Hour))),
			http.StatusUnauthorized, `"invalid_token"`},
		{"no subject", "Bearer " + signed(t, jwt.SigningMethodHS256, testSecret, claimsFor("", false, hour)),
			http.StatusUnauthorized, `"invalid_token"`},
		{"participant", "Bearer " + signed(t, jwt.SigningMethodHS256, testSecret, claimsFor("u1", false, hour)),
			http.StatusOK, `{"admin":false,"id":"u1"}`},
		{"global admin", "bearer " + signed(t, jwt.SigningMethodHS256, testSecret, claimsFor("root", true, hour)),
			http.StatusOK, `{"admin":true,"id":"root"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, "/whoami", tt.auth)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestAuthMiddlewarePublicPaths(t *testing.T) {
	w := do(newRouter(), "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
