package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/pkg/jwt"
)

func newAuthRouter(mgr *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/protected", AuthMiddleware(mgr), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetString(UserIDKey),
			"email":  c.GetString(UserEmailKey),
		})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	mgr := jwt.NewManager("test-secret", time.Hour)
	token, err := mgr.GenerateAccessToken("user-1", "user@example.com")
	require.NoError(t, err)

	w := doRequest(newAuthRouter(mgr), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), "user@example.com")
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	mgr := jwt.NewManager("test-secret", time.Hour)

	w := doRequest(newAuthRouter(mgr), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	mgr := jwt.NewManager("test-secret", time.Hour)
	token, err := mgr.GenerateAccessToken("user-1", "user@example.com")
	require.NoError(t, err)

	for _, header := range []string{"Basic abc", token} {
		w := doRequest(newAuthRouter(mgr), header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	other := jwt.NewManager("other-secret", time.Hour)
	token, err := other.GenerateAccessToken("user-1", "user@example.com")
	require.NoError(t, err)

	w := doRequest(newAuthRouter(jwt.NewManager("test-secret", time.Hour)), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	mgr := jwt.NewManager("test-secret", -time.Minute)
	token, err := mgr.GenerateAccessToken("user-1", "user@example.com")
	require.NoError(t, err)

	w := doRequest(newAuthRouter(mgr), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
