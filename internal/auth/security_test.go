package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "frame-ancestors 'none'")
}

func TestCSRFMiddleware_SafeMethodsPass(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")

	router := gin.New()
	router.Use(CSRFMiddleware(secret, false))
	router.GET("/form", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"csrf_token": GetCSRFToken(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/form", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"csrf_token":""`)
	assert.NotEmpty(t, w.Header().Get(CSRFTokenHeader))
}

func TestCSRFMiddleware_RejectsPostWithoutToken(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")

	handlerRan := false
	router := gin.New()
	router.Use(CSRFMiddleware(secret, false))
	router.POST("/api/books", func(c *gin.Context) {
		handlerRan = true
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "CSRF")
	assert.False(t, handlerRan)
}
