package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/config"
	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Level      string          `json:"level"`
	Redirect   string          `json:"redirect"`
	Data       json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code)
	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestResolveAllowedOrigin(t *testing.T) {
	assert.Equal(t, "*", resolveAllowedOrigin("https://example.com", []string{"*"}, false))
	assert.Equal(t, "https://example.com", resolveAllowedOrigin("https://example.com", []string{"*"}, true))
	assert.Equal(t, "https://a.example.com",
		resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false))
	assert.Empty(t, resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false))
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORSMiddleware(config.CORSConfig{
		AllowedOrigins: []string{"https://shop.example.com"},
		MaxAge:         600,
	}))
	r.POST("/checkout", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/checkout", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get(requestIDHeader))
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-123", resp["request_id"])

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, strings.TrimSpace(w2.Header().Get(requestIDHeader)))
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))

	resp := decodeEnvelope(t, w)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestUserJWTAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := setupRouterTest(t)

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		w := env.do(t, http.MethodGet, "/api/v1/order-summary", header, nil)
		resp := decodeEnvelope(t, w)
		assert.Equal(t, 401, resp.StatusCode, "header %q", header)
	}
}

func TestUserJWTAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := setupRouterTest(t)
	token := env.registerUser(t, "revoked@example.com")

	require.NoError(t, env.db.Exec("UPDATE users SET token_version = token_version + 1").Error)
	cache.UseClient(nil, "")

	w := env.do(t, http.MethodGet, "/api/v1/me", "Bearer "+token, nil)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAdminRBACMiddlewareSuperBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(handlershared.ContextKeyIsSuper, true)
		c.Next()
	})
	r.Use(AdminRBACMiddleware(setupRouterTest(t).container.AuthzService))
	r.POST("/api/v1/admin/items", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/items", nil))
	assert.Contains(t, w.Body.String(), `"ok":true`)
}
