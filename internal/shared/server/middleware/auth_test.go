package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func identityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Identity())
	router.GET("/open", func(c *gin.Context) {
		c.String(http.StatusOK, UserIDFromContext(c))
	})
	protected := router.Group("/", RequireIdentity())
	protected.Any("/closed", func(c *gin.Context) {
		c.String(http.StatusOK, UserIDFromContext(c))
	})
	return router
}

func TestRequireIdentityAllowsOptionsWithoutIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/closed", nil)
	resp := httptest.NewRecorder()
	identityRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestRequireIdentityRejectsAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/closed", nil)
	resp := httptest.NewRecorder()
	identityRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"code":"unauthorized"`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestIdentityPrefixesGuest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/closed", nil)
	req.Header.Set("X-Guest-Id", "  abc123 ")
	resp := httptest.NewRecorder()
	identityRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Body.String() != "guest:abc123" {
		t.Fatalf("unexpected user id %q", resp.Body.String())
	}
}

func TestIdentityOptionalOnOpenRoutes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	resp := httptest.NewRecorder()
	identityRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK || resp.Body.String() != "" {
		t.Fatalf("expected anonymous 200, got %d %q", resp.Code, resp.Body.String())
	}
}

func TestIdentityIgnoresOversizedGuestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/closed", nil)
	req.Header.Set("X-Guest-Id", strings.Repeat("x", maxGuestIDBytes+1))
	resp := httptest.NewRecorder()
	identityRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
