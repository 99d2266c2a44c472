package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"web3stack-api/internal/entitlements"
	"web3stack-api/internal/questionnaire"
	"web3stack-api/internal/recommendations"
	"web3stack-api/internal/shared/config"
	"web3stack-api/internal/shared/server/middleware"
)

func testDeps(env string) RouterDeps {
	ent := entitlements.NewService(entitlements.DefaultOffer(), nil)
	recs := recommendations.NewService(nil, ent, recommendations.DefaultPreviewLimits())
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	return RouterDeps{
		Config:                 config.Config{Env: env, CORSAllowOrigin: []string{"http://localhost:5173"}},
		QuestionnaireHandler:   questionnaire.NewHandler(),
		RecommendationsHandler: recommendations.NewHandler(recs),
		EntitlementsHandler:    entitlements.NewHandler(ent),
		Limiter:                middleware.NewRateLimiter(func() time.Time { return now }),
	}
}

func serve(t *testing.T, deps RouterDeps, method, path, body string, guest bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if guest {
		req.Header.Set("X-Guest-Id", "router-test")
	}
	resp := httptest.NewRecorder()
	NewRouter(deps).ServeHTTP(resp, req)
	return resp
}

func TestRouterPublicRoutes(t *testing.T) {
	deps := testDeps("prod")
	for _, path := range []string{"/api/v1/health", "/api/v1/questionnaire", "/api/v1/catalog", "/metrics"} {
		resp := serve(t, deps, http.MethodGet, path, "", false)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
	}
}

func TestRouterProtectedRoutesNeedIdentity(t *testing.T) {
	deps := testDeps("prod")
	if resp := serve(t, deps, http.MethodGet, "/api/v1/entitlements", "", false); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if resp := serve(t, deps, http.MethodGet, "/api/v1/entitlements", "", true); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestRouterDevRoutesOnlyInDev(t *testing.T) {
	if resp := serve(t, testDeps("prod"), http.MethodPost, "/api/v1/dev/entitlements/reset", "", true); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 outside dev, got %d", resp.Code)
	}
	if resp := serve(t, testDeps("dev"), http.MethodPost, "/api/v1/dev/entitlements/reset", "", true); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 in dev, got %d", resp.Code)
	}
}

func TestRouterUnlockGroupIsRateLimited(t *testing.T) {
	deps := testDeps("prod")
	router := NewRouter(deps)

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/entitlements/unlock", strings.NewReader(`{"confirm":true}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Guest-Id", "router-test")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		codes = append(codes, resp.Code)
	}

	for i := 0; i < 3; i++ {
		if codes[i] != http.StatusOK {
			t.Fatalf("request %d expected 200, got %v", i+1, codes)
		}
	}
	if codes[3] != http.StatusTooManyRequests {
		t.Fatalf("request 4 expected 429, got %v", codes)
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
