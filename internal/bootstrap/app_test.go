package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web3stack-api/internal/shared/config"
)

func baseConfig() config.Config {
	return config.Config{
		Env:               "test",
		EntitlementStore:  config.StoreMemory,
		PremiumPriceCents: 2500,
		PremiumCurrency:   "EUR",
		PreviewCategories: 3,
		PreviewResources:  1,
	}
}

func TestBuildMemory(t *testing.T) {
	app, err := Build(context.Background(), baseConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Nil(t, app.DB)
	assert.NotNil(t, app.Router)
	assert.Equal(t, 2500, app.EntitlementService.Offer().PriceCents)
	assert.Equal(t, "EUR", app.EntitlementService.Offer().Currency)
	assert.Equal(t, 3, app.RecommendationService.Limits.Categories)
}

func TestBuildSQLiteServesUnlock(t *testing.T) {
	cfg := baseConfig()
	cfg.EntitlementStore = config.StoreSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "nested", "ent.db")

	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	require.NotNil(t, app.DB)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entitlements/unlock", strings.NewReader(`{"confirm":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "boot")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	unlocked, err := app.EntitlementService.IsUnlocked(context.Background(), "guest:boot")
	require.NoError(t, err)
	assert.True(t, unlocked)
}

func TestBuildPostgresRequiresURL(t *testing.T) {
	cfg := baseConfig()
	cfg.EntitlementStore = config.StorePostgres
	_, err := Build(context.Background(), cfg)
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestBuildCustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
technologies:
  - {id: solana, name: Solana, description: d, category: blockchain, url: "https://solana.com", difficulty: advanced}
`), 0o600))

	cfg := baseConfig()
	cfg.CatalogPath = path
	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, app.Catalog.Technologies(), 1)

	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = Build(context.Background(), cfg)
	assert.Error(t, err)
}
