package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "PORT", "DATABASE_URL", "ENTITLEMENT_STORE", "CATALOG_PATH",
		"PREMIUM_PRICE_CENTS", "PREMIUM_CURRENCY", "PREVIEW_CATEGORIES", "PREVIEW_RESOURCES",
		"CORS_ALLOW_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, StoreMemory, cfg.EntitlementStore)
	assert.Equal(t, 1999, cfg.PremiumPriceCents)
	assert.Equal(t, "USD", cfg.PremiumCurrency)
	assert.Equal(t, 2, cfg.PreviewCategories)
	assert.Equal(t, 2, cfg.PreviewResources)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowOrigin)
	assert.True(t, cfg.IsDevLike())
}

func TestLoadStoreSelection(t *testing.T) {
	t.Run("database url implies postgres", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://localhost/stack")
		assert.Equal(t, StorePostgres, Load().EntitlementStore)
	})

	t.Run("explicit sqlite wins", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://localhost/stack")
		t.Setenv("ENTITLEMENT_STORE", "sqlite3")
		assert.Equal(t, StoreSQLite, Load().EntitlementStore)
	})
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PREVIEW_CATEGORIES", "lots")
	t.Setenv("PREMIUM_PRICE_CENTS", "-5")

	cfg := Load()
	assert.Equal(t, 2, cfg.PreviewCategories)
	assert.Equal(t, 1999, cfg.PremiumPriceCents)
}

func TestLoadReadsDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv("PREMIUM_CURRENCY"))
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PREMIUM_CURRENCY=eur\n"), 0o600))
	t.Chdir(dir)
	t.Cleanup(func() { _ = os.Unsetenv("PREMIUM_CURRENCY") })

	cfg := Load()
	assert.Equal(t, "EUR", cfg.PremiumCurrency)
}
