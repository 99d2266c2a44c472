package entitlements

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web3stack-api/internal/shared/storage/db"
)

func newSQLiteService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	sqlDB, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "entitlements.db"), db.SQLiteOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.RunMigrations(ctx, sqlDB, db.DriverSQLite))
	return NewStoreService(NewSQLiteStore(sqlDB), DefaultOffer(), nil)
}

func TestSQLiteStoreUnlockRoundTrip(t *testing.T) {
	svc := newSQLiteService(t)
	fixed := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	unlocked, err := svc.IsUnlocked(ctx, "guest:a")
	require.NoError(t, err)
	assert.False(t, unlocked)

	first, err := svc.Unlock(ctx, "guest:a")
	require.NoError(t, err)
	assert.True(t, first.Unlocked)

	stored, err := svc.Get(ctx, "guest:a")
	require.NoError(t, err)
	assert.Equal(t, PlanPremium, stored.Plan)
	assert.Equal(t, first.ReceiptID, stored.ReceiptID)
	require.NotNil(t, stored.UnlockedAt)
	assert.True(t, fixed.Equal(*stored.UnlockedAt))

	second, err := svc.Unlock(ctx, "guest:a")
	require.NoError(t, err)
	assert.Equal(t, first.ReceiptID, second.ReceiptID)
}

func TestSQLiteStoreGrantDoesNotOverwritePremium(t *testing.T) {
	svc := newSQLiteService(t)
	st := svc.store
	ctx := context.Background()

	_, granted, err := st.Grant(ctx, "guest:a", "rcpt-1", time.Now())
	require.NoError(t, err)
	assert.True(t, granted)

	e, granted, err := st.Grant(ctx, "guest:a", "rcpt-2", time.Now())
	require.NoError(t, err)
	assert.False(t, granted)
	assert.Equal(t, "rcpt-1", e.ReceiptID)
}

func TestSQLiteStoreResetRelocks(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	_, err := svc.Unlock(ctx, "guest:a")
	require.NoError(t, err)
	_, err = svc.Reset(ctx, "guest:a")
	require.NoError(t, err)

	unlocked, err := svc.IsUnlocked(ctx, "guest:a")
	require.NoError(t, err)
	assert.False(t, unlocked)

	again, err := svc.Unlock(ctx, "guest:a")
	require.NoError(t, err)
	assert.True(t, again.Unlocked)
}
