package main

// Run database migrations for the configured entitlement store:
//   go run ./cmd/migrate

import (
	"context"
	"database/sql"
	"os"

	"web3stack-api/internal/shared/config"
	"web3stack-api/internal/shared/storage/db"
	"web3stack-api/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Configure(cfg.LogLevel)
	defer telemetry.Sync()
	ctx := context.Background()

	var (
		sqlDB  *sql.DB
		driver string
		err    error
	)
	switch cfg.EntitlementStore {
	case config.StoreSQLite:
		driver = db.DriverSQLite
		sqlDB, err = db.OpenSQLite(ctx, cfg.SQLitePath, db.SQLiteOptions())
	case config.StorePostgres:
		driver = db.DriverPostgres
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	default:
		telemetry.Info("migrate.skipped", map[string]any{"store": cfg.EntitlementStore})
		return
	}
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"store": cfg.EntitlementStore, "error": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB, driver); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"store": cfg.EntitlementStore})
}
