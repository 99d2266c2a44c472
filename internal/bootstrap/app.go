package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"web3stack-api/internal/entitlements"
	"web3stack-api/internal/questionnaire"
	"web3stack-api/internal/recommendations"
	"web3stack-api/internal/shared/config"
	"web3stack-api/internal/shared/server"
	"web3stack-api/internal/shared/storage/db"
	"web3stack-api/internal/shared/telemetry"
	"web3stack-api/internal/stack"
)

// App holds shared dependencies.
type App struct {
	Config                 config.Config
	Router                 *gin.Engine
	DB                     *sql.DB
	Catalog                *stack.Catalog
	Resolver               *stack.Resolver
	EntitlementService     *entitlements.Service
	RecommendationService  *recommendations.Service
	QuestionnaireHandler   *questionnaire.Handler
	RecommendationsHandler *recommendations.Handler
	EntitlementsHandler    *entitlements.Handler
}

// Build prepares dependencies and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	catalog, err := buildCatalog(cfg)
	if err != nil {
		return nil, err
	}
	resolver := stack.NewResolver(catalog)
	for _, id := range resolver.CheckReferences() {
		telemetry.Warn("stack.catalog_missing_technology", map[string]any{"technology_id": id})
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Catalog:  catalog,
		Resolver: resolver,
	}
	if err := buildServices(app); err != nil {
		if sqlDB != nil {
			sqlDB.Close()
		}
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:                 app.Config,
		QuestionnaireHandler:   app.QuestionnaireHandler,
		RecommendationsHandler: app.RecommendationsHandler,
		EntitlementsHandler:    app.EntitlementsHandler,
	})
	return app, nil
}

// Close releases the database handle, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildCatalog(cfg config.Config) (*stack.Catalog, error) {
	if strings.TrimSpace(cfg.CatalogPath) == "" {
		return stack.DefaultCatalog(), nil
	}
	catalog, err := stack.LoadCatalogFile(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	for _, w := range catalog.Warnings() {
		telemetry.Warn("stack.catalog_warning", map[string]any{"path": cfg.CatalogPath, "warning": w})
	}
	telemetry.Info("stack.catalog_loaded", map[string]any{
		"path":         cfg.CatalogPath,
		"technologies": len(catalog.Technologies()),
		"resources":    len(catalog.Resources()),
	})
	return catalog, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	var (
		sqlDB  *sql.DB
		driver string
		err    error
	)
	switch cfg.EntitlementStore {
	case config.StoreMemory:
		telemetry.Info("bootstrap.store", map[string]any{"store": config.StoreMemory})
		return nil, nil
	case config.StorePostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, fmt.Errorf("ENTITLEMENT_STORE=postgres requires DATABASE_URL")
		}
		driver = db.DriverPostgres
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	case config.StoreSQLite:
		driver = db.DriverSQLite
		sqlDB, err = db.OpenSQLite(ctx, cfg.SQLitePath, db.SQLiteOptions())
	default:
		return nil, fmt.Errorf("unknown entitlement store %q", cfg.EntitlementStore)
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db_unavailable", map[string]any{"store": cfg.EntitlementStore, "error": err})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB, driver); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	telemetry.Info("bootstrap.store", map[string]any{"store": cfg.EntitlementStore})
	return sqlDB, nil
}

func buildServices(app *App) error {
	offer := entitlements.DefaultOffer()
	if app.Config.PremiumPriceCents > 0 {
		offer.PriceCents = app.Config.PremiumPriceCents
	}
	if app.Config.PremiumCurrency != "" {
		offer.Currency = app.Config.PremiumCurrency
	}

	var entSvc *entitlements.Service
	switch {
	case app.DB == nil:
		entSvc = entitlements.NewService(offer, entitlements.MockCheckout{})
	case app.Config.EntitlementStore == config.StoreSQLite:
		entSvc = entitlements.NewStoreService(entitlements.NewSQLiteStore(app.DB), offer, entitlements.MockCheckout{})
	default:
		entSvc = entitlements.NewStoreService(entitlements.NewPGStore(app.DB), offer, entitlements.MockCheckout{})
	}

	limits := recommendations.PreviewLimits{
		Categories: app.Config.PreviewCategories,
		Resources:  app.Config.PreviewResources,
	}
	recSvc := recommendations.NewService(app.Resolver, entSvc, limits)

	app.EntitlementService = entSvc
	app.RecommendationService = recSvc
	app.QuestionnaireHandler = questionnaire.NewHandler()
	app.RecommendationsHandler = recommendations.NewHandler(recSvc)
	app.EntitlementsHandler = entitlements.NewHandler(entSvc)

	if app.RecommendationsHandler == nil || app.EntitlementsHandler == nil {
		return errors.New("failed to initialize handlers")
	}
	return nil
}
