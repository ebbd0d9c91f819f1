package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/nahid/certchain/docs" // Import generated swagger docs
	appControllers "github.com/nahid/certchain/internal/app/controllers"
	appMigrations "github.com/nahid/certchain/internal/app/migrations"
	appRepos "github.com/nahid/certchain/internal/app/repositories"
	appRoutes "github.com/nahid/certchain/internal/app/routes"
	appServices "github.com/nahid/certchain/internal/app/services"
	"github.com/nahid/certchain/internal/chain"
	"github.com/nahid/certchain/internal/config"
	"github.com/nahid/certchain/internal/db"
	appMiddleware "github.com/nahid/certchain/internal/middleware"
	pkgAuth "github.com/nahid/certchain/internal/pkg/auth"
	"github.com/nahid/certchain/internal/pkg/helpers"
	"github.com/nahid/certchain/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           appServices.AuthService
	CacheService          appServices.CacheService
	IssuanceService       appServices.IssuanceService
	VerificationService   appServices.VerificationService
	InstituteService      appServices.InstituteService
	Reconciler            *appServices.ReconciliationService
	AuthController        *appControllers.AuthController
	CacheController       *appControllers.CacheController
	CertificateController *appControllers.CertificateController
	InstituteController   *appControllers.InstituteController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Registry              chain.InstitutionRegistry
	Ledger                chain.CertificationLedger
	Signer                chain.Signer
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the cache database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// SetupChain connects to the JSON-RPC node and binds the registry and ledger
// contracts.
func SetupChain(cfg *config.Config, lgr zerolog.Logger) (chain.InstitutionRegistry, chain.CertificationLedger, chain.Signer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	backend, err := chain.Dial(ctx, cfg.Chain.RPCURL)
	if err != nil {
		lgr.Error().Err(err).Str("rpcUrl", cfg.Chain.RPCURL).Msg("Failed to connect to chain RPC")
		return nil, nil, nil, err
	}

	signer, err := chain.NewPrivateKeySigner(cfg.Chain.PrivateKey, cfg.Chain.ChainID)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to build transaction signer")
		return nil, nil, nil, err
	}

	confirmTimeout := helpers.ParseDuration(cfg.Chain.ConfirmTimeout, 90*time.Second)

	registry, err := chain.NewInstitutionClient(cfg.Chain.InstitutionAddress, backend, signer, confirmTimeout, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to bind institution registry contract")
		return nil, nil, nil, err
	}

	ledger, err := chain.NewCertificationClient(cfg.Chain.CertificationAddress, backend, signer, confirmTimeout, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to bind certification ledger contract")
		return nil, nil, nil, err
	}

	lgr.Info().
		Str("signer", signer.Address().Hex()).
		Str("institution", cfg.Chain.InstitutionAddress).
		Str("certification", cfg.Chain.CertificationAddress).
		Msg("Chain gateway initialized")

	return registry, ledger, signer, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, registry chain.InstitutionRegistry, ledger chain.CertificationLedger, signer chain.Signer, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger:   lgr,
		Registry: registry,
		Ledger:   ledger,
		Signer:   signer,
	}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	nonceStore := pkgAuth.NewNonceStore(helpers.ParseDuration(cfg.JWT.NonceExpiration, 5*time.Minute))

	deps.AuthService = appServices.NewAuthService(registry, deps.JWTService, nonceStore, lgr)
	deps.CacheService = appServices.NewCacheService(deps.Repos.CertificateRepository, lgr)
	deps.IssuanceService = appServices.NewIssuanceService(deps.Repos.CertificateRepository, registry, ledger, lgr)
	deps.VerificationService = appServices.NewVerificationService(registry, ledger, lgr)
	deps.InstituteService = appServices.NewInstituteService(registry, strings.ToLower(signer.Address().Hex()), lgr)

	if cfg.Reconciler.Enabled {
		deps.Reconciler = appServices.NewReconciliationService(
			deps.Repos.CertificateRepository,
			helpers.ParseDuration(cfg.Reconciler.Interval, time.Minute),
			helpers.ParseDuration(cfg.Reconciler.PendingTTL, 30*time.Minute),
			lgr,
		)
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CacheController = appControllers.NewCacheController(deps.CacheService)
	deps.CertificateController = appControllers.NewCertificateController(deps.IssuanceService, deps.VerificationService)
	deps.InstituteController = appControllers.NewInstituteController(deps.InstituteService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CacheController,
		deps.CertificateController,
		deps.InstituteController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
