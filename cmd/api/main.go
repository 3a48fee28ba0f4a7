package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/usecase/payment"
	"github.com/amirhossein-jamali/wallet-funding/internal/domain/usecase/wallet"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/event"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/gateway"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/lock"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize logger
	appLogger, err := logger.NewZapLogger(cfg.Logger.Format != "console", core.ParseLogLevel(cfg.Logger.Level))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Flush() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Service stopped with error", map[string]any{"error": err.Error()})
		_ = appLogger.Flush()
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger *logger.ZapLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp := timeProvider.NewRealTimeProvider()

	// Initialize database
	dbConfig, err := database.NewConfig(cfg.Database, cfg.Transaction)
	if err != nil {
		return err
	}
	if err := dbConfig.Validate(); err != nil {
		return fmt.Errorf("database configuration: %w", err)
	}

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		return err
	}
	defer func() { _ = dbManager.Close() }()

	// Run migrations
	if err := dbManager.MigrationManager().MigrateAll(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Create repositories and use cases
	uow := dbManager.CreateUnitOfWork()
	userRepo := repository.NewUserRepository(dbManager.DB(), appLogger)

	walletUseCase := wallet.NewUseCase(userRepo, tp, appLogger)
	if cfg.Seed.DefaultUsers {
		if err := dbManager.MigrationManager().CreateDefaultUsers(ctx, walletUseCase); err != nil {
			appLogger.Error("Failed to create default users", map[string]any{"error": err.Error()})
		}
	}

	// Register payment gateways
	registry, err := gateway.NewRegistryFromConfig(cfg.Payment, gateway.NewHTTPClient(cfg.Payment.GatewayTimeout))
	if err != nil {
		return fmt.Errorf("gateway registry: %w", err)
	}
	appLogger.Info("Payment gateways registered", map[string]any{
		"gateways": registry.Names(),
		"default":  registry.Default(),
	})

	paymentService := payment.NewService(
		payment.Config{
			CallbackURL:    cfg.Payment.CallbackURL,
			MinAmount:      cfg.Payment.MinAmount,
			AdminMinAmount: cfg.Payment.AdminMinAmount,
			MaxAmount:      cfg.Payment.MaxAmount,
		},
		registry,
		uow,
		wallet.NewBalanceUpdater(uow, tp, appLogger),
		tp,
		appLogger,
	)

	// Optional integrations
	var observer middleware.HTTPObserver
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		promMetrics := metrics.NewPrometheus()
		if err := dbManager.RegisterMetrics(promMetrics.Registry()); err != nil {
			appLogger.Warn("Failed to register database pool metrics", map[string]any{"error": err.Error()})
		}
		paymentService.WithMetrics(promMetrics)
		observer = promMetrics
		metricsHandler = promMetrics.Handler()
	}

	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = redisClient.Close() }()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			appLogger.Warn("Redis unreachable, callback guard will fail open", map[string]any{
				"addr":  cfg.Redis.Addr,
				"error": err.Error(),
			})
		}
		paymentService.WithCallbackGuard(lock.NewRedisCallbackGuard(redisClient, cfg.Redis.CallbackLockTTL, appLogger))
	}

	if cfg.Messaging.NSQAddress != "" {
		publisher, err := event.NewNSQPublisher(cfg.Messaging.NSQAddress, cfg.Messaging.WalletTopic, appLogger)
		if err != nil {
			appLogger.Warn("Event publishing disabled", map[string]any{"error": err.Error()})
		} else {
			defer publisher.Stop()
			paymentService.WithPublisher(publisher)
		}
	}

	// Setup router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, observer, cfg.Server.CORSAllowOrigins)
	routes.SetupRoutes(router, routes.Handlers{
		Payment: handler.NewPaymentHandler(paymentService, appLogger),
		Admin:   handler.NewAdminHandler(paymentService, appLogger),
		Wallet:  handler.NewWalletHandler(walletUseCase, dbManager, appLogger),
		Metrics: metricsHandler,
	}, routes.RouteConfig{
		Auth:        middleware.AuthConfig{Secret: cfg.Auth.JWTSecret, Issuer: cfg.Auth.Issuer},
		MetricsPath: cfg.Metrics.Path,
	}, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":         server.Addr,
			"env":          cfg.Environment,
			"callback_url": cfg.Payment.CallbackURL,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	// Graceful shutdown
	appLogger.Info("Shutting down server...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}
	appLogger.Info("Server exited gracefully", nil)
	return nil
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	requireEnvBacked := func(value, key, env string) {
		if value == "" {
			missingConfigs = append(missingConfigs, fmt.Sprintf("%s (or %s environment variable)", key, env))
		}
	}
	requireEnvBacked(cfg.Database.Host, "database.host", "WP_DB_HOST")
	requireEnvBacked(cfg.Database.Port, "database.port", "WP_DB_PORT")
	requireEnvBacked(cfg.Database.Username, "database.username", "WP_DB_USERNAME")
	requireEnvBacked(cfg.Database.Database, "database.database", "WP_DB_NAME")
	requireEnvBacked(cfg.Auth.JWTSecret, "auth.jwtSecret", "WP_JWT_SECRET")

	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}
	if cfg.Transaction.LockTimeoutMs < 0 {
		return fmt.Errorf("transaction.lockTimeoutMs must not be negative")
	}

	if cfg.Payment.CallbackURL == "" {
		missingConfigs = append(missingConfigs, "payment.callbackUrl (or appUrl)")
	}
	if cfg.Payment.MinAmount <= 0 {
		missingConfigs = append(missingConfigs, "payment.minAmount")
	}
	if cfg.Payment.AdminMinAmount <= 0 {
		missingConfigs = append(missingConfigs, "payment.adminMinAmount")
	}
	if cfg.Payment.MaxAmount < cfg.Payment.MinAmount || cfg.Payment.MaxAmount < cfg.Payment.AdminMinAmount {
		return fmt.Errorf("payment.maxAmount must not be below the minimum amounts")
	}
	if cfg.Payment.Gateways.Payir.Enabled && cfg.Payment.Gateways.Payir.APIKey == "" {
		missingConfigs = append(missingConfigs, "payment.gateways.payir.apiKey (or WP_PAYIR_API_KEY)")
	}
	if cfg.Payment.Gateways.Zarinpal.Enabled && cfg.Payment.Gateways.Zarinpal.MerchantID == "" {
		missingConfigs = append(missingConfigs, "payment.gateways.zarinpal.merchantId (or WP_ZARINPAL_MERCHANT_ID)")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.IsProduction() {
		var warnings []string

		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
		if cfg.Payment.Gateways.Zarinpal.Enabled && cfg.Payment.Gateways.Zarinpal.Sandbox {
			warnings = append(warnings, "payment.gateways.zarinpal.sandbox is enabled in production")
		}
		if !strings.HasPrefix(cfg.Payment.CallbackURL, "https://") {
			warnings = append(warnings, "payment.callbackUrl should use https in production")
		}
		if cfg.Server.WriteTimeout < cfg.Payment.GatewayTimeout {
			warnings = append(warnings, "server.writeTimeout is shorter than payment.gatewayTimeout")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
