package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/secureword/internal/pkg/config"
	"github.com/piresc/secureword/internal/pkg/database"
	"github.com/piresc/secureword/internal/pkg/health"
	"github.com/piresc/secureword/internal/pkg/logger"
	"github.com/piresc/secureword/internal/pkg/middleware"
	"github.com/piresc/secureword/internal/pkg/models"
	nrpkg "github.com/piresc/secureword/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/secureword/internal/pkg/nsq"
	"github.com/piresc/secureword/internal/pkg/retry"
	"github.com/piresc/secureword/internal/pkg/server"
	"github.com/piresc/secureword/services/auth"
	"github.com/piresc/secureword/services/auth/gateway"
	"github.com/piresc/secureword/services/auth/handler"
	"github.com/piresc/secureword/services/auth/repository"
	"github.com/piresc/secureword/services/auth/usecase"
	"go.uber.org/zap"
)

func main() {
	configPath := "config/auth.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", configs.App.Name),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
		zap.String("store_backend", configs.Auth.StoreBackend),
	)

	e := echo.New()
	e.HideBanner = true
	e.Validator = middleware.NewRequestValidator()

	srv := server.NewGracefulServer(e, zapLogger, configs.Server)
	healthService := health.NewHealthService(zapLogger)
	retrier := retry.New(retry.DefaultConfig(), zapLogger)
	ctx := context.Background()

	// Initialize Redis when the flow state lives there
	var redisClient *database.RedisClient
	if configs.Auth.StoreBackend == models.StoreBackendRedis {
		err := retrier.Execute(ctx, "redis connect", func(context.Context) error {
			var connErr error
			redisClient, connErr = database.NewRedisClient(configs.Redis)
			return connErr
		})
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		healthService.AddChecker("redis", health.NewPingChecker(redisClient))
		srv.OnShutdown(func(context.Context) error { return redisClient.Close() })
	}

	// Initialize repository
	stores, err := repository.NewStores(configs.Auth, redisClient, nil)
	if err != nil {
		zapLogger.Fatal("Failed to initialize stores", zap.Error(err))
	}

	auditRepo := initAuditRepo(ctx, configs, retrier, healthService, srv, zapLogger)

	// Initialize gateway
	authGW := initAuthGW(configs, retrier, healthService, srv, zapLogger)

	// Initialize usecase
	authUC, err := usecase.NewAuthUC(configs, stores, auditRepo, authGW, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize auth usecase", zap.Error(err))
	}

	// Add middlewares
	e.Use(middleware.NewRelicMiddleware(nrApp))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Register health endpoints
	health.RegisterHealthEndpoints(e, configs.App.Name, configs.App.Version, healthService)

	// Register service routes
	handler.NewHandler(authUC, configs).RegisterRoutes(e)

	if nrApp != nil {
		srv.OnShutdown(func(context.Context) error {
			nrApp.Shutdown(5 * time.Second)
			return nil
		})
	}

	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server stopped with error",
			zap.String("app", configs.App.Name),
			zap.Error(err),
		)
	}
}

// initAuditRepo returns the Postgres audit trail when the database is enabled and an in-memory ring otherwise
func initAuditRepo(ctx context.Context, configs *models.Config, retrier *retry.Retrier, healthService *health.HealthService, srv *server.GracefulServer, zapLogger *logger.ZapLogger) auth.AuditRepo {
	if !configs.Database.Enabled {
		return repository.NewMemoryAuditRepo(0)
	}

	var postgresClient *database.PostgresClient
	err := retrier.Execute(ctx, "postgres connect", func(context.Context) error {
		var connErr error
		postgresClient, connErr = database.NewPostgresClient(configs.Database)
		return connErr
	})
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	auditRepo := repository.NewPostgresAuditRepo(postgresClient.GetDB())
	if err := auditRepo.EnsureSchema(ctx); err != nil {
		zapLogger.Fatal("Failed to prepare login_events table", zap.Error(err))
	}

	healthService.AddChecker("postgres", health.NewPingChecker(postgresClient))
	srv.OnShutdown(func(context.Context) error { return postgresClient.Close() })
	return auditRepo
}

// initAuthGW returns an NSQ backed gateway when NSQ is enabled and a no-op one otherwise
func initAuthGW(configs *models.Config, retrier *retry.Retrier, healthService *health.HealthService, srv *server.GracefulServer, zapLogger *logger.ZapLogger) auth.AuthGW {
	if !configs.NSQ.Enabled {
		return gateway.NewNopAuthGW()
	}

	var producer *nsqpkg.Producer
	err := retrier.Execute(context.Background(), "nsq connect", func(context.Context) error {
		var connErr error
		producer, connErr = nsqpkg.NewProducer(configs.NSQ.Address)
		return connErr
	})
	if err != nil {
		zapLogger.Fatal("Failed to connect to NSQ", zap.Error(err))
	}

	healthService.AddChecker("nsq", health.CheckerFunc(func(context.Context) error {
		return producer.Ping()
	}))
	srv.OnShutdown(func(context.Context) error {
		producer.Stop()
		return nil
	})
	return gateway.NewAuthGW(producer)
}
