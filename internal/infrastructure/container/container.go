// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	appprep "github.com/trayline/v1/internal/application/prep"
	"github.com/trayline/v1/internal/domain/prep"
	"github.com/trayline/v1/internal/infrastructure/config"
	"github.com/trayline/v1/internal/infrastructure/http/apiserver"
	"github.com/trayline/v1/internal/infrastructure/monitoring"
	gormRepo "github.com/trayline/v1/internal/infrastructure/persistence/gorm"
	"github.com/trayline/v1/internal/infrastructure/persistence/postgres"
	redisinfra "github.com/trayline/v1/internal/infrastructure/persistence/redis"
	"github.com/trayline/v1/internal/infrastructure/persistence/sqlite"
	"github.com/trayline/v1/internal/ports/outbound"
	"github.com/trayline/v1/pkg/healthcheck"
	"github.com/trayline/v1/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	LockerModule,
	RepositoryModule,
	ServiceModule,
	MonitoringModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the database connection and schema
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		var db *gorm.DB
		var err error

		switch cfg.Database.Driver {
		case "postgres":
			db, err = postgres.Connect(cfg, log)
		default:
			logLevel := gormLogger.Silent
			if cfg.App.Debug {
				logLevel = gormLogger.Info
			}
			db, err = sqlite.SetupDatabase(cfg.Database.Database+".db", logLevel)
			if err == nil {
				log.Info("Connected to SQLite database", zap.String("path", cfg.Database.Database+".db"))
			}
		}
		if err != nil {
			return nil, err
		}

		if cfg.Database.AutoMigrate {
			if err := sqlite.AutoMigrate(db); err != nil {
				return nil, fmt.Errorf("failed to migrate schema: %w", err)
			}
		}

		if cfg.Prep.SeedDemoData {
			if err := sqlite.SeedDatabase(db); err != nil {
				log.Warn("Failed to seed demo data", zap.Error(err))
			}
		}

		return db, nil
	},
)

// LockerModule provides the prep execution lease
var LockerModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*goredis.Client, outbound.ExecutionLocker, error) {
		if !cfg.Redis.Enabled {
			log.Info("Redis disabled, using single-instance execution lease")
			return nil, redisinfra.NewNoopLocker(), nil
		}

		client, err := redisinfra.NewClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		return client, redisinfra.NewExecutionLocker(client, cfg.Prep.LeaseTTL, log), nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewPatientRepository,
	gormRepo.NewDietPolicyRepository,
	gormRepo.NewRecipeRepository,
	gormRepo.NewTrayOrderRepository,
	gormRepo.NewExecutionRepository,
)

// ServiceModule provides the application services
var ServiceModule = fx.Provide(
	func() prep.Picker {
		return prep.NewRandomPicker(time.Now().UnixNano())
	},
	prep.NewComposer,
	appprep.NewConsumptionAccumulator,
	appprep.NewExecutionGuard,
	appprep.NewPrepService,
)

// MonitoringModule provides metrics and health checks
var MonitoringModule = fx.Provide(
	func() *prometheus.Registry {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return registry
	},
	func(registry *prometheus.Registry) *monitoring.PrepMetrics {
		return monitoring.NewPrepMetrics(registry)
	},
	func(cfg *config.Config, log *zap.Logger, db *gorm.DB, redisClient *goredis.Client) *healthcheck.HealthCheck {
		health := healthcheck.New(cfg.App.Version, log)

		health.Register("database", healthcheck.NewPingChecker("database", func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}))

		if redisClient != nil {
			health.Register("redis", healthcheck.NewPingChecker("redis", func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}))
		}

		return health
	},
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	apiserver.NewAPIServer,
)

// LifecycleModule starts and stops long-running components
var LifecycleModule = fx.Invoke(
	func(lc fx.Lifecycle, server *apiserver.APIServer, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return server.Start(ctx)
			},
			OnStop: func(ctx context.Context) error {
				return server.Stop(ctx)
			},
		})
	},
)
