package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-task-manager/config"
	"github.com/oksasatya/go-ddd-task-manager/internal/container"
	repo "github.com/oksasatya/go-ddd-task-manager/internal/domain/repository"
	"github.com/oksasatya/go-ddd-task-manager/internal/infrastructure/cache"
	"github.com/oksasatya/go-ddd-task-manager/internal/infrastructure/memory"
	mongoinfra "github.com/oksasatya/go-ddd-task-manager/internal/infrastructure/mongo"
	pginfra "github.com/oksasatya/go-ddd-task-manager/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-task-manager/internal/infrastructure/queue"
	"github.com/oksasatya/go-ddd-task-manager/internal/router"
	"github.com/oksasatya/go-ddd-task-manager/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	closers := wireRepositories(ctx, cfg, logger)
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	// Welcome emails go through RabbitMQ; the worker in cmd/email_worker sends them.
	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; welcome emails disabled")
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
			container.SetWelcomeNotifier(queue.NewWelcomeNotifier(pub, cfg.AppName, cfg.CompanyName, cfg.SupportURL))
		}
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL))

	r := router.NewEngine(cfg, logger)
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "store": cfg.StoreDriver, "cache": cfg.CacheDriver}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}

// wireRepositories opens the configured store, wraps the user repository
// with the lookup cache and publishes both repositories to the container.
// The returned closers release connections in reverse order.
func wireRepositories(ctx context.Context, cfg *config.Config, logger *logrus.Logger) []func() {
	var (
		tasks   repo.TaskRepository
		users   repo.UserRepository
		closers []func()
	)

	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			logger.Fatalf("failed to connect to postgres: %v", err)
		}
		closers = append(closers, pool.Close)
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			logger.Fatalf("migration failed: %v", err)
		}
		container.SetPGPool(pool)
		tasks, users = pginfra.NewTaskRepository(pool), pginfra.NewUserRepository(pool)

	case config.StoreMongo:
		client, err := mongoinfra.NewClient(ctx, cfg.MongoURI)
		if err != nil {
			logger.Fatalf("failed to connect to mongo: %v", err)
		}
		closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		db := client.Database(cfg.MongoDatabase)
		if err := mongoinfra.EnsureIndexes(ctx, db); err != nil {
			logger.Fatalf("mongo indexes: %v", err)
		}
		container.SetMongo(client)
		tasks, users = mongoinfra.NewTaskRepository(db), mongoinfra.NewUserRepository(db)

	default:
		logger.Warn("using in-memory store; data is lost on restart")
		tasks, users = memory.NewTaskRepository(), memory.NewUserRepository()
	}

	switch cfg.CacheDriver {
	case config.CacheRedis:
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unavailable; user cache disabled")
			_ = rdb.Close()
			break
		}
		closers = append(closers, func() { _ = rdb.Close() })
		container.SetRedis(rdb)
		users = cache.NewCachedUserRepository(users, cache.NewRedisStore(rdb, cfg.CacheTTL), logger)
	case config.CacheMemory:
		users = cache.NewCachedUserRepository(users, cache.NewMemoryStore(cfg.CacheTTL), logger)
	}

	container.SetTaskRepository(tasks)
	container.SetUserRepository(users)
	return closers
}
