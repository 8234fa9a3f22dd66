package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-task-manager/config"
	"github.com/oksasatya/go-ddd-task-manager/internal/application"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/apperror"
	mongoinfra "github.com/oksasatya/go-ddd-task-manager/internal/infrastructure/mongo"
	pginfra "github.com/oksasatya/go-ddd-task-manager/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-task-manager/pkg/helpers"
)

// seed provisions the default administrator in the configured store.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var svc *application.AuthService
	jwt := helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			logger.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			logger.Fatalf("migration failed: %v", err)
		}
		svc = application.NewAuthService(pginfra.NewUserRepository(pool), jwt, nil, logger)
	case config.StoreMongo:
		client, err := mongoinfra.NewClient(ctx, cfg.MongoURI)
		if err != nil {
			logger.Fatalf("failed to connect to mongo: %v", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		db := client.Database(cfg.MongoDatabase)
		if err := mongoinfra.EnsureIndexes(ctx, db); err != nil {
			logger.Fatalf("mongo indexes: %v", err)
		}
		svc = application.NewAuthService(mongoinfra.NewUserRepository(db), jwt, nil, logger)
	default:
		logger.Fatalf("seeding needs a persistent store, STORE_DRIVER=%s", cfg.StoreDriver)
	}

	admin, err := svc.CreateAdmin(ctx, application.CreateAdminInput{
		Username: cfg.AdminDefaultUsername,
		Email:    cfg.AdminDefaultEmail,
		Password: cfg.AdminDefaultPassword,
	})
	if errors.Is(err, apperror.ErrAdminExists) {
		logger.WithField("email", cfg.AdminDefaultEmail).Info("admin already exists; nothing to seed")
		return
	}
	if err != nil {
		logger.Fatalf("failed to seed admin: %v", err)
	}
	helpers.LogInfo(logger, "seeded admin user", logrus.Fields{"id": admin.User.ID, "email": admin.User.Email})
}
