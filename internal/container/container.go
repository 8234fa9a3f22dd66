package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/go-ddd-task-manager/config"
	"github.com/oksasatya/go-ddd-task-manager/internal/application"
	repo "github.com/oksasatya/go-ddd-task-manager/internal/domain/repository"
	"github.com/oksasatya/go-ddd-task-manager/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	mongoClient *mongo.Client
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher
	notifier  application.WelcomeNotifier

	taskRepo repo.TaskRepository
	userRepo repo.UserRepository
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetMongo(c *mongo.Client)     { mongoClient = c }
func GetMongo() *mongo.Client      { return mongoClient }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetRabbitPub(p *helpers.RabbitPublisher)          { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher           { return rabbitPub }
func SetWelcomeNotifier(n application.WelcomeNotifier) { notifier = n }

// GetWelcomeNotifier returns nil when welcome emails are disabled.
func GetWelcomeNotifier() application.WelcomeNotifier { return notifier }

func SetTaskRepository(r repo.TaskRepository) { taskRepo = r }
func GetTaskRepository() repo.TaskRepository  { return taskRepo }
func SetUserRepository(r repo.UserRepository) { userRepo = r }
func GetUserRepository() repo.UserRepository  { return userRepo }
