package router

import (
	"github.com/oksasatya/go-ddd-task-manager/internal/application"
	"github.com/oksasatya/go-ddd-task-manager/internal/container"
	handlers "github.com/oksasatya/go-ddd-task-manager/internal/interface/http"
	"github.com/oksasatya/go-ddd-task-manager/internal/router/modules"
)

type ModuleDeps struct {
	TaskService *application.TaskService
	AuthService *application.AuthService
	TaskHandler *handlers.TaskHandler
	AuthHandler *handlers.AuthHandler
}

func buildDeps() ModuleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	errs := handlers.ErrorWriter{Logger: logger, Debug: !cfg.IsProduction()}

	taskSvc := application.NewTaskService(container.GetTaskRepository(), container.GetUserRepository(), logger)
	authSvc := application.NewAuthService(container.GetUserRepository(), container.GetJWT(), container.GetWelcomeNotifier(), logger)

	return ModuleDeps{
		TaskService: taskSvc,
		AuthService: authSvc,
		TaskHandler: handlers.NewTaskHandler(taskSvc, errs),
		AuthHandler: handlers.NewAuthHandler(authSvc, cfg, errs),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	jwt := container.GetJWT()

	r.AddRoot(modules.NewHealthModule(handlers.NewHealthHandler()))
	if container.GetConfig().MetricsEnabled {
		r.AddRoot(modules.NewMetricsModule())
	}
	r.Add(modules.NewAuthModule(deps.AuthHandler))
	r.Add(modules.NewTaskModule(deps.TaskHandler, jwt))
}
