package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/valueobject"
	handlers "github.com/oksasatya/go-ddd-task-manager/internal/interface/http"
	"github.com/oksasatya/go-ddd-task-manager/internal/interface/middleware"
)

// TaskModule wires task routes. Every route requires a bearer token;
// /admin/tasks additionally requires the admin role.
type TaskModule struct {
	Handler *handlers.TaskHandler
	Tokens  middleware.TokenParser
}

func NewTaskModule(h *handlers.TaskHandler, tokens middleware.TokenParser) *TaskModule {
	return &TaskModule{Handler: h, Tokens: tokens}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	tasks.Use(middleware.Auth(m.Tokens))
	{
		tasks.GET("", m.Handler.List)
		tasks.POST("", m.Handler.Create)
		tasks.GET("/stats", m.Handler.Stats)
		tasks.GET("/:id", m.Handler.Get)
		tasks.PUT("/:id", m.Handler.Update)
		tasks.DELETE("/:id", m.Handler.Delete)
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.Tokens), middleware.RequireRole(valueobject.RoleAdmin.String()))
	admin.GET("/tasks", m.Handler.ListAll)
}
