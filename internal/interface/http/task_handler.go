package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-task-manager/internal/application"
	"github.com/oksasatya/go-ddd-task-manager/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-task-manager/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-task-manager/pkg/response"
)

type TaskHandler struct {
	Service *application.TaskService
	Errors  ErrorWriter
}

func NewTaskHandler(service *application.TaskService, errs ErrorWriter) *TaskHandler {
	return &TaskHandler{Service: service, Errors: errs}
}

type taskURI struct {
	ID string `uri:"id" json:"id" binding:"required,uuid"`
}

type createTaskRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=100"`
	Description string `json:"description" binding:"required,notblank"`
	Completed   *bool  `json:"completed" binding:"required"`
	Priority    string `json:"priority" binding:"omitempty,taskpriority"`
}

type updateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,notblank,max=100"`
	Description *string `json:"description" binding:"omitempty,notblank"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority" binding:"omitempty,taskpriority"`
}

type listMeta struct {
	Count int `json:"count"`
}

func actorFrom(c *gin.Context) application.Actor {
	return application.Actor{
		UserID: c.GetString(middleware.CtxUserID),
		Role:   valueobject.Role(c.GetString(middleware.CtxUserRole)),
	}
}

// List GET /api/tasks
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.Service.GetUserTasks(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, tasks, "Tasks retrieved successfully", listMeta{Count: len(tasks)})
}

// ListAll GET /api/admin/tasks
func (h *TaskHandler) ListAll(c *gin.Context) {
	tasks, err := h.Service.GetTasks(c.Request.Context())
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, tasks, "Tasks retrieved successfully", listMeta{Count: len(tasks)})
}

// Stats GET /api/tasks/stats
func (h *TaskHandler) Stats(c *gin.Context) {
	stats, err := h.Service.GetTaskStats(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, "Task statistics retrieved successfully", nil)
}

// Get GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	var uri taskURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.Errors.BindError(c, err)
		return
	}
	task, err := h.Service.GetTaskByID(c.Request.Context(), actorFrom(c), uri.ID)
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, task, "Task retrieved successfully", nil)
}

// Create POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Errors.BindError(c, err)
		return
	}
	task, err := h.Service.CreateTask(c.Request.Context(), application.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
		UserID:      c.GetString(middleware.CtxUserID),
	})
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Success(c, http.StatusCreated, task, "Task created successfully", nil)
}

// Update PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	var uri taskURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.Errors.BindError(c, err)
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Errors.BindError(c, err)
		return
	}
	task, err := h.Service.UpdateTask(c.Request.Context(), actorFrom(c), uri.ID, application.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
	})
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, task, "Task updated successfully", nil)
}

// Delete DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	var uri taskURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.Errors.BindError(c, err)
		return
	}
	if err := h.Service.DeleteTask(c.Request.Context(), actorFrom(c), uri.ID); err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Task deleted successfully", nil)
}
