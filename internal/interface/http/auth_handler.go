package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-task-manager/config"
	"github.com/oksasatya/go-ddd-task-manager/internal/application"
	"github.com/oksasatya/go-ddd-task-manager/pkg/response"
)

type AuthHandler struct {
	Service *application.AuthService
	Cfg     *config.Config
	Errors  ErrorWriter
}

func NewAuthHandler(service *application.AuthService, cfg *config.Config, errs ErrorWriter) *AuthHandler {
	return &AuthHandler{Service: service, Cfg: cfg, Errors: errs}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type createAdminRequest struct {
	Username string `json:"username" binding:"omitempty,username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,pwd"`
}

type adminCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Note     string `json:"note"`
}

type createAdminResponse struct {
	application.AuthResult
	Credentials adminCredentials `json:"credentials"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Errors.BindError(c, err)
		return
	}
	res, err := h.Service.RegisterUser(c.Request.Context(), application.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res, "User registered successfully", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Errors.BindError(c, err)
		return
	}
	res, err := h.Service.LoginUser(c.Request.Context(), application.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "Login successful", nil)
}

// CreateAdmin POST /api/auth/create-admin
// The body is optional; omitted fields fall back to the configured defaults.
func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	if !h.Cfg.AdminBootstrapEnabled {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin bootstrap is disabled", nil)
		return
	}
	var req createAdminRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			h.Errors.BindError(c, err)
			return
		}
	}
	if req.Username == "" {
		req.Username = h.Cfg.AdminDefaultUsername
	}
	if req.Email == "" {
		req.Email = h.Cfg.AdminDefaultEmail
	}
	if req.Password == "" {
		req.Password = h.Cfg.AdminDefaultPassword
	}

	res, err := h.Service.CreateAdmin(c.Request.Context(), application.CreateAdminInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.Errors.Write(c, err)
		return
	}
	response.Success(c, http.StatusCreated, createAdminResponse{
		AuthResult: *res,
		Credentials: adminCredentials{
			Email:    res.User.Email,
			Password: req.Password,
			Note:     "Change this password after the first login",
		},
	}, "Admin user created successfully", nil)
}
