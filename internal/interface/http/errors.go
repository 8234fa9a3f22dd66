package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-task-manager/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-task-manager/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-task-manager/pkg/helpers"
	"github.com/oksasatya/go-ddd-task-manager/pkg/response"
	"github.com/oksasatya/go-ddd-task-manager/pkg/validation"
)

// ErrorWriter turns use case errors into API error envelopes.
type ErrorWriter struct {
	Logger *logrus.Logger
	// Debug adds the underlying cause to 500 responses; off in production.
	Debug bool
}

func statusFor(k apperror.Kind) int {
	switch k {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindAuthentication:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func requestFields(c *gin.Context) logrus.Fields {
	return logrus.Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"user_id":    c.GetString(middleware.CtxUserID),
	}
}

func (w ErrorWriter) Write(c *gin.Context, err error) {
	var ae *apperror.Error
	if !errors.As(err, &ae) || ae.Kind == apperror.KindInternal {
		helpers.LogError(w.Logger, "request failed", err, requestFields(c))

		var details any
		if w.Debug {
			details = gin.H{"cause": err.Error()}
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", details)
		return
	}

	status := statusFor(ae.Kind)
	fields := requestFields(c)
	fields["status"] = status
	fields["code"] = ae.Code
	w.Logger.WithFields(fields).Warn(ae.Message)
	response.Error(c, status, ae.Code, ae.Message, nil)
}

// BindError reports a request that failed decoding or validation.
func (w ErrorWriter) BindError(c *gin.Context, err error) {
	details := validation.ToDetails(err)
	fields := requestFields(c)
	fields["status"] = http.StatusBadRequest
	fields["code"] = "VALIDATION_ERROR"
	fields["details"] = details
	w.Logger.WithFields(fields).Warn("request validation failed")
	response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
}
