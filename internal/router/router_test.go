package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-task-manager/config"
	"github.com/oksasatya/go-ddd-task-manager/internal/container"
	"github.com/oksasatya/go-ddd-task-manager/internal/infrastructure/memory"
	"github.com/oksasatya/go-ddd-task-manager/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		Env:                   "test",
		AdminBootstrapEnabled: true,
		AdminDefaultUsername:  "admin",
		AdminDefaultEmail:     "admin@example.com",
		AdminDefaultPassword:  "admin123",
		MetricsEnabled:        true,
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(helpers.NewJWTManager("test-secret", time.Hour))
	container.SetTaskRepository(memory.NewTaskRepository())
	container.SetUserRepository(memory.NewUserRepository())
	container.SetWelcomeNotifier(nil)

	engine := NewEngine(cfg, logger)
	reg := NewRegistry(engine)
	InitModules(reg)
	reg.RegisterAll()
	return engine
}

func call(t *testing.T, r http.Handler, method, path, token string, body any) (int, apiEnvelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func login(t *testing.T, r http.Handler, path string, body any) string {
	t.Helper()
	status, env := call(t, r, http.MethodPost, path, "", body)
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, status)
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestTaskLifecycle(t *testing.T) {
	r := newTestServer(t)

	token := login(t, r, "/api/auth/register", gin.H{"username": "erin", "email": "erin@example.com", "password": "passw0rd"})

	status, env := call(t, r, http.MethodPost, "/api/tasks", token, gin.H{
		"title": "Ship it", "description": "release 1.0", "completed": false, "priority": "HIGH",
	})
	require.Equal(t, http.StatusCreated, status)
	var task struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		Priority string `json:"priority"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &task))
	assert.Equal(t, "pending", task.Status)
	assert.Equal(t, "HIGH", task.Priority)

	status, env = call(t, r, http.MethodPut, "/api/tasks/"+task.ID, token, gin.H{"completed": true})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &task))
	assert.Equal(t, "completed", task.Status)

	status, env = call(t, r, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, status)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	status, _ = call(t, r, http.MethodDelete, "/api/tasks/"+task.ID, token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = call(t, r, http.MethodGet, "/api/tasks/"+task.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "TASK_NOT_FOUND", env.Error.Code)
}

func TestAuthAndRoles(t *testing.T) {
	r := newTestServer(t)

	status, env := call(t, r, http.MethodGet, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", env.Error.Code)

	userToken := login(t, r, "/api/auth/register", gin.H{"username": "frank", "email": "frank@example.com", "password": "passw0rd"})
	status, env = call(t, r, http.MethodGet, "/api/admin/tasks", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	status, _ = call(t, r, http.MethodPost, "/api/auth/create-admin", "", nil)
	require.Equal(t, http.StatusCreated, status)
	adminToken := login(t, r, "/api/auth/login", gin.H{"email": "admin@example.com", "password": "admin123"})

	status, _ = call(t, r, http.MethodGet, "/api/admin/tasks", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRootRoutes(t *testing.T) {
	r := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"UP"`)

	status, env := call(t, r, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
