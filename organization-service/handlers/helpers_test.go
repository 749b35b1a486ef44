package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"organizations-backend/organization-service/handlers"
	"organizations-backend/organization-service/middleware"
	"organizations-backend/organization-service/routes"
	"organizations-backend/shared/authz"
	"organizations-backend/shared/config"
	"organizations-backend/shared/database/models"
	"organizations-backend/shared/database/testdb"
	"organizations-backend/shared/events"
	"organizations-backend/shared/repository"
	"organizations-backend/shared/utils/auth"
)

const testSecret = "test-secret"

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Dispatch(_ context.Context, event events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) types() []events.Type {
	d.mu.Lock()
	defer d.mu.Unlock()
	types := make([]events.Type, 0, len(d.events))
	for _, e := range d.events {
		types = append(types, e.Type)
	}
	return types
}

type testEnv struct {
	router *gin.Engine
	roles  *repository.RoleRepository
	users  *repository.UserRepository
	events *recordingDispatcher
}

type testUser struct {
	models.User
	token string
}

func defaultConfig() *config.Config {
	return &config.Config{
		JWTSecret:       testSecret,
		RoutePrefix:     "/api",
		RegisterRoutes:  true,
		WorkspaceScoped: true,
		WorkspaceRoles:  true,
	}
}

func newTestEnv(t *testing.T, configure ...func(*config.Config)) *testEnv {
	t.Helper()
	dispatcher := &recordingDispatcher{}
	env := newTestEnvWithDispatcher(t, dispatcher, configure...)
	env.events = dispatcher
	return env
}

func newTestEnvWithDispatcher(t *testing.T, dispatcher handlers.EventDispatcher, configure ...func(*config.Config)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := defaultConfig()
	for _, fn := range configure {
		fn(cfg)
	}

	db := testdb.New(t)
	roles := repository.NewRoleRepository(db)
	users := repository.NewUserRepository(db)

	var workspaces authz.WorkspaceAccess
	if cfg.WorkspaceRoles {
		workspaces = authz.NewRoleWorkspaceAccess(roles)
	}

	h := handlers.NewOrganizationHandler(
		repository.NewOrganizationRepository(db),
		users,
		roles,
		authz.NewGate(roles, workspaces, cfg.WorkspaceScoped),
		dispatcher,
		cfg,
		zap.NewNop(),
	)

	router := gin.New()
	routes.RegisterOrganizationRoutes(router, cfg.RoutePrefix, h, middleware.AuthMiddleware(cfg.JWTSecret))

	return &testEnv{
		router: router,
		roles:  roles,
		users:  users,
	}
}

func (e *testEnv) newUser(t *testing.T, name, email string) testUser {
	t.Helper()
	user := models.User{Name: name, Email: email}
	require.NoError(t, e.users.Create(context.Background(), &user))

	token, err := utils.GenerateJWT(user.ID, user.Email, testSecret, time.Hour)
	require.NoError(t, err)
	return testUser{User: user, token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, user *testUser, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.Header.Set("Authorization", "Bearer "+user.token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	}
	return w, decoded
}

// createOrganization creates an organization as owner and returns its id
func (e *testEnv) createOrganization(t *testing.T, owner *testUser, name string) string {
	t.Helper()
	w, body := e.do(t, http.MethodPost, "/api/organizations", owner, organizationBody(name))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return data(body)["id"].(string)
}

func (e *testEnv) grant(t *testing.T, user testUser, role authz.Role, orgID string) {
	t.Helper()
	id, err := uuid.Parse(orgID)
	require.NoError(t, err)
	require.NoError(t, e.roles.AssignRole(context.Background(), user.ID, role, authz.OrganizationContext(id)))
}

func (e *testEnv) roleOf(t *testing.T, user testUser, orgID string) authz.Role {
	t.Helper()
	id, err := uuid.Parse(orgID)
	require.NoError(t, err)
	role, err := e.roles.RoleOf(context.Background(), user.ID, authz.OrganizationContext(id))
	require.NoError(t, err)
	return role
}

func organizationBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":  name,
		"type":  "organization",
		"email": "contact@example.com",
	}
}

func data(body map[string]interface{}) map[string]interface{} {
	return body["data"].(map[string]interface{})
}

func items(body map[string]interface{}) []interface{} {
	return body["data"].([]interface{})
}
