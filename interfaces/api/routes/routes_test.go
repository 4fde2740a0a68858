package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tasklist-api/application/serviceimpl"
	"tasklist-api/domain/models"
	"tasklist-api/domain/ports"
	"tasklist-api/infrastructure/messaging"
	"tasklist-api/infrastructure/postgres"
	"tasklist-api/infrastructure/storage"
	"tasklist-api/interfaces/api/handlers"
	"tasklist-api/interfaces/api/middleware"
	"tasklist-api/pkg/config"
	"tasklist-api/pkg/utils"
)

const testSecret = "routes-test-secret"

type memoryBlacklist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (b *memoryBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[tokenID] = true
	return nil
}

func (b *memoryBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revoked[tokenID], nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	app    *fiber.App
	bus    *messaging.LocalEventBus
	events []*ports.ChangeEvent
	mu     sync.Mutex
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, postgres.Migrate(db))

	storageCfg := config.StorageConfig{Type: "local", BasePath: t.TempDir(), BaseURL: "http://localhost/files"}
	fileStorage, err := storage.NewLocalStorage(storage.LocalStorageConfig{BasePath: storageCfg.BasePath, BaseURL: storageCfg.BaseURL})
	require.NoError(t, err)

	srv := &testServer{bus: messaging.NewLocalEventBus()}
	require.NoError(t, srv.bus.Subscribe(context.Background(), func(e *ports.ChangeEvent) {
		srv.mu.Lock()
		defer srv.mu.Unlock()
		srv.events = append(srv.events, e)
	}))

	blacklist := &memoryBlacklist{revoked: make(map[string]bool)}
	taskRepo := postgres.NewTaskRepository(db)
	collectionService := serviceimpl.NewCollectionService(postgres.NewCollectionRepository(db), srv.bus)

	h := handlers.NewHandlers(&handlers.Services{
		UserService:       serviceimpl.NewUserService(postgres.NewUserRepository(db), blacklist, testSecret, time.Hour),
		TaskService:       serviceimpl.NewTaskService(taskRepo, srv.bus),
		CollectionService: collectionService,
		DashboardService:  serviceimpl.NewDashboardService(collectionService),
		ExportService:     serviceimpl.NewExportService(collectionService, fileStorage),
		ExpirySweep:       serviceimpl.NewExpirySweepService(taskRepo, srv.bus, nil, "", 24*time.Hour),
		TokenBlacklist:    blacklist,
		JWTSecret:         testSecret,
		HealthChecks: map[string]handlers.HealthCheck{
			"database": sqlDB.PingContext,
		},
	})

	srv.app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	srv.app.Use(middleware.RequestIDMiddleware())
	SetupRoutes(srv.app, h, storageCfg)
	return srv
}

func (s *testServer) eventTypes() []ports.ChangeEventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.ChangeEventType, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Type)
	}
	return out
}

func tokenFor(t *testing.T, userID, firstName string) string {
	t.Helper()
	return tokenWithRole(t, userID, firstName, models.RoleUser)
}

func tokenWithRole(t *testing.T, userID, firstName, role string) string {
	t.Helper()
	token, _, err := utils.GenerateToken(utils.TokenSubject{UserID: userID, FirstName: firstName, LastName: "Test", Role: role}, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

type taskBody struct {
	ID           uint       `json:"id"`
	UserID       string     `json:"userId"`
	CollectionID uint       `json:"collectionId"`
	Content      string     `json:"content"`
	Done         bool       `json:"done"`
	ExpiresAt    *time.Time `json:"expiresAt"`
}

type collectionBody struct {
	ID    uint       `json:"id"`
	Name  string     `json:"name"`
	Color string     `json:"color"`
	Tasks []taskBody `json:"tasks"`
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, map[string]string{"database": "ok"}, body.Checks)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/dashboard"},
		{http.MethodGet, "/api/v1/collections"},
		{http.MethodPost, "/api/v1/collections"},
		{http.MethodDelete, "/api/v1/collections/1"},
		{http.MethodPost, "/api/v1/tasks"},
		{http.MethodPatch, "/api/v1/tasks/1/status"},
		{http.MethodDelete, "/api/v1/tasks/1"},
		{http.MethodPost, "/api/v1/exports"},
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodPost, "/api/v1/auth/logout"},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			status, env := srv.do(t, r.method, r.path, "", "")
			assert.Equal(t, http.StatusUnauthorized, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, utils.ErrCodeUnauthorized, env.Error.Code)

			status, _ = srv.do(t, r.method, r.path, "garbage", "")
			assert.Equal(t, http.StatusUnauthorized, status)
		})
	}
}

func TestCollectionAndTaskLifecycle(t *testing.T) {
	srv := newTestServer(t)
	alice := tokenFor(t, "alice", "Alice")
	bob := tokenFor(t, "bob", "Bob")

	status, env := srv.do(t, http.MethodPost, "/api/v1/collections", alice, `{"name":"Work","color":"sunset"}`)
	require.Equal(t, http.StatusCreated, status)
	work := decode[collectionBody](t, env)
	assert.Equal(t, "Work", work.Name)

	// create task without expiresAt
	status, env = srv.do(t, http.MethodPost, "/api/v1/tasks", alice,
		fmt.Sprintf(`{"collectionId":%d,"content":"write report"}`, work.ID))
	require.Equal(t, http.StatusCreated, status)
	task := decode[taskBody](t, env)
	assert.False(t, task.Done)
	assert.Nil(t, task.ExpiresAt)
	assert.Equal(t, "alice", task.UserID)

	// bob cannot add to alice's collection
	status, env = srv.do(t, http.MethodPost, "/api/v1/tasks", bob,
		fmt.Sprintf(`{"collectionId":%d,"content":"sneaky"}`, work.ID))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, utils.ErrCodeNotFound, env.Error.Code)

	// status change is idempotent
	for i := 0; i < 2; i++ {
		status, env = srv.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d/status", task.ID), alice, `{"done":true}`)
		require.Equal(t, http.StatusOK, status)
		assert.True(t, decode[taskBody](t, env).Done)
	}

	// bob sees 404 for alice's task, same as a missing one
	status, _ = srv.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d/status", task.ID), bob, `{"done":false}`)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%d", task.ID), bob, "")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = srv.do(t, http.MethodDelete, "/api/v1/tasks/9999", alice, "")
	assert.Equal(t, http.StatusNotFound, status)

	// list is scoped
	status, env = srv.do(t, http.MethodGet, "/api/v1/collections", bob, "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]collectionBody](t, env))

	status, env = srv.do(t, http.MethodGet, "/api/v1/collections", alice, "")
	require.Equal(t, http.StatusOK, status)
	list := decode[[]collectionBody](t, env)
	require.Len(t, list, 1)
	require.Len(t, list[0].Tasks, 1)
	assert.True(t, list[0].Tasks[0].Done)

	// delete returns the record, second delete is 404
	status, env = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%d", task.ID), alice, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "write report", decode[taskBody](t, env).Content)
	status, _ = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%d", task.ID), alice, "")
	assert.Equal(t, http.StatusNotFound, status)

	// collection delete cascades
	srv.do(t, http.MethodPost, "/api/v1/tasks", alice, fmt.Sprintf(`{"collectionId":%d,"content":"a"}`, work.ID))
	status, _ = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/collections/%d", work.ID), bob, "")
	assert.Equal(t, http.StatusNotFound, status)
	status, env = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/collections/%d", work.ID), alice, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[collectionBody](t, env).Tasks, 1)

	status, env = srv.do(t, http.MethodGet, "/api/v1/collections", alice, "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]collectionBody](t, env))

	assert.Equal(t, []ports.ChangeEventType{
		ports.EventCollectionCreated,
		ports.EventTaskCreated,
		ports.EventTaskStatusChanged,
		ports.EventTaskStatusChanged,
		ports.EventTaskDeleted,
		ports.EventTaskCreated,
		ports.EventCollectionDeleted,
	}, srv.eventTypes())
}

func TestValidationErrors(t *testing.T) {
	srv := newTestServer(t)
	alice := tokenFor(t, "alice", "Alice")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		field  string
	}{
		{"negative collection id", http.MethodPost, "/api/v1/tasks", `{"collectionId":-1,"content":"x"}`, "collectionId"},
		{"missing content", http.MethodPost, "/api/v1/tasks", `{"collectionId":1}`, "content"},
		{"content not a string", http.MethodPost, "/api/v1/tasks", `{"collectionId":1,"content":5}`, "content"},
		{"bad date", http.MethodPost, "/api/v1/tasks", `{"collectionId":1,"content":"x","expiresAt":"soon"}`, "expiresAt"},
		{"missing done", http.MethodPatch, "/api/v1/tasks/1/status", `{}`, "done"},
		{"done not a boolean", http.MethodPatch, "/api/v1/tasks/1/status", `{"done":"yes"}`, "done"},
		{"task id not a number", http.MethodPatch, "/api/v1/tasks/abc/status", `{"done":true}`, "id"},
		{"negative task id", http.MethodDelete, "/api/v1/tasks/-3", "", "id"},
		{"short collection name", http.MethodPost, "/api/v1/collections", `{"name":"abc","color":"sunset"}`, "name"},
		{"unknown color", http.MethodPost, "/api/v1/collections", `{"name":"Work","color":"teal"}`, "color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := srv.do(t, tt.method, tt.path, alice, tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, utils.ErrCodeValidation, env.Error.Code)
			assert.Contains(t, env.Error.Details, tt.field)
		})
	}

	assert.Empty(t, srv.eventTypes())
}

func TestValidationListsEveryFailingField(t *testing.T) {
	srv := newTestServer(t)
	alice := tokenFor(t, "alice", "Alice")

	status, env := srv.do(t, http.MethodPost, "/api/v1/tasks", alice, `{"collectionId":-1,"content":5}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, map[string]string{
		"collectionId": "must be greater than or equal to 0",
		"content":      "must be of type string",
	}, env.Error.Details)

	status, env = srv.do(t, http.MethodPost, "/api/v1/tasks", alice, `{"collectionId":"one","content":"x","expiresAt":"soon"}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, map[string]string{
		"collectionId": "must be of type number",
		"expiresAt":    "must be an RFC 3339 date",
	}, env.Error.Details)

	status, env = srv.do(t, http.MethodPost, "/api/v1/collections", alice, `{"name":7,"color":"teal"}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, map[string]string{
		"name":  "must be of type string",
		"color": "must be one of: sunset, poppy, rosebud",
	}, env.Error.Details)
}

func TestDashboardAndExport(t *testing.T) {
	srv := newTestServer(t)
	alice := tokenFor(t, "alice", "Alice")

	status, env := srv.do(t, http.MethodGet, "/api/v1/dashboard", alice, "")
	require.Equal(t, http.StatusOK, status)
	empty := decode[map[string]any](t, env)
	assert.Equal(t, true, empty["isEmpty"])
	assert.Equal(t, "Alice", empty["welcome"].(map[string]any)["firstName"])

	_, env = srv.do(t, http.MethodPost, "/api/v1/collections", alice, `{"name":"Home","color":"rosebud"}`)
	home := decode[collectionBody](t, env)
	for i := 0; i < 4; i++ {
		_, env = srv.do(t, http.MethodPost, "/api/v1/tasks", alice, fmt.Sprintf(`{"collectionId":%d,"content":"t%d"}`, home.ID, i))
		if i == 0 {
			first := decode[taskBody](t, env)
			srv.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d/status", first.ID), alice, `{"done":true}`)
		}
	}

	status, env = srv.do(t, http.MethodGet, "/api/v1/dashboard", alice, "")
	require.Equal(t, http.StatusOK, status)
	var dashboard struct {
		IsEmpty     bool `json:"isEmpty"`
		Collections []struct {
			Gradient   string  `json:"gradient"`
			TasksTotal int     `json:"tasksTotal"`
			TasksDone  int     `json:"tasksDone"`
			Progress   float64 `json:"progress"`
		} `json:"collections"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dashboard))
	assert.False(t, dashboard.IsEmpty)
	require.Len(t, dashboard.Collections, 1)
	assert.Equal(t, 4, dashboard.Collections[0].TasksTotal)
	assert.Equal(t, 1, dashboard.Collections[0].TasksDone)
	assert.Equal(t, 25.0, dashboard.Collections[0].Progress)
	assert.NotEmpty(t, dashboard.Collections[0].Gradient)

	status, env = srv.do(t, http.MethodPost, "/api/v1/exports", alice, "")
	require.Equal(t, http.StatusCreated, status)
	export := decode[map[string]any](t, env)
	assert.Equal(t, "local", export["provider"])
	assert.EqualValues(t, 4, export["tasks"])

	// local storage ถูกเสิร์ฟที่ /files
	path := export["path"].(string)
	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/files/"+path, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)

	status, env := srv.do(t, http.MethodPost, "/api/v1/auth/register", "",
		`{"email":"somchai@example.com","username":"somchai","password":"correct-horse","firstName":"Somchai","lastName":"Jaidee"}`)
	require.Equal(t, http.StatusCreated, status)

	status, _ = srv.do(t, http.MethodPost, "/api/v1/auth/register", "",
		`{"email":"somchai@example.com","username":"other","password":"correct-horse","firstName":"S","lastName":"J"}`)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = srv.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"somchai@example.com","password":"wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env = srv.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"somchai@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, status)
	login := decode[struct {
		Token     string `json:"token"`
		ExpiresAt int64  `json:"expiresAt"`
	}](t, env)
	require.NotEmpty(t, login.Token)
	assert.Greater(t, login.ExpiresAt, time.Now().Unix())

	status, env = srv.do(t, http.MethodGet, "/api/v1/auth/me", login.Token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "somchai", decode[map[string]any](t, env)["username"])

	// dashboard welcome uses the account name
	status, env = srv.do(t, http.MethodGet, "/api/v1/dashboard", login.Token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Jaidee", decode[map[string]any](t, env)["welcome"].(map[string]any)["lastName"])

	status, env = srv.do(t, http.MethodPost, "/api/v1/auth/logout", login.Token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, decode[map[string]any](t, env)["revoked"])

	status, env = srv.do(t, http.MethodGet, "/api/v1/auth/me", login.Token, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token has been revoked", env.Error.Message)
}

func TestGoogleLoginNotConfigured(t *testing.T) {
	srv := newTestServer(t)
	status, _ := srv.do(t, http.MethodGet, "/api/v1/auth/google", "", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminSweepExpiring(t *testing.T) {
	srv := newTestServer(t)
	alice := tokenFor(t, "alice", "Alice")
	admin := tokenWithRole(t, "root", "Root", models.RoleAdmin)

	_, env := srv.do(t, http.MethodPost, "/api/v1/collections", alice, `{"name":"Work","color":"poppy"}`)
	work := decode[collectionBody](t, env)

	soon := time.Now().UTC().Add(2 * time.Hour).Format(time.RFC3339)
	later := time.Now().UTC().Add(72 * time.Hour).Format(time.RFC3339)
	srv.do(t, http.MethodPost, "/api/v1/tasks", alice, fmt.Sprintf(`{"collectionId":%d,"content":"soon","expiresAt":%q}`, work.ID, soon))
	srv.do(t, http.MethodPost, "/api/v1/tasks", alice, fmt.Sprintf(`{"collectionId":%d,"content":"later","expiresAt":%q}`, work.ID, later))

	status, env := srv.do(t, http.MethodPost, "/api/v1/admin/sweep-expiring", alice, "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, utils.ErrCodeForbidden, env.Error.Code)

	status, env = srv.do(t, http.MethodPost, "/api/v1/admin/sweep-expiring", admin, "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, decode[map[string]any](t, env)["expiringTasks"])

	types := srv.eventTypes()
	assert.Equal(t, ports.EventTasksExpiring, types[len(types)-1])
}
