package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campbook/internal/cache"
	"campbook/internal/config"
	"campbook/internal/domain"
	"campbook/internal/domain/models"
	h "campbook/internal/http/handlers"
	"campbook/internal/repositories"
	"campbook/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUsers struct {
	services.UserStore
	byID map[int64]models.User
}

func (m *memUsers) GetByID(_ context.Context, id int64) (models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return u, repositories.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (m *memUsers) List(context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) TouchLogin(context.Context, int64, time.Time) error { return nil }

type envelope struct {
	Success    bool               `json:"success"`
	Data       json.RawMessage    `json:"data"`
	Pagination *domain.Pagination `json:"pagination"`
	Error      *h.ErrorBody       `json:"error"`
	RequestID  string             `json:"request_id"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	r, _ := newTestRouterWithUsers(t)
	return r
}

func newTestRouterWithUsers(t *testing.T) (*gin.Engine, *memUsers) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &memUsers{byID: map[int64]models.User{
		1: {ID: 1, Username: "admin", PasswordHash: string(hash), Role: models.RoleAdmin, Status: models.UserActive},
		2: {ID: 2, Username: "staff", PasswordHash: string(hash), Role: models.RoleStaff, Status: models.UserActive},
	}}
	hd := &h.Handler{
		Auth:    services.AuthService{Users: users, Cache: cache.NewMemoryStore(), Secret: []byte("router-test"), TTL: time.Hour},
		Users:   services.UserService{Users: users},
		Uploads: services.UploadService{Dir: t.TempDir(), MaxBytes: 1 << 20},
	}
	return NewRouter(config.Env{MetricsEnabled: true}, hd), users
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func login(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res services.LoginResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	return res.Token
}

func TestHealthAndNoRoute(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, env = do(t, r, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.CodeNotFound, env.Error.Code)
	assert.Equal(t, w.Header().Get("X-Request-ID"), env.RequestID)
}

func TestDBCheckWithoutDatabase(t *testing.T) {
	r := newTestRouter(t)
	w, env := do(t, r, http.MethodGet, "/api/db-check", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, env.Success)
}

func TestLoginMeLogout(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, domain.CodeUnauthorized, env.Error.Code)

	token := login(t, r, "admin")

	w, env = do(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me models.User
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "admin", me.Username)

	w, _ = do(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, domain.CodeUnauthorized, env.Error.Code)
}

func TestTokenFollowsAccountChanges(t *testing.T) {
	r, users := newTestRouterWithUsers(t)
	staff := login(t, r, "staff")
	admin := login(t, r, "admin")

	// demoted after login: the stored role decides
	u := users.byID[1]
	u.Role = models.RoleStaff
	users.byID[1] = u
	w, env := do(t, r, http.MethodGet, "/api/users", admin, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, domain.CodeForbidden, env.Error.Code)

	u = users.byID[2]
	u.Status = models.UserDisabled
	users.byID[2] = u
	w, env = do(t, r, http.MethodGet, "/api/auth/me", staff, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, domain.CodeUnauthorized, env.Error.Code)

	delete(users.byID, 1)
	w, _ = do(t, r, http.MethodGet, "/api/auth/me", admin, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	r := newTestRouter(t)
	for _, path := range []string{"/api/customers", "/api/orders", "/api/schedules", "/api/dashboard/stats", "/api/export/orders"} {
		w, env := do(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, domain.CodeUnauthorized, env.Error.Code, path)
	}
}

func TestUsersAreAdminOnly(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/users", login(t, r, "staff"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, domain.CodeForbidden, env.Error.Code)

	w, env = do(t, r, http.MethodGet, "/api/users", login(t, r, "admin"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.User
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 2)
}

func TestInvalidPathIDAndBody(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "admin")

	w, env := do(t, r, http.MethodGet, "/api/customers/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.CodeValidation, env.Error.Code)

	w, env = do(t, r, http.MethodPost, "/api/customers", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.CodeValidation, env.Error.Code)
}

func TestUploadRequiresFile(t *testing.T) {
	r := newTestRouter(t)
	w, env := do(t, r, http.MethodPost, "/api/uploads/images", login(t, r, "staff"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.CodeValidation, env.Error.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodGet, "/api/health", "", nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
