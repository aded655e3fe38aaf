package handlers_test

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

	"github.com/geoexplorer/geoexplorer-api/internal/application"
	"github.com/geoexplorer/geoexplorer-api/internal/container"
	"github.com/geoexplorer/geoexplorer-api/internal/infrastructure/memory"
	handlers "github.com/geoexplorer/geoexplorer-api/internal/interface/http"
	"github.com/geoexplorer/geoexplorer-api/internal/router"
	"github.com/geoexplorer/geoexplorer-api/internal/router/modules"
	"github.com/geoexplorer/geoexplorer-api/pkg/helpers"
	"github.com/geoexplorer/geoexplorer-api/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type fixture struct {
	engine *gin.Engine
	repo   *memory.UserRepository
	jwt    *helpers.JWTManager
}

// newFixture wires the real router modules against the in-memory store, so
// requests travel the same middleware chain as in production.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	container.SetLogger(logger)
	container.SetRedis(nil) // rate limiting becomes a no-op

	jwt, err := helpers.NewJWTManager("test-secret", time.Hour)
	require.NoError(t, err)

	repo := memory.NewUserRepository()
	authSvc := application.NewAuthService(repo, jwt, logger, nil, "GeoExplorer", false)
	favSvc := application.NewFavoritesService(repo, logger)

	engine := gin.New()
	reg := router.NewRegistry(engine)
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), jwt))
	reg.Add(modules.NewFavoritesModule(handlers.NewFavoritesHandler(favSvc, logger), jwt))
	reg.RegisterAll()

	return &fixture{engine: engine, repo: repo, jwt: jwt}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerBody(email string) map[string]string {
	return map[string]string{
		"name":     "Ana",
		"email":    email,
		"phone":    "555-0100",
		"password": "Passw0rd1",
	}
}

func TestEndToEndScenario(t *testing.T) {
	f := newFixture(t)

	// register
	w := f.do(t, http.MethodPost, "/api/auth/register", "", registerBody("ana@x.com"))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User registered successfully", decode(t, w)["message"])

	// login
	w = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ana@x.com", "password": "Passw0rd1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	loginResp := decode(t, w)
	token, _ := loginResp["token"].(string)
	require.NotEmpty(t, token)
	user, ok := loginResp["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ana", user["name"])
	assert.Equal(t, "ana@x.com", user["email"])
	assert.Equal(t, "555-0100", user["phone"])
	assert.NotContains(t, user, "password")

	// me
	w = f.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode(t, w)
	assert.Equal(t, user["id"], me["id"])
	assert.Equal(t, "ana@x.com", me["email"])
	assert.NotContains(t, me, "password")

	// add favorite
	w = f.do(t, http.MethodPost, "/api/favorites/add", token, map[string]string{"countryCode": "FR"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"FR"}, decode(t, w)["favorites"])

	// remove it
	w = f.do(t, http.MethodDelete, "/api/favorites/remove/FR", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, decode(t, w)["favorites"])

	// removing again is an error, not a no-op
	w = f.do(t, http.MethodDelete, "/api/favorites/remove/FR", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Country not found in favorites", decode(t, w)["message"])
}

func TestAuthGate(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", "No token provided, authorization denied"},
		{"wrong scheme", "Token abc", "No token provided, authorization denied"},
		{"bare bearer", "Bearer ", "No token provided, authorization denied"},
		{"garbage token", "Bearer not.a.jwt", "Invalid token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			f.engine.ServeHTTP(w, req)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tc.want, decode(t, w)["message"])
		})
	}
}

func TestAuthGate_UnsignedToken(t *testing.T) {
	f := newFixture(t)

	// Token signed with a different secret must be rejected.
	other, err := helpers.NewJWTManager("other-secret", time.Hour)
	require.NoError(t, err)
	forged, _, err := other.GenerateToken("user-1")
	require.NoError(t, err)

	w := f.do(t, http.MethodGet, "/api/favorites", forged, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decode(t, w)["message"])
}

func TestRegister_MissingField(t *testing.T) {
	f := newFixture(t)

	body := registerBody("ana@x.com")
	delete(body, "phone")
	w := f.do(t, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All fields are required", decode(t, w)["message"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/auth/register", "", registerBody("ana@x.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodPost, "/api/auth/register", "", registerBody("ana@x.com"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already in use", decode(t, w)["message"])
}

func TestLogin_Failures(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/auth/register", "", registerBody("ana@x.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	// missing field
	w = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@x.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email and password are required", decode(t, w)["message"])

	// wrong password and unknown email answer identically
	for _, body := range []map[string]string{
		{"email": "ana@x.com", "password": "wrong"},
		{"email": "ghost@x.com", "password": "Passw0rd1"},
	} {
		w = f.do(t, http.MethodPost, "/api/auth/login", "", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid credentials", decode(t, w)["message"])
	}
}

func TestFavoritesAdd_Validation(t *testing.T) {
	f := newFixture(t)
	token := registerAndLogin(t, f, "ana@x.com")

	for _, body := range []any{map[string]string{}, map[string]string{"countryCode": "  "}} {
		w := f.do(t, http.MethodPost, "/api/favorites/add", token, body)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Country code is required", decode(t, w)["message"])
	}
}

func TestFavoritesAdd_Idempotent(t *testing.T) {
	f := newFixture(t)
	token := registerAndLogin(t, f, "ana@x.com")

	for i := 0; i < 2; i++ {
		w := f.do(t, http.MethodPost, "/api/favorites/add", token, map[string]string{"countryCode": "US"})
		require.Equal(t, http.StatusOK, w.Code, "call %d", i+1)
		assert.Equal(t, []any{"US"}, decode(t, w)["favorites"])
	}
}

func TestProtectedRoutes_UserDeletedAfterToken(t *testing.T) {
	f := newFixture(t)
	token := registerAndLogin(t, f, "ana@x.com")

	claims, err := f.jwt.ParseToken(token)
	require.NoError(t, err)
	f.repo.Delete(claims.UserID)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/favorites"},
	} {
		w := f.do(t, tc.method, tc.path, token, nil)
		require.Equal(t, http.StatusNotFound, w.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "User not found", decode(t, w)["message"])
	}
}

func registerAndLogin(t *testing.T, f *fixture, email string) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/auth/register", "", registerBody(email))
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": "Passw0rd1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}
