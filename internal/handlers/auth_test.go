package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/briefmate/briefmate/internal/constants"
	"github.com/briefmate/briefmate/internal/dto"
	apierrors "github.com/briefmate/briefmate/internal/errors"
	"github.com/briefmate/briefmate/internal/middleware"
	"github.com/briefmate/briefmate/internal/repository"
	"github.com/briefmate/briefmate/internal/services"
	"github.com/briefmate/briefmate/internal/testutil"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authTestEnv struct {
	router      *gin.Engine
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	apierrors.UseJSONFieldNames()

	db := testutil.NewTestDB(t)
	authService := services.NewAuthService(repository.NewUserRepository(db))
	handler := NewAuthHandler(authService)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/signup", handler.Signup)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/logout", handler.Logout)
	r.GET("/api/auth/me", middleware.RequireAuth(), handler.GetCurrentUser)

	return authTestEnv{
		router:      r,
		authService: authService,
	}
}

func (env authTestEnv) post(t *testing.T, path string, payload interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env authTestEnv) me(cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.post(t, "/api/auth/signup", map[string]string{
		"email":    "Alice@Example.com",
		"password": "supersecret",
		"name":     "Alice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	response := decode[dto.UserDTO](t, w)
	assert.Equal(t, "alice@example.com", response.Email)
	assert.Equal(t, "Alice", response.Name)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")

	me := env.me(cookies)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, response.ID, decode[dto.UserDTO](t, me).ID)
}

func TestAuthHandler_SignupDuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(services.SignupInput{
		Email:    "taken@example.com",
		Password: "supersecret",
		Name:     "Taken",
	})
	require.NoError(t, err)

	w := env.post(t, "/api/auth/signup", map[string]string{
		"email":    "TAKEN@example.com",
		"password": "supersecret",
		"name":     "Someone",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apierrors.ErrCodeConflict, decode[errorBody](t, w).Code)
}

func TestAuthHandler_SignupValidation(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.post(t, "/api/auth/signup", map[string]string{
		"email":    "not-an-email",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode[errorBody](t, w)
	assert.Equal(t, apierrors.ErrCodeInvalidInput, body.Code)
	assert.Contains(t, body.Details, "email")
	assert.Contains(t, body.Details, "name")

	w = env.post(t, "/api/auth/signup", map[string]string{
		"email":    "short@example.com",
		"password": "123",
		"name":     "Short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorBody](t, w).Message, "Password must be at least 6")

	w = env.post(t, "/api/auth/signup", map[string]string{
		"email":    "name@example.com",
		"password": "supersecret",
		"name":     " A ",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[errorBody](t, w).Message, "Name must be at least 2")
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(services.SignupInput{
		Email:    "existing@example.com",
		Password: "supersecret",
		Name:     "Existing",
	})
	require.NoError(t, err)

	w := env.post(t, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "existing@example.com", decode[dto.UserDTO](t, w).Email)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	assert.Equal(t, http.StatusOK, env.me(cookies).Code)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(services.SignupInput{
		Email:    "existing@example.com",
		Password: "supersecret",
		Name:     "Existing",
	})
	require.NoError(t, err)

	for _, payload := range []map[string]string{
		{"email": "existing@example.com", "password": "wrong-password"},
		{"email": "unknown@example.com", "password": "supersecret"},
	} {
		w := env.post(t, "/api/auth/login", payload)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apierrors.ErrCodeInvalidCredentials, decode[errorBody](t, w).Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.post(t, "/api/auth/signup", map[string]string{
		"email":    "bye@example.com",
		"password": "supersecret",
		"name":     "Bye",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	logout := env.post(t, "/api/auth/logout", nil, w.Result().Cookies()...)
	require.Equal(t, http.StatusOK, logout.Code)

	assert.Equal(t, http.StatusUnauthorized, env.me(logout.Result().Cookies()).Code)
}

func TestAuthHandler_GetCurrentUserWithoutSession(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.me(nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apierrors.ErrCodeUnauthorized, decode[errorBody](t, w).Code)
}
