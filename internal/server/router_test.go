package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/briefmate/briefmate/internal/config"
	"github.com/briefmate/briefmate/internal/constants"
	"github.com/briefmate/briefmate/internal/testutil"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		SessionStore:   "cookie",
		SessionSecret:  "test-secret",
		GinMode:        gin.TestMode,
		Timezone:       "Europe/Paris",
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()

	store, err := NewSessionStore(cfg)
	require.NoError(t, err)

	return NewRouter(Deps{
		Config:       cfg,
		DB:           testutil.NewTestDB(t),
		SessionStore: store,
		Logger:       log.New(io.Discard),
	})
}

type client struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.10:4321"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return w
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(constants.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get(constants.RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	router := newTestRouter(t, testConfig())

	for _, path := range []string{"/api/briefs", "/api/clients", "/api/templates", "/api/stats", "/api/export/csv", "/api/auth/me"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestSessionFlow(t *testing.T) {
	c := &client{t: t, router: newTestRouter(t, testConfig())}

	w := c.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "flow@example.com",
		"password": "supersecret",
		"name":     "Flow",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/api/briefs", map[string]interface{}{"title": "Premier brief"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = c.do(http.MethodGet, "/api/briefs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Premier brief")

	// task generation is unavailable without an API key
	w = c.do(http.MethodPost, "/api/briefs/"+strconv.FormatUint(created.ID, 10)+"/tasks/generate", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = c.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodGet, "/api/briefs", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 1
	cfg.RateLimitBurst = 2
	c := &client{t: t, router: newTestRouter(t, cfg)}

	payload := map[string]string{"email": "nobody@example.com", "password": "whatever"}
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, c.do(http.MethodPost, "/api/auth/login", payload).Code)
	}

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}

func TestNewSessionStore_RejectsUnknownStore(t *testing.T) {
	cfg := testConfig()
	cfg.SessionStore = "memcached"

	_, err := NewSessionStore(cfg)
	assert.Error(t, err)
}

func TestNewAIService(t *testing.T) {
	cfg := testConfig()
	assert.Nil(t, NewAIService(cfg))

	cfg.OpenAIAPIKey = "sk-test"
	assert.NotNil(t, NewAIService(cfg))
}
