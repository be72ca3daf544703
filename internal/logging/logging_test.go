package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/briefmate/briefmate/internal/constants"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyReqID, "req-1")
		c.Next()
	})
	router.Use(RequestLogger(logger))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "path=/ok")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "request_id=req-1")

	buf.Reset()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Contains(t, buf.String(), "WARN")
}

func TestSetup(t *testing.T) {
	defer log.SetDefault(log.Default())

	Setup("debug", false)
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	Setup("nonsense", true)
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}
