// Package logging configures the process logger and the HTTP access log.
package logging

import (
	"os"
	"time"

	"github.com/briefmate/briefmate/internal/constants"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// Setup sets the level of the default logger. JSON output is used in
// production so logs can be shipped as-is.
func Setup(level string, production bool) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       formatter(production),
	}))

	if err != nil && level != "" {
		log.Warn("Unknown log level, using info", "level", level)
	}
}

func formatter(production bool) log.Formatter {
	if production {
		return log.JSONFormatter
	}
	return log.TextFormatter
}

// RequestLogger writes one line per request to logger
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
			"request_id", c.GetString(constants.ContextKeyReqID),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			logger.Error("request", fields...)
		case status >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
