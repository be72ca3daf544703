// Package server assembles the HTTP routes shared by the serve command and tests.
package server

import (
	"fmt"
	"net/http"

	"github.com/briefmate/briefmate/internal/config"
	"github.com/briefmate/briefmate/internal/constants"
	apierrors "github.com/briefmate/briefmate/internal/errors"
	"github.com/briefmate/briefmate/internal/handlers"
	"github.com/briefmate/briefmate/internal/logging"
	"github.com/briefmate/briefmate/internal/middleware"
	"github.com/briefmate/briefmate/internal/repository"
	"github.com/briefmate/briefmate/internal/services"
	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps holds what the router needs from the outside world
type Deps struct {
	Config       *config.Config
	DB           *gorm.DB
	SessionStore sessions.Store

	// Suggester backs task generation; nil disables it
	Suggester services.TaskSuggester

	// Logger receives the access log; the default logger when nil
	Logger *log.Logger
}

// NewSessionStore builds the session store selected by cfg.SessionStore
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store

	switch cfg.SessionStore {
	case "redis":
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			redisAddr,
			"", // username (empty for default user)
			"", // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = rs
	case "cookie":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.SessionStore)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// NewAIService returns the OpenAI task suggester, or nil when no key is configured
func NewAIService(cfg *config.Config) services.TaskSuggester {
	if cfg.OpenAIAPIKey == "" {
		return nil
	}
	return services.NewAIService(cfg.OpenAIAPIKey)
}

// NewRouter wires repositories, services and handlers into a gin engine
func NewRouter(deps Deps) *gin.Engine {
	cfg := deps.Config
	loc := cfg.Location()

	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}

	apierrors.UseJSONFieldNames()

	// Repositories
	userRepo := repository.NewUserRepository(deps.DB)
	clientRepo := repository.NewClientRepository(deps.DB)
	briefRepo := repository.NewBriefRepository(deps.DB)
	taskRepo := repository.NewTaskRepository(deps.DB)
	templateRepo := repository.NewTemplateRepository(deps.DB)
	statsRepo := repository.NewStatsRepository(deps.DB)

	// Services
	briefService := services.NewBriefService(briefRepo, clientRepo, loc)

	// Handlers
	authHandler := handlers.NewAuthHandler(services.NewAuthService(userRepo))
	clientHandler := handlers.NewClientHandler(services.NewClientService(clientRepo))
	briefHandler := handlers.NewBriefHandler(briefService, loc)
	taskHandler := handlers.NewTaskHandler(services.NewTaskService(taskRepo, briefRepo, deps.Suggester))
	templateHandler := handlers.NewTemplateHandler(services.NewTemplateService(templateRepo, briefRepo, clientRepo, loc))
	statsHandler := handlers.NewStatsHandler(services.NewStatsService(statsRepo, clientRepo, loc))
	exportHandler := handlers.NewExportHandler(services.NewExportService(briefRepo), loc)

	authLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	briefAccess := middleware.RequireBriefAccess(briefService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Briefmate API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth")
		auth.Use(authLimiter.Middleware())
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth())

		clients := protected.Group("/clients")
		{
			clients.GET("", clientHandler.ListClients)
			clients.POST("", clientHandler.CreateClient)
			clients.GET("/:id", clientHandler.GetClient)
			clients.PUT("/:id", clientHandler.UpdateClient)
			clients.DELETE("/:id", clientHandler.DeleteClient)
		}

		briefs := protected.Group("/briefs")
		{
			briefs.GET("", briefHandler.ListBriefs)
			briefs.POST("", briefHandler.CreateBrief)
			briefs.GET("/:id", briefAccess, briefHandler.GetBrief)
			briefs.PUT("/:id", briefHandler.UpdateBrief)
			briefs.DELETE("/:id", briefHandler.DeleteBrief)
			briefs.GET("/:id/export/pdf", briefAccess, briefHandler.ExportBriefPDF)
			briefs.POST("/:id/tasks", taskHandler.CreateTask)
			briefs.POST("/:id/tasks/generate", taskHandler.GenerateTasks)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.PATCH("/:id/toggle", taskHandler.ToggleTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		templates := protected.Group("/templates")
		{
			templates.GET("", templateHandler.ListTemplates)
			templates.POST("", templateHandler.CreateTemplate)
			templates.GET("/:id", templateHandler.GetTemplate)
			templates.PUT("/:id", templateHandler.UpdateTemplate)
			templates.DELETE("/:id", templateHandler.DeleteTemplate)
			templates.POST("/:id/use", templateHandler.UseTemplate)
		}

		protected.GET("/stats", statsHandler.GetStats)

		exports := protected.Group("/export")
		{
			exports.GET("", exportHandler.ExportJSON)
			exports.GET("/csv", exportHandler.ExportCSV)
			exports.GET("/pdf", exportHandler.ExportPDF)
		}
	}

	return r
}
