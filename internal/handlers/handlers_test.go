package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/briefmate/briefmate/internal/constants"
	"github.com/briefmate/briefmate/internal/middleware"
	"github.com/briefmate/briefmate/internal/models"
	"github.com/briefmate/briefmate/internal/repository"
	"github.com/briefmate/briefmate/internal/services"
	"github.com/briefmate/briefmate/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testUserHeader stands in for the session cookie in handler tests
const testUserHeader = "X-Test-User"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSuggester struct {
	tasks []services.GeneratedTask
	err   error
}

func (f *fakeSuggester) SuggestTasks(ctx context.Context, title, description string) ([]services.GeneratedTask, error) {
	return f.tasks, f.err
}

type handlerTestEnv struct {
	db        *gorm.DB
	router    *gin.Engine
	user      *models.User
	other     *models.User
	suggester *fakeSuggester
}

// setupHandlerTestEnv wires every handler on an in-memory database. When
// withAI is false the task service has no suggester.
func setupHandlerTestEnv(t *testing.T, withAI bool) handlerTestEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	briefRepo := repository.NewBriefRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	env := handlerTestEnv{
		db:    db,
		user:  testutil.CreateUser(t, db, "owner@example.com"),
		other: testutil.CreateUser(t, db, "other@example.com"),
	}

	var suggester services.TaskSuggester
	if withAI {
		env.suggester = &fakeSuggester{}
		suggester = env.suggester
	}

	briefService := services.NewBriefService(briefRepo, clientRepo, time.UTC)
	authHandler := NewAuthHandler(services.NewAuthService(userRepo))
	clientHandler := NewClientHandler(services.NewClientService(clientRepo))
	briefHandler := NewBriefHandler(briefService, time.UTC)
	taskHandler := NewTaskHandler(services.NewTaskService(taskRepo, briefRepo, suggester))
	templateHandler := NewTemplateHandler(services.NewTemplateService(templateRepo, briefRepo, clientRepo, time.UTC))
	statsHandler := NewStatsHandler(services.NewStatsService(statsRepo, clientRepo, time.UTC))
	exportHandler := NewExportHandler(services.NewExportService(briefRepo), time.UTC)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id, err := strconv.ParseUint(c.GetHeader(testUserHeader), 10, 64); err == nil {
			c.Set(constants.ContextKeyUserID, id)
		}
		c.Next()
	})

	api := r.Group("/api")
	api.GET("/auth/me", authHandler.GetCurrentUser)

	api.GET("/clients", clientHandler.ListClients)
	api.POST("/clients", clientHandler.CreateClient)
	api.GET("/clients/:id", clientHandler.GetClient)
	api.PUT("/clients/:id", clientHandler.UpdateClient)
	api.DELETE("/clients/:id", clientHandler.DeleteClient)

	api.GET("/briefs", briefHandler.ListBriefs)
	api.POST("/briefs", briefHandler.CreateBrief)
	api.GET("/briefs/:id", middleware.RequireBriefAccess(briefService), briefHandler.GetBrief)
	api.PUT("/briefs/:id", briefHandler.UpdateBrief)
	api.DELETE("/briefs/:id", briefHandler.DeleteBrief)
	api.GET("/briefs/:id/export/pdf", middleware.RequireBriefAccess(briefService), briefHandler.ExportBriefPDF)
	api.POST("/briefs/:id/tasks", taskHandler.CreateTask)
	api.POST("/briefs/:id/tasks/generate", taskHandler.GenerateTasks)

	api.PATCH("/tasks/:id/toggle", taskHandler.ToggleTask)
	api.DELETE("/tasks/:id", taskHandler.DeleteTask)

	api.GET("/templates", templateHandler.ListTemplates)
	api.POST("/templates", templateHandler.CreateTemplate)
	api.GET("/templates/:id", templateHandler.GetTemplate)
	api.PUT("/templates/:id", templateHandler.UpdateTemplate)
	api.DELETE("/templates/:id", templateHandler.DeleteTemplate)
	api.POST("/templates/:id/use", templateHandler.UseTemplate)

	api.GET("/stats", statsHandler.GetStats)
	api.GET("/export", exportHandler.ExportJSON)
	api.GET("/export/csv", exportHandler.ExportCSV)
	api.GET("/export/pdf", exportHandler.ExportPDF)

	env.router = r
	return env
}

// do performs a request as userID (0 for anonymous) with an optional JSON body
func (env handlerTestEnv) do(t *testing.T, method, path string, userID uint64, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req.Header.Set(testUserHeader, strconv.FormatUint(userID, 10))
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func idPath(prefix string, id uint64, suffix string) string {
	return prefix + "/" + strconv.FormatUint(id, 10) + suffix
}
