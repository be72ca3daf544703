package services

import (
	"context"
	"testing"
	"time"

	"github.com/briefmate/briefmate/internal/repository"
	"github.com/briefmate/briefmate/internal/testutil"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db        *gorm.DB
	auth      *AuthService
	clients   *ClientService
	briefs    *BriefService
	tasks     *TaskService
	templates *TemplateService
	stats     *StatsService
	exports   *ExportService
	suggester *fakeSuggester
}

type fakeSuggester struct {
	tasks []GeneratedTask
	err   error
	calls int
}

func (f *fakeSuggester) SuggestTasks(ctx context.Context, title, description string) ([]GeneratedTask, error) {
	f.calls++
	return f.tasks, f.err
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	briefRepo := repository.NewBriefRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	suggester := &fakeSuggester{}

	return serviceTestEnv{
		db:        db,
		auth:      NewAuthService(userRepo),
		clients:   NewClientService(clientRepo),
		briefs:    NewBriefService(briefRepo, clientRepo, time.UTC),
		tasks:     NewTaskService(taskRepo, briefRepo, suggester),
		templates: NewTemplateService(templateRepo, briefRepo, clientRepo, time.UTC),
		stats:     NewStatsService(statsRepo, clientRepo, time.UTC),
		exports:   NewExportService(briefRepo),
		suggester: suggester,
	}
}

func ptr[T any](v T) *T { return &v }
