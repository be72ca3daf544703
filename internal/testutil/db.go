// Package testutil provides in-memory database helpers and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/briefmate/briefmate/internal/database"
	"github.com/briefmate/briefmate/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a migrated in-memory SQLite database that is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: database.UTCNow,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a distinct database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.MigrateDatabase(db))

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "hashed",
		Name:         "Test User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateClient inserts a client owned by userID.
func CreateClient(t *testing.T, db *gorm.DB, userID uint64, name string) *models.Client {
	t.Helper()
	client := &models.Client{
		Name:   name,
		UserID: userID,
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

// BriefOption customises a fixture brief.
type BriefOption func(*models.Brief)

func WithStatus(s models.BriefStatus) BriefOption {
	return func(b *models.Brief) { b.Status = s }
}

func WithPriority(p models.BriefPriority) BriefOption {
	return func(b *models.Brief) { b.Priority = p }
}

func WithBudget(v float64) BriefOption {
	return func(b *models.Brief) { b.Budget = &v }
}

func WithDeadline(d time.Time) BriefOption {
	return func(b *models.Brief) { b.Deadline = &d }
}

func WithClient(id uint64) BriefOption {
	return func(b *models.Brief) { b.ClientID = &id }
}

func WithDescription(d string) BriefOption {
	return func(b *models.Brief) { b.Description = &d }
}

func WithCreatedAt(at time.Time) BriefOption {
	return func(b *models.Brief) { b.CreatedAt = at }
}

// CreateBrief inserts a DRAFT / MEDIUM brief owned by userID, then applies opts.
func CreateBrief(t *testing.T, db *gorm.DB, userID uint64, title string, opts ...BriefOption) *models.Brief {
	t.Helper()
	brief := &models.Brief{
		Title:    title,
		Status:   models.BriefStatusDraft,
		Priority: models.BriefPriorityMedium,
		UserID:   userID,
	}
	for _, opt := range opts {
		opt(brief)
	}
	require.NoError(t, db.Create(brief).Error)
	return brief
}

// CreateTask inserts a task at the given position.
func CreateTask(t *testing.T, db *gorm.DB, briefID uint64, title string, order int) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:   title,
		BriefID: briefID,
		Order:   order,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}
