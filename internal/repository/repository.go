package repository

import (
	"time"

	"github.com/briefmate/briefmate/internal/filters"
	"github.com/briefmate/briefmate/internal/models"
	"github.com/briefmate/briefmate/internal/utils"
)

// Every method that takes a userID only sees rows owned by that user. A row
// owned by someone else is reported as gorm.ErrRecordNotFound, exactly like a
// missing row.

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	Create(client *models.Client) error

	// FindByID finds a client owned by userID, optionally preloading its briefs
	FindByID(userID, id uint64, withBriefs bool) (*models.Client, error)

	// List returns the user's clients ordered by name with their brief counts
	List(userID uint64) ([]models.Client, error)

	Update(client *models.Client) error

	// Delete removes a client and detaches its briefs in a single transaction
	Delete(userID, id uint64) error

	// Count returns how many clients the user owns
	Count(userID uint64) (int64, error)
}

// BriefListOptions holds filtering, ordering and pagination for listing briefs
type BriefListOptions struct {
	Filter     filters.BriefFilter
	Sort       filters.BriefSort
	Pagination *utils.PaginationParams
}

// BriefRepository defines the interface for brief data access
type BriefRepository interface {
	Create(brief *models.Brief) error

	// CreateWithTasks creates a brief and its tasks atomically
	CreateWithTasks(brief *models.Brief, tasks []models.Task) error

	// FindByID finds a brief owned by userID with optional preloading
	FindByID(userID, id uint64, preload ...string) (*models.Brief, error)

	// List returns the matching briefs with client and task count, and the total match count
	List(userID uint64, opts BriefListOptions) ([]models.Brief, int64, error)

	Update(brief *models.Brief) error

	// Delete removes a brief and its tasks in a single transaction
	Delete(userID, id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Append creates a task at the end of its brief, setting Order to the current task count
	Append(task *models.Task) error

	// AppendMany appends tasks in order within one transaction
	AppendMany(briefID uint64, tasks []models.Task) error

	// FindByID finds a task whose brief is owned by userID
	FindByID(userID, id uint64) (*models.Task, error)

	Update(task *models.Task) error

	Delete(id uint64) error
}

// TemplateRepository defines the interface for brief template data access
type TemplateRepository interface {
	Create(template *models.BriefTemplate) error

	FindByID(userID, id uint64) (*models.BriefTemplate, error)

	// List returns the user's templates, newest first
	List(userID uint64) ([]models.BriefTemplate, error)

	Update(template *models.BriefTemplate) error

	Delete(userID, id uint64) error
}

// StatusCount is one row of a group-by-status aggregate
type StatusCount struct {
	Status models.BriefStatus `json:"status"`
	Count  int64              `json:"count"`
}

// PriorityCount is one row of a group-by-priority aggregate
type PriorityCount struct {
	Priority models.BriefPriority `json:"priority"`
	Count    int64                `json:"count"`
}

// StatsRepository defines the aggregate queries behind the dashboard.
// Each method is an independent query.
type StatsRepository interface {
	CountByStatus(userID uint64) ([]StatusCount, error)
	CountByPriority(userID uint64) ([]PriorityCount, error)
	CountBriefs(userID uint64, statuses ...models.BriefStatus) (int64, error)
	SumBudget(userID uint64) (float64, error)

	// CountDeadlinesBetween counts briefs with from <= deadline <= to whose status is not excluded
	CountDeadlinesBetween(userID uint64, from, to time.Time, excluded ...models.BriefStatus) (int64, error)

	// CountDeadlinesBefore counts briefs with deadline < before whose status is not excluded
	CountDeadlinesBefore(userID uint64, before time.Time, excluded ...models.BriefStatus) (int64, error)

	// CreatedSince returns the creation timestamps of briefs created at or after since
	CreatedSince(userID uint64, since time.Time) ([]time.Time, error)
}
