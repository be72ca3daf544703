package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/briefmate/briefmate/internal/constants"
	"github.com/briefmate/briefmate/internal/models"
	"github.com/briefmate/briefmate/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrTitleRequired          = errors.New("title is required")
	ErrDescriptionRequired    = errors.New("the brief needs a description to generate tasks")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo  repository.TaskRepository
	briefRepo repository.BriefRepository
	suggester TaskSuggester
}

// NewTaskService creates a new TaskService. suggester may be nil when AI is disabled.
func NewTaskService(taskRepo repository.TaskRepository, briefRepo repository.BriefRepository, suggester TaskSuggester) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		briefRepo: briefRepo,
		suggester: suggester,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
}

// CreateTask appends a task to a brief owned by userID
func (s *TaskService) CreateTask(userID, briefID uint64, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if _, err := s.findBrief(userID, briefID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: optionalString(input.Description),
		BriefID:     briefID,
	}

	if err := s.taskRepo.Append(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ToggleTask flips the completed flag of a task
func (s *TaskService) ToggleTask(userID, taskID uint64) (*models.Task, error) {
	task, err := s.findTask(userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task. Positions of the remaining tasks are left as they are.
func (s *TaskService) DeleteTask(userID, taskID uint64) error {
	task, err := s.findTask(userID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// GenerateTasks asks the suggester for tasks based on the brief and appends them
func (s *TaskService) GenerateTasks(ctx context.Context, userID, briefID uint64) ([]models.Task, error) {
	if s.suggester == nil {
		return nil, ErrAIServiceNotConfigured
	}

	brief, err := s.findBrief(userID, briefID)
	if err != nil {
		return nil, err
	}
	if brief.Description == nil || strings.TrimSpace(*brief.Description) == "" {
		return nil, ErrDescriptionRequired
	}

	suggestions, err := s.suggester.SuggestTasks(ctx, brief.Title, *brief.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(suggestions) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(suggestions) > constants.MaxAIGeneratedTasks {
		suggestions = suggestions[:constants.MaxAIGeneratedTasks]
	}

	tasks := make([]models.Task, 0, len(suggestions))
	for _, suggestion := range suggestions {
		title := strings.TrimSpace(suggestion.Title)
		if title == "" {
			continue
		}
		tasks = append(tasks, models.Task{
			Title:       title,
			Description: optionalString(suggestion.Description),
		})
	}

	if len(tasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	if err := s.taskRepo.AppendMany(brief.ID, tasks); err != nil {
		return nil, fmt.Errorf("failed to save generated tasks: %w", err)
	}

	return tasks, nil
}

func (s *TaskService) findBrief(userID, briefID uint64) (*models.Brief, error) {
	brief, err := s.briefRepo.FindByID(userID, briefID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBriefNotFound
		}
		return nil, fmt.Errorf("failed to find brief: %w", err)
	}
	return brief, nil
}

func (s *TaskService) findTask(userID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}
