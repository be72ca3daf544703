package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/briefmate/briefmate/internal/models"
	"github.com/briefmate/briefmate/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound     = errors.New("template not found")
	ErrTemplateNameRequired = errors.New("template name is required")
)

// TemplateService handles brief template business logic
type TemplateService struct {
	templateRepo repository.TemplateRepository
	briefRepo    repository.BriefRepository
	clientRepo   repository.ClientRepository
	loc          *time.Location
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(
	templateRepo repository.TemplateRepository,
	briefRepo repository.BriefRepository,
	clientRepo repository.ClientRepository,
	loc *time.Location,
) *TemplateService {
	if loc == nil {
		loc = time.UTC
	}
	return &TemplateService{
		templateRepo: templateRepo,
		briefRepo:    briefRepo,
		clientRepo:   clientRepo,
		loc:          loc,
	}
}

// TemplateInput holds the editable fields of a template. Blank task titles are dropped.
type TemplateInput struct {
	Name           string
	Description    string
	Priority       string
	EstimatedHours *float64
	Tasks          []string
}

func (in TemplateInput) apply(template *models.BriefTemplate) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ErrTemplateNameRequired
	}

	priority := models.BriefPriorityMedium
	if in.Priority != "" {
		priority = models.BriefPriority(in.Priority)
		if !priority.Valid() {
			return ErrInvalidPriority
		}
	}
	if isNegative(in.EstimatedHours) {
		return ErrNegativeAmount
	}

	tasks := make([]models.TemplateTask, 0, len(in.Tasks))
	for _, title := range in.Tasks {
		if title = strings.TrimSpace(title); title != "" {
			tasks = append(tasks, models.TemplateTask{Title: title})
		}
	}

	template.Name = name
	template.Description = optionalString(in.Description)
	template.Priority = priority
	template.EstimatedHours = in.EstimatedHours
	template.Tasks = datatypes.JSONSlice[models.TemplateTask](tasks)
	return nil
}

// ListTemplates returns the user's templates, newest first
func (s *TemplateService) ListTemplates(userID uint64) ([]models.BriefTemplate, error) {
	templates, err := s.templateRepo.List(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// GetTemplate returns a template owned by userID
func (s *TemplateService) GetTemplate(userID, templateID uint64) (*models.BriefTemplate, error) {
	template, err := s.templateRepo.FindByID(userID, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	return template, nil
}

// CreateTemplate creates a template owned by userID
func (s *TemplateService) CreateTemplate(userID uint64, input TemplateInput) (*models.BriefTemplate, error) {
	template := &models.BriefTemplate{UserID: userID}
	if err := input.apply(template); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return template, nil
}

// UpdateTemplate replaces a template's fields and task stubs
func (s *TemplateService) UpdateTemplate(userID, templateID uint64, input TemplateInput) (*models.BriefTemplate, error) {
	template, err := s.GetTemplate(userID, templateID)
	if err != nil {
		return nil, err
	}

	if err := input.apply(template); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Update(template); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return template, nil
}

// DeleteTemplate deletes a template. Briefs created from it are not affected.
func (s *TemplateService) DeleteTemplate(userID, templateID uint64) error {
	if err := s.templateRepo.Delete(userID, templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// UseTemplateInput holds the per-brief values supplied when instantiating a template
type UseTemplateInput struct {
	Title    string
	ClientID *uint64
	Deadline string
	Budget   *float64
}

// UseTemplate creates a draft brief from a template, with one task per stub
func (s *TemplateService) UseTemplate(userID, templateID uint64, input UseTemplateInput) (*models.Brief, error) {
	template, err := s.GetTemplate(userID, templateID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = template.Name
	}

	deadline, err := ParseDeadline(input.Deadline, s.loc)
	if err != nil {
		return nil, err
	}
	if isNegative(input.Budget) {
		return nil, ErrNegativeAmount
	}

	clientID, err := resolveClientID(s.clientRepo, userID, input.ClientID)
	if err != nil {
		return nil, err
	}

	brief := &models.Brief{
		Title:          title,
		Description:    template.Description,
		Status:         models.BriefStatusDraft,
		Priority:       template.Priority,
		Deadline:       deadline,
		Budget:         input.Budget,
		EstimatedHours: template.EstimatedHours,
		UserID:         userID,
		ClientID:       clientID,
	}

	tasks := make([]models.Task, 0, len(template.Tasks))
	for _, stub := range template.Tasks {
		tasks = append(tasks, models.Task{Title: stub.Title})
	}

	if err := s.briefRepo.CreateWithTasks(brief, tasks); err != nil {
		return nil, fmt.Errorf("failed to create brief from template: %w", err)
	}

	created, err := s.briefRepo.FindByID(userID, brief.ID, "Client", "Tasks")
	if err != nil {
		return nil, fmt.Errorf("failed to load created brief: %w", err)
	}
	return created, nil
}
