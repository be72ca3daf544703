package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/briefmate/briefmate/internal/models"
	"github.com/briefmate/briefmate/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBriefNotFound      = errors.New("brief not found")
	ErrBriefTitleRequired = errors.New("title is required")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidDeadline    = errors.New("deadline must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
	ErrNegativeAmount     = errors.New("budget and estimated hours must not be negative")
	// ErrClientNotOwned is returned when a brief references a client the user does not own.
	ErrClientNotOwned = errors.New("client not found")
)

// BriefService handles brief business logic
type BriefService struct {
	briefRepo  repository.BriefRepository
	clientRepo repository.ClientRepository
	loc        *time.Location
}

// NewBriefService creates a new BriefService. Date-only deadlines are read in loc.
func NewBriefService(briefRepo repository.BriefRepository, clientRepo repository.ClientRepository, loc *time.Location) *BriefService {
	if loc == nil {
		loc = time.UTC
	}
	return &BriefService{
		briefRepo:  briefRepo,
		clientRepo: clientRepo,
		loc:        loc,
	}
}

// BriefInput holds the editable fields of a brief.
// Empty Status and Priority keep the current value, or the default on creation.
type BriefInput struct {
	Title          string
	Description    string
	Status         string
	Priority       string
	Deadline       string
	Budget         *float64
	EstimatedHours *float64
	ClientID       *uint64
}

// ListBriefs returns one page of the user's briefs and the number of matches
func (s *BriefService) ListBriefs(userID uint64, opts repository.BriefListOptions) ([]models.Brief, int64, error) {
	briefs, total, err := s.briefRepo.List(userID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list briefs: %w", err)
	}
	return briefs, total, nil
}

// GetBrief returns a brief with its client and ordered tasks
func (s *BriefService) GetBrief(userID, briefID uint64) (*models.Brief, error) {
	brief, err := s.briefRepo.FindByID(userID, briefID, "Client", "Tasks")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBriefNotFound
		}
		return nil, fmt.Errorf("failed to find brief: %w", err)
	}
	return brief, nil
}

// CreateBrief creates a brief owned by userID
func (s *BriefService) CreateBrief(userID uint64, input BriefInput) (*models.Brief, error) {
	brief := &models.Brief{
		UserID:   userID,
		Status:   models.BriefStatusDraft,
		Priority: models.BriefPriorityMedium,
	}
	if err := s.apply(userID, brief, input); err != nil {
		return nil, err
	}

	if err := s.briefRepo.Create(brief); err != nil {
		return nil, fmt.Errorf("failed to create brief: %w", err)
	}

	return s.GetBrief(userID, brief.ID)
}

// UpdateBrief replaces the editable fields of a brief
func (s *BriefService) UpdateBrief(userID, briefID uint64, input BriefInput) (*models.Brief, error) {
	brief, err := s.briefRepo.FindByID(userID, briefID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBriefNotFound
		}
		return nil, fmt.Errorf("failed to find brief: %w", err)
	}

	if err := s.apply(userID, brief, input); err != nil {
		return nil, err
	}
	brief.Client = nil

	if err := s.briefRepo.Update(brief); err != nil {
		return nil, fmt.Errorf("failed to update brief: %w", err)
	}

	return s.GetBrief(userID, brief.ID)
}

// DeleteBrief deletes a brief and its tasks
func (s *BriefService) DeleteBrief(userID, briefID uint64) error {
	if err := s.briefRepo.Delete(userID, briefID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBriefNotFound
		}
		return fmt.Errorf("failed to delete brief: %w", err)
	}
	return nil
}

func (s *BriefService) apply(userID uint64, brief *models.Brief, input BriefInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return ErrBriefTitleRequired
	}

	if input.Status != "" {
		status := models.BriefStatus(input.Status)
		if !status.Valid() {
			return ErrInvalidStatus
		}
		brief.Status = status
	}
	if input.Priority != "" {
		priority := models.BriefPriority(input.Priority)
		if !priority.Valid() {
			return ErrInvalidPriority
		}
		brief.Priority = priority
	}

	deadline, err := ParseDeadline(input.Deadline, s.loc)
	if err != nil {
		return err
	}
	if isNegative(input.Budget) || isNegative(input.EstimatedHours) {
		return ErrNegativeAmount
	}

	clientID, err := resolveClientID(s.clientRepo, userID, input.ClientID)
	if err != nil {
		return err
	}

	brief.Title = title
	brief.Description = optionalString(input.Description)
	brief.Deadline = deadline
	brief.Budget = input.Budget
	brief.EstimatedHours = input.EstimatedHours
	brief.ClientID = clientID
	return nil
}

// ParseDeadline accepts an empty string (no deadline), a calendar date read
// as midnight in loc, or an RFC 3339 timestamp. The result is in UTC.
func ParseDeadline(value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if t, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, ErrInvalidDeadline
}

// resolveClientID checks that the referenced client belongs to userID.
// A nil or zero id means no client.
func resolveClientID(clientRepo repository.ClientRepository, userID uint64, clientID *uint64) (*uint64, error) {
	if clientID == nil || *clientID == 0 {
		return nil, nil
	}

	if _, err := clientRepo.FindByID(userID, *clientID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotOwned
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	id := *clientID
	return &id, nil
}

func isNegative(v *float64) bool {
	return v != nil && *v < 0
}
