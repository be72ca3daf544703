package dto

import (
	"time"

	"github.com/briefmate/briefmate/internal/models"
)

// TemplateDTO represents a brief template in API responses
type TemplateDTO struct {
	ID             uint64                `json:"id"`
	Name           string                `json:"name"`
	Description    *string               `json:"description"`
	Priority       models.BriefPriority  `json:"priority"`
	EstimatedHours *float64              `json:"estimated_hours"`
	Tasks          []models.TemplateTask `json:"tasks"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// ToTemplateDTO converts a BriefTemplate model to TemplateDTO
func ToTemplateDTO(template models.BriefTemplate) TemplateDTO {
	tasks := make([]models.TemplateTask, len(template.Tasks))
	copy(tasks, template.Tasks)

	return TemplateDTO{
		ID:             template.ID,
		Name:           template.Name,
		Description:    template.Description,
		Priority:       template.Priority,
		EstimatedHours: template.EstimatedHours,
		Tasks:          tasks,
		CreatedAt:      template.CreatedAt,
		UpdatedAt:      template.UpdatedAt,
	}
}

// ToTemplateDTOs converts a slice of templates
func ToTemplateDTOs(templates []models.BriefTemplate) []TemplateDTO {
	items := make([]TemplateDTO, len(templates))
	for i, template := range templates {
		items[i] = ToTemplateDTO(template)
	}
	return items
}
