package dto

import (
	"time"

	"github.com/briefmate/briefmate/internal/models"
	"github.com/briefmate/briefmate/internal/utils"
)

// BriefSummaryDTO represents a brief in list responses
type BriefSummaryDTO struct {
	ID             uint64               `json:"id"`
	Title          string               `json:"title"`
	Description    *string              `json:"description"`
	Status         models.BriefStatus   `json:"status"`
	Priority       models.BriefPriority `json:"priority"`
	Deadline       *time.Time           `json:"deadline"`
	Budget         *float64             `json:"budget"`
	EstimatedHours *float64             `json:"estimated_hours"`
	ClientID       *uint64              `json:"client_id"`
	Client         *ClientRefDTO        `json:"client"`
	TasksCount     int64                `json:"tasks_count"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// BriefDTO is a brief with its tasks in position order
type BriefDTO struct {
	BriefSummaryDTO
	Tasks []TaskDTO `json:"tasks"`
}

// BriefListResponse represents a list of briefs. Page and Limit are set only
// when the request asked for pagination.
type BriefListResponse struct {
	Briefs []BriefSummaryDTO `json:"briefs"`
	Total  int64             `json:"total"`
	Page   int               `json:"page,omitempty"`
	Limit  int               `json:"limit,omitempty"`
	Sort   string            `json:"sort"`
}

// ToBriefSummaryDTO converts a Brief model to BriefSummaryDTO
func ToBriefSummaryDTO(brief models.Brief) BriefSummaryDTO {
	dto := BriefSummaryDTO{
		ID:             brief.ID,
		Title:          brief.Title,
		Description:    brief.Description,
		Status:         brief.Status,
		Priority:       brief.Priority,
		Deadline:       brief.Deadline,
		Budget:         brief.Budget,
		EstimatedHours: brief.EstimatedHours,
		ClientID:       brief.ClientID,
		TasksCount:     brief.TasksCount,
		CreatedAt:      brief.CreatedAt,
		UpdatedAt:      brief.UpdatedAt,
	}

	// Include client if preloaded
	if brief.Client != nil {
		dto.Client = &ClientRefDTO{ID: brief.Client.ID, Name: brief.Client.Name}
	}

	return dto
}

// ToBriefSummaryDTOs converts a slice of briefs
func ToBriefSummaryDTOs(briefs []models.Brief) []BriefSummaryDTO {
	items := make([]BriefSummaryDTO, len(briefs))
	for i, brief := range briefs {
		items[i] = ToBriefSummaryDTO(brief)
	}
	return items
}

// ToBriefDTO converts a Brief with preloaded tasks
func ToBriefDTO(brief models.Brief) BriefDTO {
	return BriefDTO{
		BriefSummaryDTO: ToBriefSummaryDTO(brief),
		Tasks:           ToTaskDTOs(brief.Tasks),
	}
}

// ToBriefListResponse builds the listing payload
func ToBriefListResponse(briefs []models.Brief, total int64, pagination *utils.PaginationParams, sort string) BriefListResponse {
	resp := BriefListResponse{
		Briefs: ToBriefSummaryDTOs(briefs),
		Total:  total,
		Sort:   sort,
	}
	if pagination != nil {
		resp.Page = pagination.Page
		resp.Limit = pagination.Limit
	}
	return resp
}
