package services

import (
	"fmt"

	"github.com/briefmate/briefmate/internal/constants"
	"github.com/briefmate/briefmate/internal/export"
	"github.com/briefmate/briefmate/internal/filters"
	"github.com/briefmate/briefmate/internal/repository"
)

// ExportService flattens briefs into export rows
type ExportService struct {
	briefRepo repository.BriefRepository
}

// NewExportService creates a new ExportService
func NewExportService(briefRepo repository.BriefRepository) *ExportService {
	return &ExportService{briefRepo: briefRepo}
}

// Rows returns one row per brief matching filter, newest first.
// Exports ignore any requested ordering.
func (s *ExportService) Rows(userID uint64, filter filters.BriefFilter) ([]export.Row, error) {
	briefs, _, err := s.briefRepo.List(userID, repository.BriefListOptions{
		Filter: filter,
		Sort:   filters.DefaultBriefSort,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load briefs for export: %w", err)
	}

	rows := make([]export.Row, 0, len(briefs))
	for _, b := range briefs {
		row := export.Row{
			ID:             b.ID,
			Title:          b.Title,
			Status:         b.Status,
			Priority:       b.Priority,
			ClientName:     constants.NoClientLabel,
			Deadline:       b.Deadline,
			Budget:         b.Budget,
			EstimatedHours: b.EstimatedHours,
			TasksCount:     b.TasksCount,
			CreatedAt:      b.CreatedAt,
		}
		if b.Description != nil {
			row.Description = *b.Description
		}
		if b.Client != nil {
			row.ClientName = b.Client.Name
		}
		rows = append(rows, row)
	}

	return rows, nil
}
