package models

import (
	"time"

	"gorm.io/datatypes"
)

// TemplateTask is a task stub copied into each brief created from a template.
type TemplateTask struct {
	Title string `json:"title"`
}

type BriefTemplate struct {
	ID             uint64                            `gorm:"primarykey" json:"id"`
	Name           string                            `gorm:"type:varchar(255);not null" json:"name"`
	Description    *string                           `gorm:"type:text" json:"description"`
	Priority       BriefPriority                     `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	EstimatedHours *float64                          `json:"estimated_hours"`
	Tasks          datatypes.JSONSlice[TemplateTask] `json:"tasks"`
	UserID         uint64                            `gorm:"not null;index" json:"user_id"`
	CreatedAt      time.Time                         `json:"created_at"`
	UpdatedAt      time.Time                         `json:"updated_at"`
}
