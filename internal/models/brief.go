package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type BriefStatus string

const (
	BriefStatusDraft      BriefStatus = "DRAFT"
	BriefStatusInProgress BriefStatus = "IN_PROGRESS"
	BriefStatusInReview   BriefStatus = "IN_REVIEW"
	BriefStatusCompleted  BriefStatus = "COMPLETED"
	BriefStatusCancelled  BriefStatus = "CANCELLED"
)

// BriefStatuses lists every status in declaration order.
var BriefStatuses = []BriefStatus{
	BriefStatusDraft,
	BriefStatusInProgress,
	BriefStatusInReview,
	BriefStatusCompleted,
	BriefStatusCancelled,
}

// Valid reports whether s is one of the declared statuses.
func (s BriefStatus) Valid() bool {
	for _, v := range BriefStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type BriefPriority string

const (
	BriefPriorityLow    BriefPriority = "LOW"
	BriefPriorityMedium BriefPriority = "MEDIUM"
	BriefPriorityHigh   BriefPriority = "HIGH"
	BriefPriorityUrgent BriefPriority = "URGENT"
)

// BriefPriorities lists every priority from lowest to highest. The index of a
// priority in this slice is its ordinal.
var BriefPriorities = []BriefPriority{
	BriefPriorityLow,
	BriefPriorityMedium,
	BriefPriorityHigh,
	BriefPriorityUrgent,
}

// Valid reports whether p is one of the declared priorities.
func (p BriefPriority) Valid() bool {
	return p.Ordinal() >= 0
}

// Ordinal returns the rank of p (LOW=0 .. URGENT=3), or -1 for unknown values.
func (p BriefPriority) Ordinal() int {
	for i, v := range BriefPriorities {
		if p == v {
			return i
		}
	}
	return -1
}

type Brief struct {
	ID             uint64        `gorm:"primarykey" json:"id"`
	Title          string        `gorm:"type:varchar(255);not null" json:"title"`
	Description    *string       `gorm:"type:text" json:"description"`
	Status         BriefStatus   `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	Priority       BriefPriority `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	Deadline       *time.Time    `gorm:"index" json:"deadline"`
	Budget         *float64      `json:"budget"`
	EstimatedHours *float64      `json:"estimated_hours"`
	UserID         uint64        `gorm:"not null;index" json:"user_id"`
	ClientID       *uint64       `gorm:"index" json:"client_id"`
	CreatedAt      time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	// Relations
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Tasks  []Task  `gorm:"foreignKey:BriefID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`

	// SearchText is the lowercased title and description, kept current by
	// BeforeSave. SQLite's LOWER only folds ASCII, so search matches this.
	SearchText string `gorm:"type:text" json:"-"`

	// TasksCount is filled by list queries and is not a column.
	TasksCount int64 `gorm:"->;-:migration" json:"tasks_count"`
}

// BeforeSave refreshes SearchText on create and on full saves.
func (b *Brief) BeforeSave(tx *gorm.DB) error {
	b.SearchText = BriefSearchText(b.Title, b.Description)
	return nil
}

// BriefSearchText folds a title and optional description into the form
// stored in SearchText.
func BriefSearchText(title string, description *string) string {
	text := strings.ToLower(title)
	if description != nil {
		text += "\n" + strings.ToLower(*description)
	}
	return text
}
