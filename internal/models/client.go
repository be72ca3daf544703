package models

import "time"

type Client struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     *string   `gorm:"type:varchar(255)" json:"email"`
	Phone     *string   `gorm:"type:varchar(50)" json:"phone"`
	Company   *string   `gorm:"type:varchar(255)" json:"company"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Briefs []Brief `gorm:"foreignKey:ClientID;constraint:OnDelete:SET NULL" json:"briefs,omitempty"`

	// BriefsCount is filled by list queries and is not a column.
	BriefsCount int64 `gorm:"->;-:migration" json:"briefs_count"`
}
