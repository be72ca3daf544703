package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Clients   []Client        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Briefs    []Brief         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Templates []BriefTemplate `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
