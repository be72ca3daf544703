package dto

import (
	"time"

	"github.com/briefmate/briefmate/internal/models"
)

// ClientRefDTO is the short form of a client embedded in briefs
type ClientRefDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ClientDTO represents a client in API responses
type ClientDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Company     *string   `json:"company"`
	Notes       *string   `json:"notes"`
	BriefsCount int64     `json:"briefs_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClientDetailDTO is a client with its briefs, newest first
type ClientDetailDTO struct {
	ClientDTO
	Briefs []BriefSummaryDTO `json:"briefs"`
}

// ToClientDTO converts a Client model to ClientDTO
func ToClientDTO(client models.Client) ClientDTO {
	return ClientDTO{
		ID:          client.ID,
		Name:        client.Name,
		Email:       client.Email,
		Phone:       client.Phone,
		Company:     client.Company,
		Notes:       client.Notes,
		BriefsCount: client.BriefsCount,
		CreatedAt:   client.CreatedAt,
		UpdatedAt:   client.UpdatedAt,
	}
}

// ToClientDTOs converts a slice of clients
func ToClientDTOs(clients []models.Client) []ClientDTO {
	items := make([]ClientDTO, len(clients))
	for i, client := range clients {
		items[i] = ToClientDTO(client)
	}
	return items
}

// ToClientDetailDTO converts a Client with preloaded briefs
func ToClientDetailDTO(client models.Client) ClientDetailDTO {
	return ClientDetailDTO{
		ClientDTO: ToClientDTO(client),
		Briefs:    ToBriefSummaryDTOs(client.Briefs),
	}
}
