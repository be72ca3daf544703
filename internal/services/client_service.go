package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/briefmate/briefmate/internal/models"
	"github.com/briefmate/briefmate/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrClientNameRequired = errors.New("client name is required")
)

// ClientService handles client business logic
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// ClientInput holds the editable fields of a client. Blank optional fields are stored as NULL.
type ClientInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Notes   string
}

func (in ClientInput) apply(client *models.Client) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ErrClientNameRequired
	}
	client.Name = name
	client.Email = optionalString(in.Email)
	client.Phone = optionalString(in.Phone)
	client.Company = optionalString(in.Company)
	client.Notes = optionalString(in.Notes)
	return nil
}

// ListClients returns the user's clients by name with their brief counts
func (s *ClientService) ListClients(userID uint64) ([]models.Client, error) {
	clients, err := s.clientRepo.List(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// GetClient returns a client with its briefs, newest first
func (s *ClientService) GetClient(userID, clientID uint64) (*models.Client, error) {
	return s.findClient(userID, clientID, true)
}

// CreateClient creates a client owned by userID
func (s *ClientService) CreateClient(userID uint64, input ClientInput) (*models.Client, error) {
	client := &models.Client{UserID: userID}
	if err := input.apply(client); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Create(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// UpdateClient replaces the editable fields of a client
func (s *ClientService) UpdateClient(userID, clientID uint64, input ClientInput) (*models.Client, error) {
	client, err := s.findClient(userID, clientID, false)
	if err != nil {
		return nil, err
	}

	if err := input.apply(client); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Update(client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// DeleteClient deletes a client; its briefs are kept without a client
func (s *ClientService) DeleteClient(userID, clientID uint64) error {
	if err := s.clientRepo.Delete(userID, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

func (s *ClientService) findClient(userID, clientID uint64, withBriefs bool) (*models.Client, error) {
	client, err := s.clientRepo.FindByID(userID, clientID, withBriefs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return client, nil
}

// optionalString trims s and returns nil when nothing is left
func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
