package repository

import (
	"github.com/briefmate/briefmate/internal/database"
	"github.com/briefmate/briefmate/internal/models"
	"gorm.io/gorm"
)

// GormClientRepository is a GORM implementation of ClientRepository
type GormClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &GormClientRepository{db: db}
}

// Create creates a new client
func (r *GormClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// FindByID finds a client by ID within the user's clients
func (r *GormClientRepository) FindByID(userID, id uint64, withBriefs bool) (*models.Client, error) {
	var client models.Client
	query := r.db.Scopes(database.OwnedBy("clients", userID))

	if withBriefs {
		query = query.Preload("Briefs", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(database.WithTasksCount).Order("briefs.created_at DESC").Order("briefs.id DESC")
		})
	}

	if err := query.First(&client, id).Error; err != nil {
		return nil, err
	}
	client.BriefsCount = int64(len(client.Briefs))
	if !withBriefs {
		if err := r.db.Model(&models.Brief{}).Where("client_id = ?", client.ID).Count(&client.BriefsCount).Error; err != nil {
			return nil, err
		}
	}

	return &client, nil
}

// List retrieves the user's clients ordered by name
func (r *GormClientRepository) List(userID uint64) ([]models.Client, error) {
	clients := []models.Client{}
	err := r.db.Model(&models.Client{}).
		Select("clients.*, (SELECT COUNT(*) FROM briefs WHERE briefs.client_id = clients.id) AS briefs_count").
		Scopes(database.OwnedBy("clients", userID)).
		Order("clients.name ASC").
		Order("clients.id ASC").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// Update updates a client
func (r *GormClientRepository) Update(client *models.Client) error {
	return r.db.Omit("Briefs").Save(client).Error
}

// Delete removes a client after detaching its briefs
func (r *GormClientRepository) Delete(userID, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.Scopes(database.OwnedBy("clients", userID)).First(&client, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Brief{}).
			Where("client_id = ?", client.ID).
			Update("client_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Client{}, client.ID).Error
	})
}

// Count returns the number of clients owned by the user
func (r *GormClientRepository) Count(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Client{}).Scopes(database.OwnedBy("clients", userID)).Count(&count).Error
	return count, err
}
