package repository

import (
	"github.com/briefmate/briefmate/internal/database"
	"github.com/briefmate/briefmate/internal/models"
	"gorm.io/gorm"
)

// GormTemplateRepository is a GORM implementation of TemplateRepository
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &GormTemplateRepository{db: db}
}

// Create creates a new template
func (r *GormTemplateRepository) Create(template *models.BriefTemplate) error {
	return r.db.Create(template).Error
}

// FindByID finds a template by ID within the user's templates
func (r *GormTemplateRepository) FindByID(userID, id uint64) (*models.BriefTemplate, error) {
	var template models.BriefTemplate
	if err := r.db.Scopes(database.OwnedBy("brief_templates", userID)).First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// List retrieves the user's templates, newest first
func (r *GormTemplateRepository) List(userID uint64) ([]models.BriefTemplate, error) {
	templates := []models.BriefTemplate{}
	err := r.db.Scopes(database.OwnedBy("brief_templates", userID)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// Update updates a template
func (r *GormTemplateRepository) Update(template *models.BriefTemplate) error {
	return r.db.Save(template).Error
}

// Delete deletes a template owned by the user
func (r *GormTemplateRepository) Delete(userID, id uint64) error {
	result := r.db.Scopes(database.OwnedBy("brief_templates", userID)).Delete(&models.BriefTemplate{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
