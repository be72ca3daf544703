package repository

import (
	"github.com/briefmate/briefmate/internal/database"
	"github.com/briefmate/briefmate/internal/models"
	"gorm.io/gorm"
)

// GormBriefRepository is a GORM implementation of BriefRepository
type GormBriefRepository struct {
	db *gorm.DB
}

// NewBriefRepository creates a new BriefRepository
func NewBriefRepository(db *gorm.DB) BriefRepository {
	return &GormBriefRepository{db: db}
}

// Create creates a new brief
func (r *GormBriefRepository) Create(brief *models.Brief) error {
	return r.db.Omit("Client", "Tasks").Create(brief).Error
}

// CreateWithTasks creates a brief and its tasks in one transaction.
// Task positions follow the slice order.
func (r *GormBriefRepository) CreateWithTasks(brief *models.Brief, tasks []models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Client", "Tasks").Create(brief).Error; err != nil {
			return err
		}

		if len(tasks) == 0 {
			return nil
		}

		for i := range tasks {
			tasks[i].BriefID = brief.ID
			tasks[i].Order = i
		}
		if err := tx.Omit("Brief").Create(&tasks).Error; err != nil {
			return err
		}

		brief.Tasks = tasks
		brief.TasksCount = int64(len(tasks))
		return nil
	})
}

// FindByID finds a brief by ID with optional preloading.
// "Tasks" is always preloaded in position order.
func (r *GormBriefRepository) FindByID(userID, id uint64, preload ...string) (*models.Brief, error) {
	var brief models.Brief
	query := r.db.Scopes(database.OwnedBy("briefs", userID))

	for _, p := range preload {
		if p == "Tasks" {
			query = query.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
				return db.Order("tasks.position ASC").Order("tasks.id ASC")
			})
			continue
		}
		query = query.Preload(p)
	}

	if err := query.First(&brief, id).Error; err != nil {
		return nil, err
	}

	if brief.Tasks != nil {
		brief.TasksCount = int64(len(brief.Tasks))
	} else if err := r.db.Model(&models.Task{}).Where("brief_id = ?", brief.ID).Count(&brief.TasksCount).Error; err != nil {
		return nil, err
	}

	return &brief, nil
}

// List retrieves briefs with filtering, ordering and optional pagination
func (r *GormBriefRepository) List(userID uint64, opts BriefListOptions) ([]models.Brief, int64, error) {
	briefs := []models.Brief{}

	filtered := func() *gorm.DB {
		return r.db.Model(&models.Brief{}).Scopes(database.BriefFilterScope(userID, opts.Filter))
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := filtered().Scopes(database.WithTasksCount, database.BriefSortScope(opts.Sort))
	if opts.Pagination != nil {
		listQuery = listQuery.Scopes(database.Paginate(*opts.Pagination))
	}

	if err := listQuery.Preload("Client").Find(&briefs).Error; err != nil {
		return nil, 0, err
	}

	return briefs, total, nil
}

// Update updates a brief
func (r *GormBriefRepository) Update(brief *models.Brief) error {
	return r.db.Omit("Client", "Tasks").Save(brief).Error
}

// Delete removes a brief and its tasks
func (r *GormBriefRepository) Delete(userID, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var brief models.Brief
		if err := tx.Scopes(database.OwnedBy("briefs", userID)).First(&brief, id).Error; err != nil {
			return err
		}

		if err := tx.Where("brief_id = ?", brief.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Brief{}, brief.ID).Error
	})
}
