package repository

import (
	"github.com/briefmate/briefmate/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Append creates a task after the brief's existing tasks
func (r *GormTaskRepository) Append(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return appendTask(tx, task)
	})
}

// AppendMany appends several tasks to the same brief
func (r *GormTaskRepository) AppendMany(briefID uint64, tasks []models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range tasks {
			tasks[i].BriefID = briefID
			if err := appendTask(tx, &tasks[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// appendTask places task one past the brief's highest position. Gaps left by
// deletions are kept; positions are never reused.
func appendTask(tx *gorm.DB, task *models.Task) error {
	var next int
	err := tx.Model(&models.Task{}).
		Select("COALESCE(MAX(position) + 1, 0)").
		Where("brief_id = ?", task.BriefID).
		Scan(&next).Error
	if err != nil {
		return err
	}
	task.Order = next
	return tx.Omit("Brief").Create(task).Error
}

// FindByID finds a task by ID through its brief's owner
func (r *GormTaskRepository) FindByID(userID, id uint64) (*models.Task, error) {
	var task models.Task
	owned := r.db.Model(&models.Brief{}).Select("id").Where("user_id = ?", userID)
	err := r.db.Where("brief_id IN (?)", owned).First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Omit("Brief").Save(task).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
